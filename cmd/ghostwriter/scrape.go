package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"voice-ghostwriter/internal/domain"
	"voice-ghostwriter/internal/extract"
)

func newScrapeCmd() *cobra.Command {
	var (
		flags            corpusFlags
		platform         string
		profile          string
		mode             string
		htmlPath         string
		nitterInstance   string
		maxPosts         int
		acknowledgeTerms bool
		acknowledgeRisk  bool
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Collect public posts from a Nitter instance or saved HTML pages",
		Long: "Collect public posts with explicit opt-in flags. Use only where the " +
			"platform's terms and local law allow it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !acknowledgeTerms || !acknowledgeRisk {
				return errors.New("refusing to scrape without explicit opt-in; re-run with --i-acknowledge-terms and --i-acknowledge-risk")
			}
			if !domain.KnownPlatform(platform) {
				return fmt.Errorf("unknown platform %q", platform)
			}
			if platform == domain.PlatformLinkedIn && mode == "nitter" {
				return errors.New("automated LinkedIn scraping is disabled; use a LinkedIn export or provide saved HTML with --mode html")
			}

			var (
				posts []domain.Post
				err   error
			)
			switch mode {
			case "nitter":
				if profile == "" {
					return errors.New("missing --profile for nitter mode")
				}
				posts, err = extract.FetchNitterProfile(cmd.Context(), nitterInstance, profile, maxPosts)
			case "html":
				if htmlPath == "" {
					return errors.New("missing --html path for html mode")
				}
				posts, err = parseHTMLFiles(htmlPath, platform, maxPosts)
			default:
				return fmt.Errorf("unknown mode %q", mode)
			}
			if err != nil {
				return err
			}

			source := extract.SourceNitter
			if mode == "html" {
				source = extract.SourceHTMLSaved
			}
			return flags.finalize(cmd, posts, source)
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "Target platform (x or linkedin)")
	cmd.Flags().StringVar(&profile, "profile", "", "Profile handle (e.g., Nithin0dha)")
	cmd.Flags().StringVar(&mode, "mode", "nitter", "Collection mode: nitter or html")
	cmd.Flags().StringVar(&htmlPath, "html", "", "Path to saved HTML file or folder (manual save)")
	cmd.Flags().StringVar(&nitterInstance, "nitter-instance", "https://nitter.net", "Nitter instance base URL")
	cmd.Flags().IntVar(&maxPosts, "max-posts", 50, "Maximum posts to collect")
	cmd.Flags().BoolVar(&acknowledgeTerms, "i-acknowledge-terms", false, "Confirm the target's terms allow this collection")
	cmd.Flags().BoolVar(&acknowledgeRisk, "i-acknowledge-risk", false, "Accept the operational risk of scraping")
	_ = cmd.MarkFlagRequired("platform")
	flags.register(cmd)
	return cmd
}

// parseHTMLFiles extracts posts from a saved HTML file or every .html file
// under a folder, stopping at maxPosts.
func parseHTMLFiles(path, platform string, maxPosts int) ([]domain.Post, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var files []string
	if info.IsDir() {
		err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(strings.ToLower(p), ".html") {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		files = []string{path}
	}
	if len(files) == 0 {
		return nil, errors.New("no HTML files found to parse")
	}

	var posts []domain.Post
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		var extracted []domain.Post
		if platform == domain.PlatformX {
			extracted, err = extract.ExtractNitterHTML(f, extract.SourceHTMLSaved)
		} else {
			extracted, err = extract.ExtractLinkedInHTML(f, extract.SourceHTMLSaved)
		}
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		posts = append(posts, extracted...)
		if len(posts) >= maxPosts {
			return posts[:maxPosts], nil
		}
	}
	return posts, nil
}
