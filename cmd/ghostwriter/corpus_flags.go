package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"voice-ghostwriter/internal/corpus"
	"voice-ghostwriter/internal/domain"
	"voice-ghostwriter/internal/infra/metrics"
	"voice-ghostwriter/internal/styleguide"
)

const (
	defaultCorpusPath = "data/corpus.jsonl"
	defaultStylePath  = "data/style_guide.json"
)

// corpusFlags is the output/filter flag set shared by every ingestion verb.
type corpusFlags struct {
	out              string
	appendMode       bool
	minWords         int
	since            string
	until            string
	updateStyle      bool
	forceUpdateStyle bool
	stylePath        string
}

func (f *corpusFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.out, "out", defaultCorpusPath, "Output JSONL corpus path")
	cmd.Flags().BoolVar(&f.appendMode, "append", false, "Append to existing corpus instead of overwriting")
	cmd.Flags().IntVar(&f.minWords, "min-words", 3, "Minimum words per post to keep")
	cmd.Flags().StringVar(&f.since, "since", "", "Keep posts on/after date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.until, "until", "", "Keep posts on/before date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&f.updateStyle, "update-style", false, "Update style guide with derived stats")
	cmd.Flags().BoolVar(&f.forceUpdateStyle, "force-update-style", false, "Override style guide lock")
	cmd.Flags().StringVar(&f.stylePath, "style", defaultStylePath, "Style guide path")
}

func (f *corpusFlags) filter() (corpus.Filter, error) {
	filter := corpus.Filter{MinWords: f.minWords}
	if f.since != "" {
		t, err := parseDay(f.since)
		if err != nil {
			return filter, fmt.Errorf("invalid --since: %w", err)
		}
		filter.Since = &t
	}
	if f.until != "" {
		t, err := parseDay(f.until)
		if err != nil {
			return filter, fmt.Errorf("invalid --until: %w", err)
		}
		filter.Until = &t
	}
	return filter, nil
}

// finalize runs the shared tail of every ingestion verb: clean, write,
// optionally refresh the style guide, and print the summary.
func (f *corpusFlags) finalize(cmd *cobra.Command, posts []domain.Post, source string) error {
	filter, err := f.filter()
	if err != nil {
		return err
	}

	res := corpus.Clean(posts, filter)
	if err := corpus.Write(f.out, res.Kept, f.appendMode); err != nil {
		return err
	}
	metrics.AddIngestedPosts(source, len(res.Kept))

	cmd.Printf("Ingested %d posts -> %s\n", len(res.Kept), f.out)
	if filter.Since != nil || filter.Until != nil {
		cmd.Printf("Skipped (no date): %d, skipped (out of range): %d\n", res.SkippedNoDate, res.SkippedOutOfRange)
	}

	if f.updateStyle {
		if err := f.refreshStyle(cmd, res.Kept); err != nil {
			return err
		}
	}
	return nil
}

// refreshStyle recomputes derived stats. In append mode the analysis covers
// the whole corpus on disk, not only this run's posts.
func (f *corpusFlags) refreshStyle(cmd *cobra.Command, kept []domain.Post) error {
	analyzed := kept
	if f.appendMode {
		all, err := corpus.Read(f.out)
		if err != nil {
			return err
		}
		analyzed = all
	}
	stats := styleguide.Analyze(analyzed)
	err := styleguide.UpdateDerived(f.stylePath, stats, f.forceUpdateStyle)
	if errors.Is(err, styleguide.ErrProfileLocked) {
		cmd.Println("Style guide is locked. Skipping update. Use --force-update-style to override.")
		return nil
	}
	if err != nil {
		return err
	}
	cmd.Printf("Updated style guide: %s\n", f.stylePath)
	return nil
}

func parseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
