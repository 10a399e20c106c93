package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"voice-ghostwriter/internal/extract"
)

func newIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Extract posts from PDF exports into the corpus",
	}
	cmd.AddCommand(newIngestLinkedInCmd(), newIngestNitterCmd())
	return cmd
}

func newIngestLinkedInCmd() *cobra.Command {
	var (
		flags         corpusFlags
		pdfPath       string
		referenceDate string
		authorName    string
	)

	cmd := &cobra.Command{
		Use:   "linkedin",
		Short: "Ingest a LinkedIn activity PDF export",
		RunE: func(cmd *cobra.Command, args []string) error {
			reference := time.Now().UTC()
			if referenceDate != "" {
				ref, err := parseDay(referenceDate)
				if err != nil {
					return fmt.Errorf("invalid --reference-date, expected YYYY-MM-DD: %w", err)
				}
				reference = ref
			}

			text, err := extract.PDFText(cmd.Context(), pdfPath)
			if err != nil {
				return err
			}
			posts := extract.ExtractLinkedIn(text, extract.LinkedInOptions{
				AuthorName: authorName,
				Reference:  reference,
			})
			return flags.finalize(cmd, posts, extract.SourceLinkedInPDF)
		},
	}

	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Path to LinkedIn activity PDF export")
	cmd.Flags().StringVar(&referenceDate, "reference-date", "", "Reference date for relative timestamps (YYYY-MM-DD)")
	cmd.Flags().StringVar(&authorName, "author", "", "Author name anchoring each post block")
	_ = cmd.MarkFlagRequired("pdf")
	flags.register(cmd)
	return cmd
}

func newIngestNitterCmd() *cobra.Command {
	var (
		flags   corpusFlags
		pdfPath string
		handle  string
	)

	cmd := &cobra.Command{
		Use:   "nitter",
		Short: "Ingest a Nitter profile PDF export",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := extract.PDFText(cmd.Context(), pdfPath)
			if err != nil {
				return err
			}
			posts := extract.ExtractNitter(text, extract.NitterOptions{Handle: handle})
			return flags.finalize(cmd, posts, extract.SourceNitterPDF)
		},
	}

	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Path to Nitter PDF export")
	cmd.Flags().StringVar(&handle, "handle", "", "Profile mention anchoring each tweet block")
	_ = cmd.MarkFlagRequired("pdf")
	flags.register(cmd)
	return cmd
}
