package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"voice-ghostwriter/internal/corpus"
	"voice-ghostwriter/internal/styleguide"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		corpusPath string
		stylePath  string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Recompute derived style statistics from the corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := corpus.Read(corpusPath)
			if err != nil {
				return err
			}
			if len(posts) == 0 {
				return fmt.Errorf("corpus %s is empty", corpusPath)
			}

			stats := styleguide.Analyze(posts)
			err = styleguide.UpdateDerived(stylePath, stats, force)
			if errors.Is(err, styleguide.ErrProfileLocked) {
				cmd.Println("Style guide is locked. Skipping update. Use --force-update-style to override.")
				return nil
			}
			if err != nil {
				return err
			}
			cmd.Printf("Analyzed %d posts -> %s\n", len(posts), stylePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", defaultCorpusPath, "Corpus JSONL path")
	cmd.Flags().StringVar(&stylePath, "style", defaultStylePath, "Style guide path")
	cmd.Flags().BoolVar(&force, "force-update-style", false, "Override style guide lock")
	return cmd
}
