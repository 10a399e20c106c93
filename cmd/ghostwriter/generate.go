package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"voice-ghostwriter/internal/adapters/model"
	"voice-ghostwriter/internal/adapters/research"
	"voice-ghostwriter/internal/domain"
	"voice-ghostwriter/internal/infra/config"
	applog "voice-ghostwriter/internal/infra/log"
	"voice-ghostwriter/internal/styleguide"
	"voice-ghostwriter/internal/usecase/generate"
)

func newGenerateCmd() *cobra.Command {
	var (
		platform         string
		contextText      string
		facts            []string
		angle            string
		cta              string
		thread           bool
		variants         int
		maxChars         int
		researchQuery    string
		disableResearch  bool
		disableProofread bool
		stylePath        string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Draft posts in the configured voice",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.KnownPlatform(platform) {
				return fmt.Errorf("unknown platform %q", platform)
			}

			cfg := config.Load()
			logger := applog.NewLogger(cfg.AppEnv)
			if stylePath == "" {
				stylePath = cfg.StyleProfilePath()
			}

			profile, err := styleguide.LoadProfile(stylePath)
			if err != nil {
				return err
			}
			modelProvider, err := model.New(model.Config{
				Provider:     cfg.Model.Provider,
				Model:        cfg.Model.Name,
				Timeout:      cfg.Model.Timeout,
				AnthropicKey: cfg.Model.AnthropicKey,
				AnthropicURL: cfg.Model.AnthropicURL,
				OpenAIKey:    cfg.Model.OpenAIKey,
				OpenAIURL:    cfg.Model.OpenAIURL,
			})
			if err != nil {
				return err
			}
			searchProvider, err := research.New(research.Config{
				Provider: cfg.Research.Provider,
				APIKey:   cfg.ResearchKey(),
				Timeout:  cfg.Research.Timeout,
			})
			if err != nil {
				return err
			}

			svc := generate.NewService(profile, modelProvider, searchProvider, nil, logger)
			result := svc.Generate(cmd.Context(), domain.GenerateRequest{
				Platform:      platform,
				Context:       contextText,
				Facts:         facts,
				Angle:         angle,
				CTA:           cta,
				Thread:        thread,
				Variants:      variants,
				MaxChars:      maxChars,
				AllowResearch: !disableResearch,
				ResearchQuery: researchQuery,
				AutoResearch:  true,
				Proofread:     !disableProofread,
			})

			cmd.Println(result.Text)
			if len(result.Warnings) > 0 {
				cmd.PrintErrln("\nWarnings:")
				for _, warning := range result.Warnings {
					cmd.PrintErrf("- %s\n", warning)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "Target platform (x or linkedin)")
	cmd.Flags().StringVar(&contextText, "context", "", "Core context for the post")
	cmd.Flags().StringArrayVar(&facts, "facts", nil, "Fact to include (repeatable)")
	cmd.Flags().StringVar(&angle, "angle", "", "Angle/stance (optional)")
	cmd.Flags().StringVar(&cta, "cta", "", "Optional CTA or question")
	cmd.Flags().BoolVar(&thread, "thread", false, "Generate an X thread")
	cmd.Flags().IntVar(&variants, "variants", 3, "Number of variants")
	cmd.Flags().IntVar(&maxChars, "max-chars", 0, "Override per-post max chars (X only)")
	cmd.Flags().StringVar(&researchQuery, "research-query", "", "Research query (optional)")
	cmd.Flags().BoolVar(&disableResearch, "disable-research", false, "Disable research")
	cmd.Flags().BoolVar(&disableProofread, "disable-proofread", false, "Disable proofreading")
	cmd.Flags().StringVar(&stylePath, "style", "", "Style guide path (default: data dir)")
	_ = cmd.MarkFlagRequired("platform")
	_ = cmd.MarkFlagRequired("context")
	return cmd
}
