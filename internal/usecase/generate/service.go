package generate

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"voice-ghostwriter/internal/domain"
	"voice-ghostwriter/internal/infra/metrics"
)

const (
	defaultVariants    = 3
	defaultMaxChars    = 280
	maxResearchResults = 5
	generateMaxTokens  = 1200
	summaryMaxTokens   = 300
	proofreadMaxTokens = 900

	// autoQueryWordLimit gates auto-research: contexts at or above this many
	// words are assumed to carry enough material on their own.
	autoQueryWordLimit = 20

	// proofreadGrowthLimit rejects proofread output that grew beyond this
	// multiple of the draft's rune length.
	proofreadGrowthLimit = 1.2
)

// Service is the generation pipeline: research, prompt building, model
// invocation, proofreading, length validation, and the template fallback.
type Service struct {
	profile domain.StyleProfile
	model   domain.ModelProvider
	search  domain.SearchProvider
	proof   domain.Proofreader
	log     zerolog.Logger
}

var _ domain.Generator = (*Service)(nil)

// NewService builds the pipeline. model, search, and proof may each be nil;
// absence of any of them degrades the corresponding stage to a warning.
func NewService(profile domain.StyleProfile, model domain.ModelProvider, search domain.SearchProvider, proof domain.Proofreader, logger zerolog.Logger) *Service {
	return &Service{
		profile: profile,
		model:   model,
		search:  search,
		proof:   proof,
		log:     logger.With().Str("component", "generate").Logger(),
	}
}

// Available reports whether a model provider is configured.
func (s *Service) Available() bool {
	return s.model != nil
}

// Generate drafts one or more post variants. It never returns an error: every
// failure mode degrades to the deterministic template with a warning.
func (s *Service) Generate(ctx context.Context, req domain.GenerateRequest) domain.GeneratedPost {
	start := time.Now()
	defer func() {
		metrics.GenerateDuration.Observe(time.Since(start).Seconds())
	}()
	metrics.IncGenerateRequest(req.Platform)

	if req.Variants <= 0 {
		req.Variants = defaultVariants
	}
	if req.Platform != domain.PlatformX {
		req.Thread = false
	}

	var (
		warnings     []string
		results      []domain.ResearchResult
		researchUsed bool
		summary      string
		queryUsed    string
	)

	if req.AllowResearch {
		if s.search == nil {
			warnings = append(warnings, "Research requested but no search provider configured")
		} else {
			queryUsed = pickResearchQuery(req.Context, req.ResearchQuery, req.AutoResearch)
			if queryUsed == "" {
				warnings = append(warnings, "Research skipped (context sufficient or no query provided)")
			} else {
				found, err := s.search.Search(ctx, queryUsed, maxResearchResults)
				if err != nil {
					s.log.Warn().Err(err).Str("query", queryUsed).Msg("research search failed")
					warnings = append(warnings, fmt.Sprintf("Research failed: %v. Returned a structured draft template.", err))
					metrics.IncGenerateFallback("research_error")
					return s.fallbackResult(req, warnings, results, queryUsed, summary, researchUsed)
				}
				results = found
				if len(results) == 0 {
					warnings = append(warnings, "Research returned no results")
				} else {
					researchUsed = true
					summary = s.summarizeResearch(ctx, results, req.Context)
				}
			}
		}
	}

	if s.model == nil {
		warnings = append(warnings, "No model provider configured. Returned a structured draft template.")
		metrics.IncGenerateFallback("no_model")
		return s.fallbackResult(req, warnings, results, queryUsed, summary, researchUsed)
	}

	systemPrompt := buildSystemPrompt(s.profile, req)
	userPrompt := buildUserPrompt(req, results, summary)

	text, err := s.model.Complete(ctx, systemPrompt, userPrompt, generateMaxTokens)
	if err != nil {
		s.log.Warn().Err(err).Str("platform", req.Platform).Msg("model call failed")
		warnings = append(warnings, fmt.Sprintf("Model error: %v. Returned a structured draft template.", err))
		metrics.IncGenerateFallback("model_error")
		return s.fallbackResult(req, warnings, results, queryUsed, summary, researchUsed)
	}
	text = strings.TrimSpace(text)

	if req.Proofread {
		edited, ok := s.proofreadDraft(ctx, text, req.Platform)
		if ok {
			text = edited
		} else {
			warnings = append(warnings, "Proofread step failed, returning original draft")
		}
	}

	warnings = append(warnings, s.lengthWarnings(text, req)...)

	return domain.GeneratedPost{
		Text:     text,
		Warnings: warnings,
		Metadata: domain.GenerateMetadata{
			Platform:        req.Platform,
			Thread:          req.Thread,
			Variants:        req.Variants,
			LLM:             true,
			ResearchUsed:    researchUsed,
			ResearchQuery:   queryUsed,
			ResearchSummary: summary,
			Sources:         formatSources(results),
		},
	}
}

func (s *Service) fallbackResult(req domain.GenerateRequest, warnings []string, results []domain.ResearchResult, query, summary string, researchUsed bool) domain.GeneratedPost {
	return domain.GeneratedPost{
		Text:     fallbackDraft(req),
		Warnings: warnings,
		Metadata: domain.GenerateMetadata{
			Platform:        req.Platform,
			Thread:          req.Thread,
			Variants:        1,
			LLM:             false,
			ResearchUsed:    researchUsed,
			ResearchQuery:   query,
			ResearchSummary: summary,
			Sources:         formatSources(results),
		},
	}
}

// pickResearchQuery chooses a search query: explicit wins, then a short
// context under auto-research, else none.
func pickResearchQuery(context, explicit string, autoResearch bool) string {
	if explicit != "" {
		return strings.TrimSpace(explicit)
	}
	if !autoResearch {
		return ""
	}
	if len(strings.Fields(context)) < autoQueryWordLimit {
		return strings.TrimSpace(context)
	}
	return ""
}

// summarizeResearch condenses search snippets into a few bullets. A failed
// summary is not fatal; the raw snippets still reach the prompt.
func (s *Service) summarizeResearch(ctx context.Context, results []domain.ResearchResult, context string) string {
	if len(results) == 0 || s.model == nil {
		return ""
	}
	summary, err := s.model.Complete(ctx, buildSummarySystemPrompt(), buildSummaryUserPrompt(results, context), summaryMaxTokens)
	if err != nil {
		s.log.Warn().Err(err).Msg("research summary failed")
		return ""
	}
	return strings.TrimSpace(summary)
}

// proofreadDraft runs the grammar pass through the dedicated collaborator when
// one is wired, else through the model. Empty output or growth past the limit
// rejects the edit.
func (s *Service) proofreadDraft(ctx context.Context, draft, platform string) (string, bool) {
	var (
		edited string
		err    error
	)
	switch {
	case s.proof != nil:
		edited, err = s.proof.Correct(ctx, draft)
	case s.model != nil:
		userPrompt := fmt.Sprintf("Proofread this %s draft:\n\n%s", platform, draft)
		edited, err = s.model.Complete(ctx, buildProofreadSystemPrompt(), userPrompt, proofreadMaxTokens)
	default:
		return "", false
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("proofread failed")
		return "", false
	}
	edited = strings.TrimSpace(edited)
	if edited == "" {
		return "", false
	}
	if float64(utf8.RuneCountInString(edited)) > float64(utf8.RuneCountInString(draft))*proofreadGrowthLimit {
		return "", false
	}
	return edited, true
}

// lengthWarnings flags character-limit overruns for platform x. Thread drafts
// are checked per numbered line, single posts as a whole.
func (s *Service) lengthWarnings(text string, req domain.GenerateRequest) []string {
	if req.Platform != domain.PlatformX {
		return nil
	}

	limit := req.MaxChars
	if limit == 0 {
		limit = s.profile.Platforms[domain.PlatformX].MaxChars
	}
	if limit == 0 {
		limit = defaultMaxChars
	}

	var warnings []string
	if req.Thread {
		for _, line := range strings.Split(text, "\n") {
			cleaned := strings.TrimSpace(line)
			if cleaned == "" {
				continue
			}
			runes := []rune(cleaned)
			if runes[0] >= '0' && runes[0] <= '9' && strings.ContainsRune(cleaned, '/') && len(runes) > limit {
				warnings = append(warnings, fmt.Sprintf("Tweet exceeds %d chars: %s...", limit, string(runes[:min(60, len(runes))])))
			}
		}
		return warnings
	}
	if utf8.RuneCountInString(text) > limit {
		warnings = append(warnings, fmt.Sprintf("Post exceeds %d chars.", limit))
	}
	return warnings
}

func formatSources(results []domain.ResearchResult) []domain.ResearchResult {
	if results == nil {
		return []domain.ResearchResult{}
	}
	return results
}
