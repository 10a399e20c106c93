package generate

import (
	"fmt"
	"strings"

	"voice-ghostwriter/internal/domain"
)

const (
	promptOpeners = 5
	promptClosers = 5
	promptPhrases = 8
	snippetLimit  = 280
)

// buildSystemPrompt renders the voice rules, per-platform limits, and derived
// statistics into the ghostwriting instruction.
func buildSystemPrompt(profile domain.StyleProfile, req domain.GenerateRequest) string {
	rules := profile.Platforms[req.Platform]

	maxChars := req.MaxChars
	if maxChars == 0 {
		maxChars = rules.MaxChars
	}
	wordTarget := rules.TargetWords
	if wordTarget == 0 {
		wordTarget = rules.SinglePostWords
	}

	persona := profile.Persona
	if persona == "" {
		persona = "the author"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are ghostwriting public posts for %s.\n", persona)
	b.WriteString("Write in their public voice: clear, practical, data-backed, candid, and humble.\n")

	fmt.Fprintf(&b, "\nTone:\n%s\n", strings.Join(profile.Tone, ", "))
	fmt.Fprintf(&b, "\nDo:\n%s\n", bulletList(profile.Do))
	fmt.Fprintf(&b, "\nDon't:\n%s\n", bulletList(profile.Dont))
	fmt.Fprintf(&b, "\nLanguage & formatting:\n%s\n", bulletList(profile.Language.Formatting))
	fmt.Fprintf(&b, "Preferred abbreviations: %s\n", strings.Join(profile.Language.PreferredAbbreviations, ", "))
	fmt.Fprintf(&b, "\nSignature phrases (use sparingly when it fits):\n%s\n", strings.Join(profile.SignaturePhrases, ", "))
	fmt.Fprintf(&b, "\nGuardrails:\n%s\n", bulletList(profile.Guardrails))

	fmt.Fprintf(&b, "\nPlatform: %s\n", strings.ToUpper(req.Platform))
	fmt.Fprintf(&b, "Thread: %s\n", yesNo(req.Thread))
	fmt.Fprintf(&b, "Target words: %s\n", orNA(wordTarget))
	fmt.Fprintf(&b, "Max chars per post: %s\n", orNA(maxChars))

	derived := profile.Derived
	b.WriteString("\nObserved patterns from recent public posts (use lightly; don't force):\n")
	fmt.Fprintf(&b, "- Common openers: %s\n", listOrNA(capped(derived.CommonOpeners[req.Platform], promptOpeners)))
	fmt.Fprintf(&b, "- Common closers: %s\n", listOrNA(capped(derived.CommonClosers[req.Platform], promptClosers)))
	fmt.Fprintf(&b, "- Common phrases: %s\n", listOrNA(capped(derived.CommonPhrases[req.Platform], promptPhrases)))
	fmt.Fprintf(&b, "- Avg sentence words: %s\n", floatOrNA(derived.AvgSentenceWords, req.Platform))
	fmt.Fprintf(&b, "- Question rate: %s\n", floatOrNA(derived.QuestionRate, req.Platform))

	b.WriteString("\nOutput format:\n")
	fmt.Fprintf(&b, "- Provide %d distinct variants.\n", req.Variants)
	b.WriteString("- Separate each variant with a blank line and the line: ---")

	if req.Platform == domain.PlatformX {
		if req.Thread {
			b.WriteString("\n- For threads, label each tweet as '1/N', '2/N', etc.")
		} else {
			b.WriteString("\n- For single posts, output a single tweet per variant.")
		}
	} else {
		b.WriteString("\n- For LinkedIn, use 3-6 short paragraphs.")
	}
	return b.String()
}

// buildUserPrompt renders context, the closed fact list, angle, CTA, and any
// research material. Only listed facts may be asserted as facts.
func buildUserPrompt(req domain.GenerateRequest, results []domain.ResearchResult, summary string) string {
	factsBlock := "(none provided)"
	if len(req.Facts) > 0 {
		factsBlock = bulletList(req.Facts)
	}
	angleBlock := orNone(req.Angle)
	ctaBlock := orNone(req.CTA)

	researchBlock := "(none)"
	if len(results) > 0 {
		lines := make([]string, 0, len(results))
		for i, item := range results {
			snippet := clipRunes(strings.TrimSpace(item.Snippet), snippetLimit)
			lines = append(lines, fmt.Sprintf("[%d] %s — %s (Source: %s)", i+1, item.Title, snippet, item.URL))
		}
		researchBlock = strings.Join(lines, "\n")
	}
	summaryBlock := orNone(summary)

	return fmt.Sprintf(`Context:
%s

Facts to include (only these can be stated as facts):
%s

Angle / stance:
%s

Optional CTA or question:
%s

Research snippets (use only if needed; cite with [#] when you use them):
%s

Research summary (if helpful):
%s

If a key fact is missing, insert [ADD FACT] placeholder. Do not invent numbers.`,
		req.Context, factsBlock, angleBlock, ctaBlock, researchBlock, summaryBlock)
}

func buildSummarySystemPrompt() string {
	return "You are a research assistant. Summarize the sources into 3-5 bullets. " +
		"Use only the provided snippets. Do not add new facts."
}

func buildSummaryUserPrompt(results []domain.ResearchResult, context string) string {
	lines := make([]string, 0, len(results))
	for i, r := range results {
		lines = append(lines, fmt.Sprintf("[%d] %s: %s", i+1, r.Title, r.Snippet))
	}
	return fmt.Sprintf("Context:\n%s\n\nSources:\n%s\n\nReturn 3-5 concise bullets.", context, strings.Join(lines, "\n"))
}

func buildProofreadSystemPrompt() string {
	return "You are a careful editor. Fix grammar, spelling, and punctuation only. " +
		"Do not change meaning, tone, or add/remove facts. Preserve citations like [1]. " +
		"Keep thread numbering as-is."
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(item)
	}
	return b.String()
}

func capped(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func listOrNA(items []string) string {
	if len(items) == 0 {
		return "n/a"
	}
	return strings.Join(items, ", ")
}

func floatOrNA(values map[string]float64, platform string) string {
	v, ok := values[platform]
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%g", v)
}

func orNA(v int) string {
	if v == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%d", v)
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func clipRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
