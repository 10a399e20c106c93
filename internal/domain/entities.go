package domain

import (
	"strings"
	"time"
)

// Platform identifiers recognized across the pipeline.
const (
	PlatformX        = "x"
	PlatformLinkedIn = "linkedin"
)

// KnownPlatform reports whether the value is a supported platform.
func KnownPlatform(platform string) bool {
	return platform == PlatformX || platform == PlatformLinkedIn
}

// Post is one extracted or ingested unit of content.
type Post struct {
	ID        string     `json:"id,omitempty"`
	Platform  string     `json:"platform"`
	Text      string     `json:"text"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	Source    string     `json:"source,omitempty"`
}

// DedupKey is the composite key used for ingestion-time deduplication.
func (p Post) DedupKey() string {
	return p.Platform + ":" + strings.ToLower(p.Text)
}

// PlatformRules holds hand-authored per-platform limits from the style profile.
type PlatformRules struct {
	MaxChars        int `json:"max_chars,omitempty"`
	TargetWords     int `json:"target_words,omitempty"`
	SinglePostWords int `json:"single_post_words,omitempty"`
}

// LanguageRules groups formatting guidance and preferred abbreviations.
type LanguageRules struct {
	Formatting             []string `json:"formatting,omitempty"`
	PreferredAbbreviations []string `json:"preferred_abbreviations,omitempty"`
}

// DerivedStats is the machine-owned section of the style profile, keyed by platform.
type DerivedStats struct {
	AnalysisDate     string               `json:"analysis_date,omitempty"`
	SampleSize       map[string]int       `json:"sample_size,omitempty"`
	AvgWordsPerPost  map[string]float64   `json:"avg_words_per_post,omitempty"`
	AvgSentenceWords map[string]float64   `json:"avg_sentence_words,omitempty"`
	QuestionRate     map[string]float64   `json:"question_rate,omitempty"`
	EmojiRate        map[string]float64   `json:"emoji_rate,omitempty"`
	LinkRate         map[string]float64   `json:"link_rate,omitempty"`
	CommonOpeners    map[string][]string  `json:"common_openers,omitempty"`
	CommonClosers    map[string][]string  `json:"common_closers,omitempty"`
	CommonPhrases    map[string][]string  `json:"common_phrases,omitempty"`
}

// StyleProfile combines hand-authored voice rules with derived statistics.
// Everything except Derived is treated as immutable external configuration.
type StyleProfile struct {
	Persona          string                   `json:"persona,omitempty"`
	Tone             []string                 `json:"tone,omitempty"`
	Do               []string                 `json:"do,omitempty"`
	Dont             []string                 `json:"dont,omitempty"`
	Language         LanguageRules            `json:"language"`
	SignaturePhrases []string                 `json:"signature_phrases,omitempty"`
	Guardrails       []string                 `json:"guardrails,omitempty"`
	Platforms        map[string]PlatformRules `json:"platforms,omitempty"`
	Derived          DerivedStats             `json:"derived"`
	Locked           bool                     `json:"locked,omitempty"`
}

// ResearchResult is one web-search hit, produced per request and never persisted.
type ResearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// GenerateRequest carries a single draft request through the pipeline.
type GenerateRequest struct {
	Platform      string
	Context       string
	Facts         []string
	Angle         string
	CTA           string
	Thread        bool
	Variants      int
	MaxChars      int
	AllowResearch bool
	ResearchQuery string
	AutoResearch  bool
	Proofread     bool
}

// GenerateMetadata describes how the final text was produced.
type GenerateMetadata struct {
	Platform        string           `json:"platform"`
	Thread          bool             `json:"thread"`
	Variants        int              `json:"variants"`
	LLM             bool             `json:"llm"`
	ResearchUsed    bool             `json:"research_used"`
	ResearchQuery   string           `json:"research_query,omitempty"`
	ResearchSummary string           `json:"research_summary,omitempty"`
	Sources         []ResearchResult `json:"sources"`
}

// GeneratedPost is the orchestrator output for one request.
type GeneratedPost struct {
	Text     string           `json:"text"`
	Warnings []string         `json:"warnings"`
	Metadata GenerateMetadata `json:"metadata"`
}
