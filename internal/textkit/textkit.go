// Package textkit holds the pure text helpers shared by extraction,
// ingestion filtering, and style analysis.
package textkit

import (
	"regexp"
	"strings"
)

var (
	urlRe      = regexp.MustCompile(`http\S+`)
	spaceRe    = regexp.MustCompile(`\s+`)
	wordRe     = regexp.MustCompile(`[A-Za-z0-9']+`)
	sentenceRe = regexp.MustCompile(`[.!?]+`)
)

// Normalize strips http(s) URL tokens, collapses whitespace runs to a single
// space, and trims the result.
func Normalize(text string) string {
	text = urlRe.ReplaceAllString(text, "")
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Tokenize lowercases the text and extracts maximal runs of letters, digits,
// and apostrophes.
func Tokenize(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// SplitSentences splits on runs of sentence terminators, dropping empty
// fragments.
func SplitSentences(text string) []string {
	var out []string
	for _, part := range sentenceRe.Split(text, -1) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// IsEmoji reports whether the rune falls in one of the pictograph, misc
// symbol, dingbat, or regional-indicator blocks.
func IsEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x26FF:
		return true
	case r >= 0x2700 && r <= 0x27BF:
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF:
		return true
	}
	return false
}

// HasEmoji reports whether any rune in the text satisfies IsEmoji.
func HasEmoji(text string) bool {
	for _, r := range text {
		if IsEmoji(r) {
			return true
		}
	}
	return false
}
