// Package dateparse turns free-form date strings from social export dumps
// into canonical UTC timestamps.
package dateparse

import (
	"net/mail"
	"strings"
	"time"
)

// parser is one attempt in the ordered cascade. The first parser that
// reports ok wins.
type parser func(s string) (time.Time, bool)

var cascade = []parser{
	parseRFC2822,
	parseISO,
	parseLayouts,
}

// Layouts observed across LinkedIn, Nitter, and generic export snapshots.
var layouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04",
	"Jan 2, 2006",
	"Jan 2, 2006 15:04",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006 3:04 PM MST",
	"2 Jan 2006",
	"2 Jan 2006 15:04",
	"2 Jan 2006 3:04 PM",
	"01/02/2006",
	"02/01/2006",
}

// Parse resolves a date string to a UTC instant. It never fails hard:
// unparseable input yields ok == false and callers decide their own
// skip/keep policy.
func Parse(value string) (time.Time, bool) {
	cleaned := Clean(value)
	if cleaned == "" {
		return time.Time{}, false
	}
	for _, p := range cascade {
		if t, ok := p(cleaned); ok {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Clean removes export artifacts (interpunct separators, doubled spaces)
// before parsing.
func Clean(value string) string {
	cleaned := strings.ReplaceAll(value, "·", "")
	cleaned = strings.ReplaceAll(cleaned, "•", "")
	cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	return strings.TrimSpace(cleaned)
}

func parseRFC2822(s string) (time.Time, bool) {
	t, err := mail.ParseDate(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseISO(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseLayouts(s string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
