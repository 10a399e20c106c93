package extract

import (
	"regexp"
	"strings"
	"time"

	"voice-ghostwriter/internal/dateparse"
	"voice-ghostwriter/internal/domain"
)

// SourceLinkedInPDF tags posts produced by the LinkedIn activity extractor.
const SourceLinkedInPDF = "linkedin_pdf"

// Noise filters below are tuned against real export snapshots; they are
// configuration data, not load-bearing constants.
var defaultLinkedInNoise = map[string]struct{}{
	"like": {}, "comment": {}, "repost": {}, "send": {}, "following": {},
	"message": {}, "all activity": {}, "posts": {}, "comments": {},
	"videos": {}, "images": {}, "more": {}, "me": {}, "for business": {},
	"reactivate": {},
}

var (
	timecodeRe     = regexp.MustCompile(`^\d+:\d+`)
	counterRe      = regexp.MustCompile(`^[\d,]+$`)
	commentsRe     = regexp.MustCompile(`[\d,]+ comments`)
	repostsRe      = regexp.MustCompile(`[\d,]+ reposts`)
	othersRe       = regexp.MustCompile(`and [\d,]+ others`)
	multiplierRe   = regexp.MustCompile(`^\d+x$`)
	boilerPrefixes = []string{"premium:", "reactivate"}
)

// LinkedInOptions configures the LinkedIn activity-dump extractor. The zero
// value uses the empirically tuned defaults.
type LinkedInOptions struct {
	// AuthorName is the exact anchor line marking the start of a post block.
	AuthorName string
	// Window bounds the forward search from an anchor to its date line.
	Window int
	// Reference resolves relative-age timestamps ("3d", "2mo").
	Reference time.Time
	// Noise lists lines dropped verbatim from content blocks.
	Noise map[string]struct{}
}

func (o *LinkedInOptions) defaults() {
	if o.AuthorName == "" {
		o.AuthorName = "Nithin Kamath"
	}
	if o.Window <= 0 {
		o.Window = 12
	}
	if o.Reference.IsZero() {
		o.Reference = time.Now().UTC().Truncate(24 * time.Hour)
	}
	if o.Noise == nil {
		o.Noise = defaultLinkedInNoise
	}
}

// ExtractLinkedIn scans a pdftotext render of a LinkedIn activity export.
// Anchors without a date line inside the window are discarded; garbled
// content degrades to fewer posts, never an error.
func ExtractLinkedIn(text string, opts LinkedInOptions) []domain.Post {
	opts.defaults()
	lines := trimLines(text)

	var posts []domain.Post
	i := 0
	for i < len(lines) {
		if lines[i] != opts.AuthorName {
			i++
			continue
		}
		dateIdx := -1
		for j := i + 1; j < min(i+opts.Window, len(lines)); j++ {
			if dateparse.IsDateLine(lines[j]) {
				dateIdx = j
				break
			}
		}
		if dateIdx < 0 {
			i++
			continue
		}
		created := resolveActivityDate(lines[dateIdx], opts.Reference)

		var content []string
		k := dateIdx + 1
		for k < len(lines) && lines[k] != opts.AuthorName {
			content = append(content, lines[k])
			k++
		}

		if block := cleanLinkedInContent(content, opts.Noise); block != "" {
			posts = append(posts, domain.Post{
				Platform:  domain.PlatformLinkedIn,
				Text:      block,
				CreatedAt: created,
				Source:    SourceLinkedInPDF,
			})
		}
		i = k
	}
	return posts
}

// resolveActivityDate resolves an absolute or relative date label; nil means
// the date stays unknown rather than failing extraction.
func resolveActivityDate(label string, ref time.Time) *time.Time {
	cleaned := dateparse.Clean(label)
	cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "ago"))
	if t, ok := dateparse.Parse(cleaned); ok {
		return &t
	}
	if t, ok := dateparse.ParseRelative(cleaned, ref); ok {
		return &t
	}
	return nil
}

func cleanLinkedInContent(lines []string, noise map[string]struct{}) string {
	var cleaned []string
	for _, line := range lines {
		text := strings.TrimSpace(line)
		if text == "" {
			if len(cleaned) > 0 && cleaned[len(cleaned)-1] != "" {
				cleaned = append(cleaned, "")
			}
			continue
		}
		lower := strings.ToLower(text)
		if _, drop := noise[lower]; drop {
			continue
		}
		if hasAnyPrefix(lower, boilerPrefixes) {
			continue
		}
		if timecodeRe.MatchString(lower) {
			continue
		}
		if counterRe.MatchString(text) {
			continue
		}
		if commentsRe.MatchString(lower) || repostsRe.MatchString(lower) || othersRe.MatchString(lower) {
			continue
		}
		if multiplierRe.MatchString(lower) {
			continue
		}
		cleaned = append(cleaned, text)
	}
	for len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}
	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func trimLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}
