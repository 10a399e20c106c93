package extract

import (
	"regexp"
	"strings"
	"time"

	"voice-ghostwriter/internal/dateparse"
	"voice-ghostwriter/internal/domain"
)

// SourceNitterPDF tags posts produced by the Nitter profile extractor.
const SourceNitterPDF = "nitter_pdf"

var defaultNitterNoise = map[string]struct{}{
	"nitter": {}, "load newest": {}, "tweets": {}, "tweets & replies": {},
	"media": {}, "search": {}, "show this thread": {}, "more": {},
}

var (
	nitterDateRe = regexp.MustCompile(`^\d{1,2} [A-Za-z]{3} \d{4}$`)
	numberOnlyRe = regexp.MustCompile(`^[\d,.]+$`)
)

// NitterOptions configures the Nitter profile-dump extractor. The zero value
// uses the empirically tuned defaults.
type NitterOptions struct {
	// Handle is the profile mention whose presence anchors a tweet block.
	Handle string
	// Window bounds the forward search from an anchor to its date line.
	Window int
	// Noise lists lines dropped verbatim from content blocks.
	Noise map[string]struct{}
}

func (o *NitterOptions) defaults() {
	if o.Handle == "" {
		o.Handle = "@Nithin0dha"
	}
	if o.Window <= 0 {
		o.Window = 8
	}
	if o.Noise == nil {
		o.Noise = defaultNitterNoise
	}
}

// ExtractNitter scans a pdftotext render of a Nitter profile page. Tweet
// paragraphs are rebuilt from blank-line-delimited groups.
func ExtractNitter(text string, opts NitterOptions) []domain.Post {
	opts.defaults()
	lines := trimLines(text)

	var posts []domain.Post
	i := 0
	for i < len(lines) {
		if !strings.Contains(lines[i], opts.Handle) {
			i++
			continue
		}
		dateIdx := -1
		for j := i + 1; j < min(i+opts.Window, len(lines)); j++ {
			if nitterDateRe.MatchString(lines[j]) {
				dateIdx = j
				break
			}
		}
		if dateIdx < 0 {
			i++
			continue
		}

		var createdAt *time.Time
		if t, ok := dateparse.Parse(lines[dateIdx]); ok {
			createdAt = &t
		}

		var content []string
		k := dateIdx + 1
		for k < len(lines) && !strings.Contains(lines[k], opts.Handle) {
			content = append(content, lines[k])
			k++
		}

		if block := cleanNitterContent(content, opts); block != "" {
			posts = append(posts, domain.Post{
				Platform:  domain.PlatformX,
				Text:      block,
				CreatedAt: createdAt,
				Source:    SourceNitterPDF,
			})
		}
		i = k
	}
	return posts
}

func cleanNitterContent(lines []string, opts NitterOptions) string {
	var cleaned []string
	handlePrefix := strings.ToLower(opts.Handle)
	for _, line := range lines {
		text := strings.TrimSpace(line)
		if text == "" {
			if len(cleaned) > 0 && cleaned[len(cleaned)-1] != "" {
				cleaned = append(cleaned, "")
			}
			continue
		}
		lower := strings.ToLower(text)
		if _, drop := opts.Noise[lower]; drop {
			continue
		}
		if strings.HasPrefix(lower, handlePrefix) {
			continue
		}
		if numberOnlyRe.MatchString(text) {
			continue
		}
		cleaned = append(cleaned, text)
	}
	for len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}

	// Rebuild paragraphs: blank lines delimit, lines inside a paragraph are
	// one wrapped sentence flow.
	var paragraphs []string
	var current []string
	for _, item := range cleaned {
		if item == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, strings.Join(current, " "))
				current = nil
			}
			continue
		}
		current = append(current, item)
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, " "))
	}
	return strings.TrimSpace(strings.Join(paragraphs, "\n\n"))
}
