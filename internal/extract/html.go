package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"voice-ghostwriter/internal/dateparse"
	"voice-ghostwriter/internal/domain"
)

// SourceHTMLSaved tags posts extracted from manually saved HTML pages.
const SourceHTMLSaved = "html_saved"

// linkedInContentClasses mark the commentary nodes of a saved LinkedIn feed.
var linkedInContentClasses = []string{
	"feed-shared-update-v2__commentary",
	"update-components-text",
	"break-words",
}

// ExtractNitterHTML parses a Nitter timeline page. Each .timeline-item
// contributes one post; the tweet date comes from the title attribute of the
// date anchor (e.g. "Mar 31, 2024 · 10:30 PM UTC").
func ExtractNitterHTML(r io.Reader, source string) ([]domain.Post, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse nitter html: %w", err)
	}
	var posts []domain.Post
	doc.Find(".timeline-item").Each(func(_ int, item *goquery.Selection) {
		text := strings.TrimSpace(item.Find(".tweet-content").Text())
		if text == "" {
			return
		}
		post := domain.Post{
			Platform: domain.PlatformX,
			Text:     text,
			Source:   source,
		}
		if title, ok := item.Find(".tweet-date a").Attr("title"); ok {
			if t, parsed := dateparse.Parse(title); parsed {
				post.CreatedAt = &t
			}
		}
		posts = append(posts, post)
	})
	return posts, nil
}

// ExtractLinkedInHTML parses a manually saved LinkedIn feed page. Saved feeds
// carry no per-post timestamps, so created_at stays absent.
func ExtractLinkedInHTML(r io.Reader, source string) ([]domain.Post, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse linkedin html: %w", err)
	}
	selector := "." + strings.Join(linkedInContentClasses, ", .")
	var posts []domain.Post
	doc.Find(selector).Each(func(_ int, node *goquery.Selection) {
		text := strings.TrimSpace(node.Text())
		if text == "" {
			return
		}
		posts = append(posts, domain.Post{
			Platform: domain.PlatformLinkedIn,
			Text:     text,
			Source:   source,
		})
	})
	return posts, nil
}
