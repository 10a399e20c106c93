package extract

import (
	"strings"
	"testing"
	"time"

	"voice-ghostwriter/internal/domain"
)

func TestExtractNitterHTML(t *testing.T) {
	page := `<html><body>
<div class="timeline-item">
  <div class="tweet-content">First tweet with a <a href="#">link</a>.</div>
  <span class="tweet-date"><a href="#" title="Mar 31, 2024 · 10:30 PM UTC">Mar 31</a></span>
</div>
<div class="timeline-item">
  <div class="tweet-content">Second tweet, no parsable date.</div>
  <span class="tweet-date"><a href="#">yesterday</a></span>
</div>
<div class="timeline-item">
  <div class="tweet-content">   </div>
</div>
</body></html>`

	posts, err := ExtractNitterHTML(strings.NewReader(page), SourceNitter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("posts = %d, want 2", len(posts))
	}

	first := posts[0]
	if first.Platform != domain.PlatformX {
		t.Fatalf("platform = %q", first.Platform)
	}
	if first.Source != SourceNitter {
		t.Fatalf("source = %q", first.Source)
	}
	if first.Text != "First tweet with a link." {
		t.Fatalf("text = %q", first.Text)
	}
	if first.CreatedAt == nil {
		t.Fatal("created_at missing")
	}
	want := time.Date(2024, time.March, 31, 22, 30, 0, 0, time.UTC)
	if !first.CreatedAt.Equal(want) {
		t.Fatalf("created_at = %v, want %v", first.CreatedAt, want)
	}

	if posts[1].CreatedAt != nil {
		t.Fatalf("unparsable date should stay absent, got %v", posts[1].CreatedAt)
	}
}

func TestExtractLinkedInHTML(t *testing.T) {
	page := `<html><body>
<div class="feed-shared-update-v2__commentary">A post about markets.</div>
<div class="update-components-text">Another saved post.</div>
<div class="feed-shared-update-v2__commentary">  </div>
<div class="unrelated-class">Ignore this.</div>
</body></html>`

	posts, err := ExtractLinkedInHTML(strings.NewReader(page), SourceHTMLSaved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("posts = %d, want 2", len(posts))
	}
	if posts[0].Text != "A post about markets." {
		t.Fatalf("text = %q", posts[0].Text)
	}
	if posts[0].Platform != domain.PlatformLinkedIn {
		t.Fatalf("platform = %q", posts[0].Platform)
	}
	if posts[0].CreatedAt != nil {
		t.Fatal("saved linkedin pages carry no timestamps")
	}
	if posts[1].Source != SourceHTMLSaved {
		t.Fatalf("source = %q", posts[1].Source)
	}
}
