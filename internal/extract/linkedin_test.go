package extract

import (
	"testing"
	"time"

	"voice-ghostwriter/internal/domain"
)

var linkedInRef = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func TestExtractLinkedInBasic(t *testing.T) {
	text := `All activity
Nithin Kamath
Founder & CEO at Zerodha
3d
Like
Comment
Repost
We crossed a new milestone this quarter.
More details in the link below.
1,024
56 comments
Nithin Kamath
Founder & CEO at Zerodha
2mo
Markets reward patience, not activity.
Send
`
	posts := ExtractLinkedIn(text, LinkedInOptions{Reference: linkedInRef})

	if len(posts) != 2 {
		t.Fatalf("posts = %d, want 2", len(posts))
	}
	first := posts[0]
	if first.Platform != domain.PlatformLinkedIn {
		t.Fatalf("platform = %q", first.Platform)
	}
	if first.Source != SourceLinkedInPDF {
		t.Fatalf("source = %q", first.Source)
	}
	want := "We crossed a new milestone this quarter.\nMore details in the link below."
	if first.Text != want {
		t.Fatalf("text = %q, want %q", first.Text, want)
	}
	if first.CreatedAt == nil {
		t.Fatal("created_at missing")
	}
	if got := *first.CreatedAt; !got.Equal(linkedInRef.AddDate(0, 0, -3)) {
		t.Fatalf("created_at = %v, want %v", got, linkedInRef.AddDate(0, 0, -3))
	}

	second := posts[1]
	if second.Text != "Markets reward patience, not activity." {
		t.Fatalf("second text = %q", second.Text)
	}
	if second.CreatedAt == nil || !second.CreatedAt.Equal(linkedInRef.AddDate(0, -2, 0)) {
		t.Fatalf("second created_at = %v", second.CreatedAt)
	}
}

func TestExtractLinkedInAnchorWithoutDate(t *testing.T) {
	text := `Nithin Kamath
Founder & CEO at Zerodha
Like
Comment
Some orphaned line
`
	posts := ExtractLinkedIn(text, LinkedInOptions{Reference: linkedInRef})
	if len(posts) != 0 {
		t.Fatalf("anchor without a date line should yield nothing, got %d", len(posts))
	}
}

func TestExtractLinkedInDateOutsideWindow(t *testing.T) {
	lines := []string{"Nithin Kamath"}
	for i := 0; i < 12; i++ {
		lines = append(lines, "filler line")
	}
	lines = append(lines, "3d", "Post body here.")
	text := ""
	for _, l := range lines {
		text += l + "\n"
	}

	posts := ExtractLinkedIn(text, LinkedInOptions{Reference: linkedInRef})
	if len(posts) != 0 {
		t.Fatalf("date beyond the search window should not anchor a post, got %d", len(posts))
	}
}

func TestExtractLinkedInNoiseFiltering(t *testing.T) {
	text := `Nithin Kamath
5d
Like
Comment
Repost
Send
Following
3x
12:30
2,048
Nithin Kamath and 300 others
Premium: try it free
Actual content survives.
`
	posts := ExtractLinkedIn(text, LinkedInOptions{Reference: linkedInRef})
	if len(posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(posts))
	}
	if posts[0].Text != "Actual content survives." {
		t.Fatalf("text = %q", posts[0].Text)
	}
}

func TestExtractLinkedInAbsoluteDate(t *testing.T) {
	text := `Nithin Kamath
Mar 31, 2024
Absolute dates work too.
`
	posts := ExtractLinkedIn(text, LinkedInOptions{Reference: linkedInRef})
	if len(posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(posts))
	}
	want := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	if posts[0].CreatedAt == nil || !posts[0].CreatedAt.Equal(want) {
		t.Fatalf("created_at = %v, want %v", posts[0].CreatedAt, want)
	}
}

func TestExtractLinkedInCustomAuthor(t *testing.T) {
	text := `Jane Doe
1d
A different voice entirely.
`
	posts := ExtractLinkedIn(text, LinkedInOptions{AuthorName: "Jane Doe", Reference: linkedInRef})
	if len(posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(posts))
	}
	if posts[0].Text != "A different voice entirely." {
		t.Fatalf("text = %q", posts[0].Text)
	}
}
