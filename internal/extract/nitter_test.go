package extract

import (
	"testing"
	"time"

	"voice-ghostwriter/internal/domain"
)

func TestExtractNitterBasic(t *testing.T) {
	text := `Nitter
Nithin Kamath @Nithin0dha
31 Mar 2024
Tweets
The best investment strategy is the one
you can stick with.

Across market cycles.
1,204
Nithin Kamath @Nithin0dha
2 Apr 2024
Load newest
Second tweet body.
`
	posts := ExtractNitter(text, NitterOptions{})

	if len(posts) != 2 {
		t.Fatalf("posts = %d, want 2", len(posts))
	}
	first := posts[0]
	if first.Platform != domain.PlatformX {
		t.Fatalf("platform = %q", first.Platform)
	}
	if first.Source != SourceNitterPDF {
		t.Fatalf("source = %q", first.Source)
	}
	want := "The best investment strategy is the one you can stick with.\n\nAcross market cycles."
	if first.Text != want {
		t.Fatalf("text = %q, want %q", first.Text, want)
	}
	wantDate := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	if first.CreatedAt == nil || !first.CreatedAt.Equal(wantDate) {
		t.Fatalf("created_at = %v, want %v", first.CreatedAt, wantDate)
	}
	if posts[1].Text != "Second tweet body." {
		t.Fatalf("second text = %q", posts[1].Text)
	}
}

func TestExtractNitterAnchorWithoutDate(t *testing.T) {
	text := `Nithin Kamath @Nithin0dha
Tweets
Media
Search
No date anywhere near.
`
	posts := ExtractNitter(text, NitterOptions{})
	if len(posts) != 0 {
		t.Fatalf("anchor without a date line should yield nothing, got %d", len(posts))
	}
}

func TestExtractNitterRejectsLooseDateFormats(t *testing.T) {
	// The per-tweet date must be exactly "D Mon YYYY"; other forms do not
	// anchor a tweet.
	text := `@Nithin0dha
Mar 31, 2024
Wrong date shape for this layout.
`
	posts := ExtractNitter(text, NitterOptions{})
	if len(posts) != 0 {
		t.Fatalf("posts = %d, want 0", len(posts))
	}
}

func TestExtractNitterNoiseAndHandleLines(t *testing.T) {
	text := `@Nithin0dha
5 Jan 2024
Show this thread
Load newest
12,345
3.4
Tweet content stays.
`
	posts := ExtractNitter(text, NitterOptions{})
	if len(posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(posts))
	}
	if posts[0].Text != "Tweet content stays." {
		t.Fatalf("text = %q", posts[0].Text)
	}
}

func TestExtractNitterCustomHandle(t *testing.T) {
	text := `@someoneelse
7 Feb 2024
A tweet from another profile.
`
	posts := ExtractNitter(text, NitterOptions{Handle: "@someoneelse"})
	if len(posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(posts))
	}
	if posts[0].Text != "A tweet from another profile." {
		t.Fatalf("text = %q", posts[0].Text)
	}
}
