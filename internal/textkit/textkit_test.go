package textkit

import (
	"reflect"
	"testing"
)

func TestNormalizeStripsURLsAndWhitespace(t *testing.T) {
	got := Normalize("check https://x.co now  now")
	if got != "check now now" {
		t.Fatalf("unexpected normalize result: %q", got)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize("   \n\t "); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Don't panic, it's 42!")
	want := []string{"don't", "panic", "it's", "42"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tokens: %v", got)
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("First. Second! Third?  ")
	want := []string{"First", "Second", "Third"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected sentences: %v", got)
	}
}

func TestSplitSentencesDropsEmpty(t *testing.T) {
	if got := SplitSentences("!!!"); got != nil {
		t.Fatalf("expected no sentences, got %v", got)
	}
}

func TestIsEmoji(t *testing.T) {
	cases := []struct {
		r    rune
		want bool
	}{
		{'🚀', true},
		{'☀', true},
		{'✂', true},
		{'🇮', true},
		{'a', false},
		{'₹', false},
	}
	for _, tc := range cases {
		if got := IsEmoji(tc.r); got != tc.want {
			t.Fatalf("IsEmoji(%q) = %v, want %v", tc.r, got, tc.want)
		}
	}
}

func TestHasEmoji(t *testing.T) {
	if !HasEmoji("markets up 🚀") {
		t.Fatalf("expected emoji to be detected")
	}
	if HasEmoji("plain text only") {
		t.Fatalf("did not expect emoji")
	}
}
