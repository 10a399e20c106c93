package research

import (
	"testing"
	"time"
)

func TestNewProviderSelection(t *testing.T) {
	provider, err := New(Config{})
	if err != nil || provider != nil {
		t.Fatalf("absent config should yield (nil, nil), got (%v, %v)", provider, err)
	}

	provider, err = New(Config{Provider: "tavily"})
	if err != nil || provider != nil {
		t.Fatalf("missing key should yield (nil, nil), got (%v, %v)", provider, err)
	}

	for _, name := range []string{"tavily", "serper", "brave", "Tavily"} {
		provider, err = New(Config{Provider: name, APIKey: "k", Timeout: time.Second})
		if err != nil || provider == nil {
			t.Fatalf("provider %q: got (%v, %v)", name, provider, err)
		}
	}

	if _, err = New(Config{Provider: "bing", APIKey: "k"}); err == nil {
		t.Fatal("unknown provider should error")
	}
}
