package extract

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"voice-ghostwriter/internal/domain"
	"voice-ghostwriter/internal/infra/metrics"
)

// SourceNitter tags posts fetched live from a Nitter instance.
const SourceNitter = "nitter"

const fetchUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120 Safari/537.36"

var fetchClient = &http.Client{Timeout: 15 * time.Second}

// FetchNitterProfile downloads a public Nitter profile page and extracts up
// to maxPosts tweets from it.
func FetchNitterProfile(ctx context.Context, instance, profile string, maxPosts int) ([]domain.Post, error) {
	url := strings.TrimRight(instance, "/") + "/" + profile
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build nitter request: %w", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	start := time.Now()
	resp, err := fetchClient.Do(req)
	if err != nil {
		metrics.ObserveNetworkRequest("scrape", "fetch_profile", instance, start, err)
		return nil, fmt.Errorf("fetch nitter profile: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		err = fmt.Errorf("fetch nitter profile: unexpected status %d", resp.StatusCode)
		metrics.ObserveNetworkRequest("scrape", "fetch_profile", instance, start, err)
		return nil, err
	}
	metrics.ObserveNetworkRequest("scrape", "fetch_profile", instance, start, nil)

	posts, err := ExtractNitterHTML(resp.Body, SourceNitter)
	if err != nil {
		return nil, err
	}
	if maxPosts > 0 && len(posts) > maxPosts {
		posts = posts[:maxPosts]
	}
	return posts, nil
}
