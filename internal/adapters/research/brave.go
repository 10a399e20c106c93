package research

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"voice-ghostwriter/internal/domain"
	"voice-ghostwriter/internal/infra/metrics"
)

const braveEndpoint = "https://api.search.brave.com/res/v1/web/search"

// Brave queries the Brave web search API.
type Brave struct {
	http   *http.Client
	apiKey string
}

var _ domain.SearchProvider = (*Brave)(nil)

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search runs one bounded query.
func (b *Brave) Search(ctx context.Context, query string, maxResults int) ([]domain.ResearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(maxResults))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, braveEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("brave: build request: %w", err)
	}
	req.Header.Set("X-Subscription-Token", b.apiKey)

	start := time.Now()
	resp, err := b.http.Do(req)
	if err != nil {
		metrics.ObserveNetworkRequest("research", "search", "brave", start, err)
		return nil, fmt.Errorf("brave: do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveNetworkRequest("research", "search", "brave", start, err)
		return nil, fmt.Errorf("brave: read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		err = fmt.Errorf("brave: unexpected status %d", resp.StatusCode)
		metrics.ObserveNetworkRequest("research", "search", "brave", start, err)
		return nil, err
	}
	var parsed braveResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		metrics.ObserveNetworkRequest("research", "search", "brave", start, err)
		return nil, fmt.Errorf("brave: decode response: %w", err)
	}
	metrics.ObserveNetworkRequest("research", "search", "brave", start, nil)

	results := make([]domain.ResearchResult, 0, len(parsed.Web.Results))
	for _, item := range parsed.Web.Results {
		results = append(results, domain.ResearchResult{
			Title:   item.Title,
			URL:     item.URL,
			Snippet: item.Description,
		})
	}
	return results, nil
}
