package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"voice-ghostwriter/internal/domain"
	"voice-ghostwriter/internal/infra/metrics"
)

const tavilyEndpoint = "https://api.tavily.com/search"

// Tavily queries the Tavily search API.
type Tavily struct {
	http   *http.Client
	apiKey string
}

var _ domain.SearchProvider = (*Tavily)(nil)

type tavilyRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
		Snippet string `json:"snippet"`
	} `json:"results"`
}

// Search runs one bounded query.
func (t *Tavily) Search(ctx context.Context, query string, maxResults int) ([]domain.ResearchResult, error) {
	body, err := json.Marshal(tavilyRequest{
		APIKey:      t.apiKey,
		Query:       query,
		SearchDepth: "basic",
		MaxResults:  maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("tavily: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tavilyEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("tavily: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := t.http.Do(req)
	if err != nil {
		metrics.ObserveNetworkRequest("research", "search", "tavily", start, err)
		return nil, fmt.Errorf("tavily: do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveNetworkRequest("research", "search", "tavily", start, err)
		return nil, fmt.Errorf("tavily: read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		err = fmt.Errorf("tavily: unexpected status %d", resp.StatusCode)
		metrics.ObserveNetworkRequest("research", "search", "tavily", start, err)
		return nil, err
	}
	var parsed tavilyResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		metrics.ObserveNetworkRequest("research", "search", "tavily", start, err)
		return nil, fmt.Errorf("tavily: decode response: %w", err)
	}
	metrics.ObserveNetworkRequest("research", "search", "tavily", start, nil)

	results := make([]domain.ResearchResult, 0, len(parsed.Results))
	for _, item := range parsed.Results {
		snippet := item.Content
		if snippet == "" {
			snippet = item.Snippet
		}
		results = append(results, domain.ResearchResult{
			Title:   item.Title,
			URL:     item.URL,
			Snippet: snippet,
		})
	}
	return results, nil
}
