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

const serperEndpoint = "https://google.serper.dev/search"

// Serper queries the Serper search API.
type Serper struct {
	http   *http.Client
	apiKey string
}

var _ domain.SearchProvider = (*Serper)(nil)

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// Search runs one bounded query.
func (s *Serper) Search(ctx context.Context, query string, maxResults int) ([]domain.ResearchResult, error) {
	body, err := json.Marshal(serperRequest{Q: query, Num: maxResults})
	if err != nil {
		return nil, fmt.Errorf("serper: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serperEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("serper: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", s.apiKey)

	start := time.Now()
	resp, err := s.http.Do(req)
	if err != nil {
		metrics.ObserveNetworkRequest("research", "search", "serper", start, err)
		return nil, fmt.Errorf("serper: do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveNetworkRequest("research", "search", "serper", start, err)
		return nil, fmt.Errorf("serper: read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		err = fmt.Errorf("serper: unexpected status %d", resp.StatusCode)
		metrics.ObserveNetworkRequest("research", "search", "serper", start, err)
		return nil, err
	}
	var parsed serperResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		metrics.ObserveNetworkRequest("research", "search", "serper", start, err)
		return nil, fmt.Errorf("serper: decode response: %w", err)
	}
	metrics.ObserveNetworkRequest("research", "search", "serper", start, nil)

	results := make([]domain.ResearchResult, 0, len(parsed.Organic))
	for _, item := range parsed.Organic {
		results = append(results, domain.ResearchResult{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
		})
	}
	return results, nil
}
