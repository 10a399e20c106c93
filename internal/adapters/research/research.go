// Package research wraps external web-search services behind the
// domain.SearchProvider capability.
package research

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"voice-ghostwriter/internal/domain"
)

// Config holds search-provider selection and credentials.
type Config struct {
	Provider string
	APIKey   string
	Timeout  time.Duration
}

// New builds the configured provider. A missing provider name or key yields
// (nil, nil): research is an optional capability.
func New(cfg Config) (domain.SearchProvider, error) {
	if cfg.Provider == "" || cfg.APIKey == "" {
		return nil, nil
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	client := &http.Client{Timeout: cfg.Timeout}
	switch strings.ToLower(cfg.Provider) {
	case "tavily":
		return &Tavily{http: client, apiKey: cfg.APIKey}, nil
	case "serper":
		return &Serper{http: client, apiKey: cfg.APIKey}, nil
	case "brave":
		return &Brave{http: client, apiKey: cfg.APIKey}, nil
	default:
		return nil, fmt.Errorf("unknown research provider %q (supported: tavily, serper, brave)", cfg.Provider)
	}
}
