// Package model selects and wraps generative-model backends behind the
// domain.ModelProvider capability.
package model

import (
	"fmt"
	"strings"
	"time"

	"voice-ghostwriter/internal/domain"
	"voice-ghostwriter/internal/infra/anthropic"
	"voice-ghostwriter/internal/infra/openai"
)

// Config holds provider selection and credentials.
type Config struct {
	Provider     string
	Model        string
	Timeout      time.Duration
	AnthropicKey string
	AnthropicURL string
	OpenAIKey    string
	OpenAIURL    string
}

// New builds the configured provider. A missing API key yields (nil, nil):
// configuration absence is a degraded-capability branch, not an error. Only
// an unknown provider name is rejected.
func New(cfg Config) (domain.ModelProvider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "anthropic":
		if cfg.AnthropicKey == "" {
			return nil, nil
		}
		client := anthropic.NewClient(cfg.AnthropicKey, cfg.AnthropicURL, cfg.Timeout)
		return NewAnthropic(client, cfg.Model, cfg.Timeout), nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, nil
		}
		client := openai.NewClient(cfg.OpenAIKey, cfg.OpenAIURL, cfg.Timeout)
		return NewOpenAI(client, cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q (supported: anthropic, openai)", cfg.Provider)
	}
}
