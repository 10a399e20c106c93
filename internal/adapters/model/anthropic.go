package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"voice-ghostwriter/internal/domain"
	anthropicapi "voice-ghostwriter/internal/infra/anthropic"
)

type messageClient interface {
	CreateMessage(ctx context.Context, req anthropicapi.MessageRequest) (anthropicapi.MessageResponse, error)
}

// Anthropic implements the model capability over the Messages API.
type Anthropic struct {
	client  messageClient
	model   string
	timeout time.Duration
}

var _ domain.ModelProvider = (*Anthropic)(nil)

// NewAnthropic creates the provider.
func NewAnthropic(client messageClient, model string, timeout time.Duration) *Anthropic {
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Anthropic{client: client, model: model, timeout: timeout}
}

// Complete sends one system+user exchange and returns the response text.
func (a *Anthropic) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.CreateMessage(ctx, anthropicapi.MessageRequest{
		Model:     a.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages: []anthropicapi.Message{
			{Role: anthropicapi.RoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic completion: %w", err)
	}
	for _, block := range resp.Content {
		if block.Type == "text" {
			return strings.TrimSpace(block.Text), nil
		}
	}
	return "", fmt.Errorf("anthropic completion: empty response")
}
