package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"voice-ghostwriter/internal/domain"
	openaiapi "voice-ghostwriter/internal/infra/openai"
)

type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openaiapi.ChatCompletionRequest) (openaiapi.ChatCompletionResponse, error)
}

// OpenAI implements the model capability over Chat Completions.
type OpenAI struct {
	client  chatClient
	model   string
	timeout time.Duration
}

var _ domain.ModelProvider = (*OpenAI)(nil)

// NewOpenAI creates the provider.
func NewOpenAI(client chatClient, model string, timeout time.Duration) *OpenAI {
	if model == "" {
		model = "gpt-4.1-mini"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAI{client: client, model: model, timeout: timeout}
}

// Complete sends one system+user exchange and returns the response text.
func (o *OpenAI) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openaiapi.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: maxTokens,
		Messages: []openaiapi.ChatMessage{
			{Role: openaiapi.RoleSystem, Content: system},
			{Role: openaiapi.RoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai completion: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
