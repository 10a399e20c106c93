package domain

import "context"

// ModelProvider is a generative-model capability with a single completion call.
type ModelProvider interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}

// SearchProvider performs bounded web searches for research snippets.
type SearchProvider interface {
	Search(ctx context.Context, query string, maxResults int) ([]ResearchResult, error)
}

// Proofreader is an optional grammar-checking collaborator.
type Proofreader interface {
	Correct(ctx context.Context, text string) (string, error)
}

// Generator produces drafts in the configured voice.
type Generator interface {
	Available() bool
	Generate(ctx context.Context, req GenerateRequest) GeneratedPost
}
