// File path: internal/llm/providers/provider.go
package providers

import "context"

// Message is one chat turn sent to a provider.
type Message struct {
	Role    string
	Content string
}

// Provider is the narrow chat port the summarizer depends on.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	Name() string
}
