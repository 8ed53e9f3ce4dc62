// Package llm wraps the text-generation backend behind a small interface so
// the answer composer can treat it as an opaque prompt-in, text-out call.
package llm

import "context"

// Message roles accepted by the chat backends.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one element of a chat prompt.
type Message struct {
	Role    string
	Content string
}

// Generator produces text from a chat prompt. Any error, including a
// deadline hit, means the backend is unavailable for that call; callers
// decide how to degrade.
type Generator interface {
	Name() string
	Generate(ctx context.Context, messages []Message, maxTokens int) (string, error)
}
