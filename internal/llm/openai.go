package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultChatModel is the OpenAI model used for answer generation
const DefaultChatModel = "gpt-4o-mini"

// ChatAPI defines the interface for the chat-completion backend
type ChatAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIGenerator generates text through the OpenAI chat-completions API.
type OpenAIGenerator struct {
	api     ChatAPI
	model   string
	timeout time.Duration
}

// NewOpenAIGenerator creates a generator backed by the OpenAI API. A zero
// timeout disables the per-call deadline.
func NewOpenAIGenerator(apiKey, model string, timeout time.Duration) *OpenAIGenerator {
	if model == "" {
		model = DefaultChatModel
	}
	return &OpenAIGenerator{
		api:     openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}
}

// NewOpenAIGeneratorWithAPI creates a generator with an explicit backend (for testing).
func NewOpenAIGeneratorWithAPI(api ChatAPI, model string, timeout time.Duration) *OpenAIGenerator {
	if model == "" {
		model = DefaultChatModel
	}
	return &OpenAIGenerator{api: api, model: model, timeout: timeout}
}

func (g *OpenAIGenerator) Name() string { return "openai/" + g.model }

func (g *OpenAIGenerator) Generate(ctx context.Context, messages []Message, maxTokens int) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("no messages to generate from")
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	chatMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		chatMessages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	resp, err := g.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     g.model,
		Messages:  chatMessages,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
