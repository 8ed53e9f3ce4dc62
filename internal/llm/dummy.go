package llm

import (
	"context"
	"strings"
)

// DummyGenerator is a deterministic offline backend used when no API key is
// configured. It never fails, which keeps local development and demos
// working end to end.
type DummyGenerator struct{}

func NewDummyGenerator() *DummyGenerator { return &DummyGenerator{} }

func (g *DummyGenerator) Name() string { return "dummy" }

func (g *DummyGenerator) Generate(ctx context.Context, messages []Message, maxTokens int) (string, error) {
	_ = ctx
	_ = maxTokens

	question := ""
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			question = strings.TrimSpace(messages[i].Content)
			break
		}
	}

	var b strings.Builder
	b.WriteString("(demo mode, no language model configured)")
	if question != "" {
		b.WriteString(" You asked: \"")
		b.WriteString(question)
		b.WriteString("\".")
	}
	b.WriteString(" Based on the indexed business documents, our team can help with pricing, bookings and support questions.")
	return b.String(), nil
}
