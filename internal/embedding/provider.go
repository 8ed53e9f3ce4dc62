package embedding

import (
	"context"
	"log"
	"sync"
)

// Provider embeds text through a primary strategy with a deterministic byte
// fallback. The strategy and dimension are picked once at construction; a
// runtime failure of the primary logs and degrades the provider to the
// fallback for the rest of its lifetime, padded to the same dimension so
// one index never mixes vector widths. No embedding error surfaces to the
// caller.
type Provider struct {
	mu       sync.Mutex
	strategy Strategy
	fallback *ByteStrategy
	degraded bool
}

// NewProvider creates a Provider on top of a primary strategy. A nil
// primary selects the byte fallback immediately.
func NewProvider(primary Strategy) *Provider {
	if primary == nil {
		return NewFallbackProvider()
	}
	return &Provider{
		strategy: primary,
		fallback: NewByteStrategy(primary.Dimension()),
	}
}

// NewFallbackProvider creates a Provider that only uses the byte fallback.
func NewFallbackProvider() *Provider {
	fb := NewByteStrategy(FallbackDimension)
	return &Provider{strategy: fb, fallback: fb, degraded: true}
}

// Dimension returns the provider's fixed vector width.
func (p *Provider) Dimension() int { return p.fallback.Dimension() }

// StrategyName names the strategy currently in use.
func (p *Provider) StrategyName() string {
	if p.Degraded() {
		return p.fallback.Name()
	}
	return p.strategy.Name()
}

// Degraded reports whether the provider has switched to the fallback.
func (p *Provider) Degraded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.degraded
}

func (p *Provider) markDegraded() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.degraded = true
}

// Embed converts texts to vectors, one per text, preserving input order.
func (p *Provider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if !p.Degraded() {
		vectors, err := p.strategy.Embed(ctx, texts)
		if err == nil {
			return vectors, nil
		}
		log.Printf("embedding: %s strategy failed, switching to %s: %v",
			p.strategy.Name(), p.fallback.Name(), err)
		p.markDegraded()
	}
	return p.fallback.Embed(ctx, texts)
}

// EmbedOne behaves identically to Embed with a single-element batch.
func (p *Provider) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vectors, err := p.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}
