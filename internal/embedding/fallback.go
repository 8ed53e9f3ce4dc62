package embedding

import "context"

// FallbackDimension is the vector width used when no embedding model is
// available.
const FallbackDimension = 768

// ByteStrategy is a deterministic, model-free embedding: the UTF-8 bytes of
// the text, truncated or zero-padded to the fixed dimension, scaled into
// [0,1]. Identical input always yields an identical vector, which keeps
// exact-match retrieval working without a real model.
type ByteStrategy struct {
	dim int
}

// NewByteStrategy creates a ByteStrategy. A non-positive dim falls back to
// FallbackDimension.
func NewByteStrategy(dim int) *ByteStrategy {
	if dim <= 0 {
		dim = FallbackDimension
	}
	return &ByteStrategy{dim: dim}
}

func (s *ByteStrategy) Name() string { return "byte-fallback" }

func (s *ByteStrategy) Dimension() int { return s.dim }

func (s *ByteStrategy) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	_ = ctx
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, s.dim)
		for j, b := range []byte(text) {
			if j >= s.dim {
				break
			}
			vec[j] = float32(b) / 255.0
		}
		vectors[i] = vec
	}
	return vectors, nil
}
