package embedding

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultEmbeddingModel is the OpenAI model used for generating embeddings
const DefaultEmbeddingModel = openai.SmallEmbedding3

// ErrEmptyBatch is returned when no texts are given to embed
var ErrEmptyBatch = errors.New("no texts to embed")

// EmbeddingAPI defines the interface for the embedding backend
type EmbeddingAPI interface {
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// OpenAIAdapter adapts the go-openai client to EmbeddingAPI
type OpenAIAdapter struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func NewOpenAIAdapter(apiKey string, model openai.EmbeddingModel) *OpenAIAdapter {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &OpenAIAdapter{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// CreateEmbeddings calls the OpenAI API to embed a batch of texts
func (a *OpenAIAdapter) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := a.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: a.model,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	// The API does not guarantee response order matches input order, so
	// place each embedding by its reported index.
	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

// OpenAIStrategy embeds text through the OpenAI embeddings API. Its
// dimension is learned from a probe call at construction.
type OpenAIStrategy struct {
	api EmbeddingAPI
	dim int
}

// NewOpenAIStrategy builds an OpenAIStrategy and probes the model once to
// learn its native output dimensionality. A probe failure means the model
// is unavailable; callers are expected to degrade to the byte fallback.
func NewOpenAIStrategy(ctx context.Context, api EmbeddingAPI) (*OpenAIStrategy, error) {
	vectors, err := api.CreateEmbeddings(ctx, []string{"test"})
	if err != nil {
		return nil, fmt.Errorf("embedding model probe failed: %w", err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, errors.New("embedding model probe returned no vector")
	}
	return &OpenAIStrategy{api: api, dim: len(vectors[0])}, nil
}

func (s *OpenAIStrategy) Name() string { return "openai" }

func (s *OpenAIStrategy) Dimension() int { return s.dim }

func (s *OpenAIStrategy) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyBatch
	}
	vectors, err := s.api.CreateEmbeddings(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}
	for i, v := range vectors {
		if len(v) != s.dim {
			return nil, fmt.Errorf("embedding %d has dimension %d, expected %d", i, len(v), s.dim)
		}
	}
	return vectors, nil
}
