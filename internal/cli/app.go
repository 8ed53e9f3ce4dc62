// Package cli implements the leadlined commands: the API server plus
// local ingest, search and chat utilities that share one runtime.
package cli

import (
	"context"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"

	"github.com/leadline-ai/leadline/internal/agent"
	"github.com/leadline-ai/leadline/internal/analytics"
	"github.com/leadline-ai/leadline/internal/chunker"
	"github.com/leadline-ai/leadline/internal/config"
	"github.com/leadline-ai/leadline/internal/embedding"
	"github.com/leadline-ai/leadline/internal/ingest"
	"github.com/leadline-ai/leadline/internal/leadstore"
	"github.com/leadline-ai/leadline/internal/llm"
	"github.com/leadline-ai/leadline/internal/rag"
	"github.com/leadline-ai/leadline/internal/service"
	"github.com/leadline-ai/leadline/internal/vectorindex"
)

// runtime holds the fully wired application: one embedding provider, one
// live index, and the services built on top of them. Every command builds
// exactly one runtime.
type runtime struct {
	cfg          *config.Config
	holder       *service.IndexHolder
	leadStore    *leadstore.Store
	analytics    *analytics.Store
	conversation *service.ConversationService
	ingest       *service.IngestService
}

func newRuntime(ctx context.Context, cfg *config.Config) (*runtime, error) {
	provider := buildProvider(ctx, cfg)
	generator := buildGenerator(cfg)

	index := vectorIndexFromDisk(cfg.VectorStoreDir)
	holder := service.NewIndexHolder(index)

	ch, err := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("build chunker: %w", err)
	}
	pipeline := ingest.New(ch, provider, cfg.VectorStoreDir)

	composer := rag.New(holder, provider, generator, rag.Config{
		TopK:           cfg.TopK,
		ScoreThreshold: cfg.ScoreThreshold,
		MaxTokens:      cfg.MaxAnswerTokens,
	})

	classifier, err := buildClassifier(cfg)
	if err != nil {
		return nil, err
	}

	leadStore, err := leadstore.New(cfg.LeadsCSV)
	if err != nil {
		return nil, fmt.Errorf("open lead store: %w", err)
	}

	analyticsStore := analytics.New()
	sessions := service.NewSessionManager()

	return &runtime{
		cfg:          cfg,
		holder:       holder,
		leadStore:    leadStore,
		analytics:    analyticsStore,
		conversation: service.NewConversationService(composer, classifier, sessions, leadStore, analyticsStore),
		ingest:       service.NewIngestService(pipeline, holder),
	}, nil
}

// buildProvider prefers the OpenAI embedding backend and falls back to the
// deterministic byte strategy when no key is configured or the probe call
// fails. The process never refuses to start over embeddings.
func buildProvider(ctx context.Context, cfg *config.Config) *embedding.Provider {
	if !cfg.HasOpenAI() {
		log.Println("embeddings: no OpenAI key configured, using deterministic fallback")
		return embedding.NewFallbackProvider()
	}

	api := embedding.NewOpenAIAdapter(cfg.OpenAIAPIKey, openai.EmbeddingModel(cfg.EmbeddingModel))
	strategy, err := embedding.NewOpenAIStrategy(ctx, api)
	if err != nil {
		log.Printf("embeddings: OpenAI probe failed, using deterministic fallback: %v", err)
		return embedding.NewFallbackProvider()
	}
	return embedding.NewProvider(strategy)
}

func buildGenerator(cfg *config.Config) llm.Generator {
	if cfg.HasOpenAI() {
		return llm.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.ChatModel, cfg.GenerateTimeout)
	}
	log.Println("llm: no OpenAI key configured, using offline generator")
	return llm.NewDummyGenerator()
}

func buildClassifier(cfg *config.Config) (*agent.Classifier, error) {
	sets := agent.DefaultKeywordSets()
	if cfg.IntentKeywordsFile != "" {
		loaded, err := agent.LoadKeywordSets(cfg.IntentKeywordsFile)
		if err != nil {
			return nil, fmt.Errorf("load intent keywords: %w", err)
		}
		sets = loaded
	}
	return agent.NewClassifier(sets), nil
}

func vectorIndexFromDisk(dir string) *vectorindex.Index {
	index := vectorindex.New()
	if index.Load(dir) {
		log.Printf("index: loaded %d chunks from %s", index.Len(), dir)
	}
	return index
}
