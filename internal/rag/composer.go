// Package rag composes grounded answers: retrieve relevant chunks from the
// vector index, build a context-constrained prompt, call the generation
// backend and degrade to document excerpts when it fails.
package rag

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/leadline-ai/leadline/internal/domain"
	"github.com/leadline-ai/leadline/internal/embedding"
	"github.com/leadline-ai/leadline/internal/llm"
	"github.com/leadline-ai/leadline/internal/vectorindex"
)

// NotReadyAnswer is returned when no index has been built or loaded yet.
const NotReadyAnswer = "No knowledge base is indexed yet. Please upload and index business documents first."

const (
	backendFailurePrefix = "There was an error contacting the language model. " +
		"Here are the most relevant passages from your docs instead:"
	excerptLimit = 250
)

// IndexSource yields the current live index. The index reference is swapped
// wholesale on re-ingestion, so it must be fetched per call, never cached.
type IndexSource interface {
	Current() *vectorindex.Index
}

// Composer answers questions grounded in retrieved document chunks.
type Composer struct {
	source    IndexSource
	embedder  *embedding.Provider
	generator llm.Generator
	topK      int
	threshold float64
	maxTokens int
}

type Config struct {
	TopK           int
	ScoreThreshold float64
	MaxTokens      int
}

func New(source IndexSource, embedder *embedding.Provider, generator llm.Generator, cfg Config) *Composer {
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 512
	}
	return &Composer{
		source:    source,
		embedder:  embedder,
		generator: generator,
		topK:      cfg.TopK,
		threshold: cfg.ScoreThreshold,
		maxTokens: cfg.MaxTokens,
	}
}

// rewriteQuestion is the hook for future query reformulation; today it only
// trims surrounding whitespace.
func rewriteQuestion(question string, history []llm.Message) string {
	_ = history
	return strings.TrimSpace(question)
}

// Retrieve embeds the query and returns the chunks whose converted
// similarity clears the threshold, best match first. Converted similarity
// is max(0, 1-distance), clamped so it stays in [0,1].
func (c *Composer) Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievedChunk, error) {
	return c.retrieveFrom(ctx, c.source.Current(), query, k)
}

// retrieveFrom searches one specific index reference. Answer already holds
// the live index for its ready check, and a swap between that check and the
// search must not make the two steps see different indexes.
func (c *Composer) retrieveFrom(ctx context.Context, index *vectorindex.Index, query string, k int) ([]domain.RetrievedChunk, error) {
	if index == nil || !index.IsReady() {
		return nil, nil
	}
	if k <= 0 {
		k = c.topK
	}

	vec, err := c.embedder.EmbedOne(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results := index.Search(vec, k)
	retrieved := make([]domain.RetrievedChunk, 0, len(results))
	for _, r := range results {
		sim := 1.0 - r.Distance
		if sim < 0 {
			sim = 0
		}
		if sim < c.threshold {
			continue
		}
		retrieved = append(retrieved, domain.RetrievedChunk{
			Chunk: index.Chunk(r.Position),
			Score: sim,
		})
	}
	return retrieved, nil
}

// Answer produces the grounded answer text for a question, together with
// the surviving retrieved chunks and their ids in matching order. Every
// failure mode yields a usable answer; nothing propagates to the caller.
func (c *Composer) Answer(ctx context.Context, question string, history []llm.Message) (string, []domain.RetrievedChunk, []string) {
	index := c.source.Current()
	if index == nil || !index.IsReady() {
		return NotReadyAnswer, nil, nil
	}

	rewritten := rewriteQuestion(question, history)

	retrieved, err := c.retrieveFrom(ctx, index, rewritten, c.topK)
	if err != nil {
		log.Printf("rag: retrieval failed: %v", err)
		retrieved = nil
	}

	ids := make([]string, len(retrieved))
	for i, rc := range retrieved {
		ids[i] = rc.Chunk.ID
	}

	prompt := buildGroundedPrompt(rewritten, retrieved)
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: prompt},
		{Role: llm.RoleUser, Content: question},
	}

	answer, err := c.generator.Generate(ctx, messages, c.maxTokens)
	if err != nil {
		log.Printf("rag: generation backend failed, using excerpt fallback: %v", err)
		answer = excerptAnswer(retrieved)
	}

	return answer, retrieved, ids
}

// buildGroundedPrompt assembles the instruction block, the rewritten
// question and one attributed context block per retrieved chunk.
func buildGroundedPrompt(question string, retrieved []domain.RetrievedChunk) string {
	var contextBlocks []string
	sources := make([]string, 0, len(retrieved))
	seen := map[string]bool{}
	for _, rc := range retrieved {
		label := rc.Chunk.Source
		if rc.Chunk.Page > 0 {
			label += fmt.Sprintf(", page %d", rc.Chunk.Page)
		}
		contextBlocks = append(contextBlocks,
			fmt.Sprintf("[%s] (%s)\n%s", rc.Chunk.ID, label, rc.Chunk.Content))
		if !seen[rc.Chunk.Source] {
			seen[rc.Chunk.Source] = true
			sources = append(sources, rc.Chunk.Source)
		}
	}

	var b strings.Builder
	b.WriteString("You are an AI sales & support assistant for a small business.\n")
	b.WriteString("Answer the user's question using ONLY the information from the provided context.\n")
	b.WriteString("If an answer is not covered in the context, say you are not sure and suggest contacting the business.\n")
	b.WriteString("Always be concise, friendly, and conversion-oriented.\n\n")
	b.WriteString("User question (rewritten): " + question + "\n\n")
	b.WriteString(fmt.Sprintf("Context from the business documents (sources: %s):\n%s\n\n",
		strings.Join(sources, ", "), strings.Join(contextBlocks, "\n\n")))
	b.WriteString("When you respond:\n")
	b.WriteString("- Cite up to 2-3 sources in natural language, for example: \"According to Pricing.pdf, page 2, ...\".\n")
	b.WriteString("- If the question is about prices, booking, or packages, gently guide the user towards sharing their contact details so the business can follow up.\n")
	return b.String()
}

// excerptAnswer builds the deterministic degraded answer: an apology plus
// the first excerptLimit characters of each surviving chunk with its
// source attribution. The user never receives an empty answer.
func excerptAnswer(retrieved []domain.RetrievedChunk) string {
	var b strings.Builder
	b.WriteString(backendFailurePrefix)
	b.WriteString("\n\n")
	for _, rc := range retrieved {
		b.WriteString("- " + rc.Chunk.Source)
		if rc.Chunk.Page > 0 {
			b.WriteString(fmt.Sprintf(", page %d", rc.Chunk.Page))
		}
		content := rc.Chunk.Content
		if runes := []rune(content); len(runes) > excerptLimit {
			content = string(runes[:excerptLimit])
		}
		b.WriteString(": " + content + "...\n")
	}
	return b.String()
}
