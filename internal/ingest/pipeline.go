// Package ingest orchestrates reading raw documents, chunking, embedding
// and building the persisted vector index.
package ingest

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leadline-ai/leadline/internal/chunker"
	"github.com/leadline-ai/leadline/internal/domain"
	"github.com/leadline-ai/leadline/internal/embedding"
	"github.com/leadline-ai/leadline/internal/vectorindex"
)

// Pipeline builds a fresh vector index from document files. Each run
// replaces the persisted index wholesale; there is no incremental update.
type Pipeline struct {
	chunker  *chunker.Chunker
	provider *embedding.Provider
	storeDir string
}

func New(c *chunker.Chunker, provider *embedding.Provider, storeDir string) *Pipeline {
	return &Pipeline{chunker: c, provider: provider, storeDir: storeDir}
}

// Ingest reads the given files, chunks and embeds their text and persists a
// new index. Missing files and unsupported extensions are skipped with a
// warning. A zero chunk count is a result, not an error: nothing usable was
// extracted and the previous index stays in place.
func (p *Pipeline) Ingest(ctx context.Context, paths []string) (*vectorindex.Index, int, error) {
	var chunks []domain.Chunk

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			log.Printf("ingest: file not found, skipping: %s", path)
			continue
		}

		source := filepath.Base(path)
		log.Printf("ingest: processing %s", path)

		switch strings.ToLower(filepath.Ext(path)) {
		case ".pdf":
			pages, err := readPDF(path)
			if err != nil {
				log.Printf("ingest: failed to read %s, skipping: %v", path, err)
				continue
			}
			for _, pg := range pages {
				chunks = append(chunks, p.chunker.Chunk(pg.Text, source, pg.Page)...)
			}
		case ".txt", ".md":
			text, err := readTextLike(path)
			if err != nil {
				log.Printf("ingest: failed to read %s, skipping: %v", path, err)
				continue
			}
			chunks = append(chunks, p.chunker.Chunk(text, source, 0)...)
		default:
			log.Printf("ingest: unsupported file type, skipping: %s", path)
		}
	}

	if len(chunks) == 0 {
		log.Printf("ingest: no chunks produced")
		return nil, 0, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	log.Printf("ingest: embedding %d chunks via %s", len(chunks), p.provider.StrategyName())
	vectors, err := p.provider.Embed(ctx, texts)
	if err != nil {
		return nil, 0, fmt.Errorf("embed chunks: %w", err)
	}

	index := vectorindex.New()
	if err := index.Build(vectors, chunks); err != nil {
		return nil, 0, fmt.Errorf("build index: %w", err)
	}
	if err := index.Persist(p.storeDir); err != nil {
		return nil, 0, fmt.Errorf("persist index: %w", err)
	}

	log.Printf("ingest: completed, %d chunks indexed", len(chunks))
	return index, len(chunks), nil
}
