// Package vectorindex implements a flat L2 nearest-neighbor index over chunk
// vectors with a positionally aligned metadata list, persisted as two
// artifacts under one directory.
package vectorindex

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/leadline-ai/leadline/internal/domain"
)

const (
	// IndexFile holds the gob-encoded vector blob.
	IndexFile = "index.gob"
	// MetaFile holds the serialized chunk metadata list.
	MetaFile = "chunks.json"
)

// Result is one search hit: the distance to the query and the position of
// the matching chunk in the metadata list.
type Result struct {
	Distance float64
	Position int
}

// Index is a brute-force L2 index. Position i in the vector list and the
// chunk list always refer to the same chunk; Build enforces this and the
// index is replaced wholesale on re-ingestion, never updated in place.
type Index struct {
	dim     int
	vectors [][]float32
	chunks  []domain.Chunk
}

func New() *Index { return &Index{} }

// Build replaces the index contents. Every vector must share one
// dimensionality and pair up with exactly one chunk.
func (ix *Index) Build(vectors [][]float32, chunks []domain.Chunk) error {
	if len(vectors) != len(chunks) {
		return domain.NewDomainErrorWithCause(domain.ErrCodeValidation,
			fmt.Sprintf("%d vectors for %d chunks", len(vectors), len(chunks)),
			domain.ErrChunkCountMismatch)
	}
	if len(vectors) == 0 {
		return domain.ErrMissingRequiredField
	}

	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return domain.NewDomainErrorWithCause(domain.ErrCodeValidation,
				fmt.Sprintf("vector %d has dimension %d, expected %d", i, len(v), dim),
				domain.ErrDimensionMismatch)
		}
	}
	for i := range chunks {
		if err := domain.ValidateChunk(&chunks[i]); err != nil {
			return fmt.Errorf("invalid chunk at position %d: %w", i, err)
		}
	}

	ix.dim = dim
	ix.vectors = vectors
	ix.chunks = chunks
	return nil
}

// IsReady reports whether the index holds at least one chunk.
func (ix *Index) IsReady() bool {
	return len(ix.vectors) > 0 && len(ix.chunks) > 0
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int { return len(ix.chunks) }

// Dimension returns the vector width of the index, 0 when empty.
func (ix *Index) Dimension() int { return ix.dim }

// Chunk returns the chunk at the given metadata position.
func (ix *Index) Chunk(pos int) domain.Chunk { return ix.chunks[pos] }

// Chunks returns the full metadata list in index order.
func (ix *Index) Chunks() []domain.Chunk { return ix.chunks }

// Search returns up to k results ordered by ascending squared L2 distance,
// best match first. Ties keep insertion order.
func (ix *Index) Search(query []float32, k int) []Result {
	if !ix.IsReady() || k <= 0 {
		return nil
	}

	results := make([]Result, len(ix.vectors))
	for i, v := range ix.vectors {
		results[i] = Result{Distance: l2Squared(query, v), Position: i}
	}
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Distance < results[b].Distance
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k]
}

func l2Squared(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	// Unmatched tail of the longer vector counts as distance from zero.
	for i := n; i < len(a); i++ {
		sum += float64(a[i]) * float64(a[i])
	}
	for i := n; i < len(b); i++ {
		sum += float64(b[i]) * float64(b[i])
	}
	return sum
}

type indexBlob struct {
	Dim     int
	Vectors [][]float32
}

// Persist writes both artifacts under dir, each through a temp file and
// rename so a crashed write never leaves a torn artifact behind.
func (ix *Index) Persist(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create vector store dir: %w", err)
	}

	blob, err := encodeGob(indexBlob{Dim: ix.dim, Vectors: ix.vectors})
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, IndexFile), blob); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	meta, err := json.Marshal(ix.chunks)
	if err != nil {
		return fmt.Errorf("encode chunk metadata: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, MetaFile), meta); err != nil {
		return fmt.Errorf("write chunk metadata: %w", err)
	}

	return nil
}

// Load reads both artifacts from dir. A missing or inconsistent store is
// not fatal: it logs, leaves the index empty and returns false.
func (ix *Index) Load(dir string) bool {
	indexPath := filepath.Join(dir, IndexFile)
	metaPath := filepath.Join(dir, MetaFile)

	indexFile, err := os.Open(indexPath)
	if err != nil {
		log.Printf("vectorindex: index artifact unavailable at %s: %v", indexPath, err)
		return false
	}
	defer indexFile.Close()

	var blob indexBlob
	if err := gob.NewDecoder(indexFile).Decode(&blob); err != nil {
		log.Printf("vectorindex: failed to decode index artifact: %v", err)
		return false
	}

	meta, err := os.ReadFile(metaPath)
	if err != nil {
		log.Printf("vectorindex: metadata artifact unavailable at %s: %v", metaPath, err)
		return false
	}

	var chunks []domain.Chunk
	if err := json.Unmarshal(meta, &chunks); err != nil {
		log.Printf("vectorindex: failed to decode chunk metadata: %v", err)
		return false
	}

	if len(blob.Vectors) != len(chunks) {
		log.Printf("vectorindex: artifacts inconsistent: %d vectors, %d chunks",
			len(blob.Vectors), len(chunks))
		return false
	}
	if len(chunks) == 0 {
		log.Printf("vectorindex: artifacts present but empty")
		return false
	}

	ix.dim = blob.Dim
	ix.vectors = blob.Vectors
	ix.chunks = chunks
	log.Printf("vectorindex: loaded %d chunks (dim=%d)", len(chunks), blob.Dim)
	return true
}

func encodeGob(blob indexBlob) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(blob); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
