package domain

import "fmt"

// Chunk represents a bounded span of normalized document text, the atomic
// retrieval unit. Chunks are immutable once created and owned by the vector
// index metadata list.
type Chunk struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Source  string `json:"source"`
	Page    int    `json:"page,omitempty"`    // 1-based; 0 means unpaged
	Section string `json:"section,omitempty"` // reserved for future structure-aware chunking
}

// ChunkID derives the deterministic chunk identifier from its source, page
// and zero-based index within that (source, page) pair. Re-ingesting
// identical input yields identical ids.
func ChunkID(source string, page, index int) string {
	return fmt.Sprintf("%s::p%d::c%d", source, page, index)
}

// ValidateChunk validates a Chunk instance
func ValidateChunk(c *Chunk) error {
	if c == nil {
		return fmt.Errorf("chunk cannot be nil")
	}
	if c.ID == "" {
		return fmt.Errorf("chunk ID is required")
	}
	if c.Content == "" {
		return fmt.Errorf("chunk content is required")
	}
	if c.Source == "" {
		return fmt.Errorf("chunk source is required")
	}
	if c.Page < 0 {
		return fmt.Errorf("chunk page cannot be negative")
	}
	return nil
}

// RetrievedChunk is a chunk returned by similarity search together with its
// similarity score in [0,1] (higher is better).
type RetrievedChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}
