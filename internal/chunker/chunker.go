package chunker

import (
	"fmt"
	"strings"

	"github.com/leadline-ai/leadline/internal/domain"
)

// Chunker splits normalized document text into fixed-size character windows
// with overlap. Window size and overlap are fixed at construction.
type Chunker struct {
	size    int
	overlap int
}

// New creates a Chunker. Overlap must be strictly smaller than size,
// otherwise the window cursor would never advance.
func New(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap must be in [0, size), got %d", overlap)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// normalize collapses line endings, strips per-line surrounding whitespace,
// drops blank lines and rejoins with single newlines.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := make([]string, 0, 16)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// Chunk splits text into chunks attributed to source and page. Page 0 means
// the document is unpaged. Chunk ids are deterministic per (source, page):
// the same input always produces the same id sequence.
func (c *Chunker) Chunk(text, source string, page int) []domain.Chunk {
	runes := []rune(normalize(text))
	if len(runes) == 0 {
		return nil
	}

	var chunks []domain.Chunk
	idx := 0
	for start := 0; start < len(runes); start += c.size - c.overlap {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		content := strings.TrimSpace(string(runes[start:end]))
		if content != "" {
			chunks = append(chunks, domain.Chunk{
				ID:      domain.ChunkID(source, page, idx),
				Content: content,
				Source:  source,
				Page:    page,
			})
			idx++
		}
	}
	return chunks
}

// Size returns the configured window size in characters.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the configured window overlap in characters.
func (c *Chunker) Overlap() int { return c.overlap }
