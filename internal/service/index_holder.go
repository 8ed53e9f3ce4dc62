package service

import (
	"sync"

	"github.com/leadline-ai/leadline/internal/vectorindex"
)

// IndexHolder guards the live vector index reference. Ingestion builds a
// complete replacement off to the side and swaps it in atomically, so
// concurrent readers never observe a partially built index.
type IndexHolder struct {
	mu    sync.RWMutex
	index *vectorindex.Index
}

func NewIndexHolder(index *vectorindex.Index) *IndexHolder {
	return &IndexHolder{index: index}
}

// Current returns the live index; may be nil before any build or load.
func (h *IndexHolder) Current() *vectorindex.Index {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.index
}

// Swap replaces the live index wholesale.
func (h *IndexHolder) Swap(index *vectorindex.Index) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.index = index
}
