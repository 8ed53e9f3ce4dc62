// Package analytics keeps an append-only in-memory log of answered turns
// and derives the intent-frequency counts shown on the dashboard.
package analytics

import (
	"sync"
	"time"

	"github.com/leadline-ai/leadline/internal/domain"
)

type Store struct {
	mu      sync.Mutex
	records []domain.QARecord
}

func New() *Store { return &Store{} }

// Record appends one answered turn.
func (s *Store) Record(question, answer string, intent domain.Intent, retrievedIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, domain.QARecord{
		Timestamp:    time.Now().UTC(),
		Question:     question,
		Answer:       answer,
		Intent:       intent,
		RetrievedIDs: retrievedIDs,
	})
}

// IntentCounts returns how many recorded turns carried each intent.
func (s *Store) IntentCounts() map[domain.Intent]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[domain.Intent]int)
	for _, r := range s.records {
		counts[r.Intent]++
	}
	return counts
}

// Records returns a copy of all recorded turns, oldest first.
func (s *Store) Records() []domain.QARecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.QARecord, len(s.records))
	copy(out, s.records)
	return out
}
