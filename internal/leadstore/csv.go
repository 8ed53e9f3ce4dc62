// Package leadstore persists completed leads to an append-only CSV file.
// The format is deliberately simple so the store can be swapped for a CRM
// integration later.
package leadstore

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/leadline-ai/leadline/internal/domain"
)

var header = []string{"timestamp", "source", "name", "email", "phone", "interest", "conversation_summary"}

// Store appends leads to a CSV file, creating it with a header row on
// first use.
type Store struct {
	path string
}

func New(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.ensureFile(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}

	log.Printf("leadstore: creating leads CSV at %s", s.path)
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create leads dir: %w", err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create leads file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write leads header: %w", err)
	}
	w.Flush()
	return w.Error()
}

// Append writes one completed lead and returns the stored record.
func (s *Store) Append(source string, payload domain.LeadPayload, summary string) (*domain.Lead, error) {
	lead := &domain.Lead{
		Timestamp:           time.Now().UTC(),
		Source:              source,
		Name:                payload.Name,
		Email:               payload.Email,
		Phone:               payload.Phone,
		Interest:            payload.Interest,
		ConversationSummary: summary,
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open leads file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	record := []string{
		lead.Timestamp.Format(time.RFC3339),
		lead.Source,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Interest,
		lead.ConversationSummary,
	}
	if err := w.Write(record); err != nil {
		return nil, fmt.Errorf("write lead: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush lead: %w", err)
	}

	log.Printf("leadstore: lead appended for %s (%s)", lead.Name, lead.Email)
	return lead, nil
}

// List returns all stored leads, oldest first.
func (s *Store) List() ([]domain.Lead, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open leads file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read leads file: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	leads := make([]domain.Lead, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(header) {
			continue
		}
		ts, err := time.Parse(time.RFC3339, rec[0])
		if err != nil {
			continue
		}
		leads = append(leads, domain.Lead{
			Timestamp:           ts,
			Source:              rec[1],
			Name:                rec[2],
			Email:               rec[3],
			Phone:               rec[4],
			Interest:            rec[5],
			ConversationSummary: rec[6],
		})
	}
	return leads, nil
}
