package service

import (
	"context"

	"github.com/leadline-ai/leadline/internal/ingest"
)

// IngestService runs the ingestion pipeline and swaps the fresh index into
// the live holder once it is fully built and persisted.
type IngestService struct {
	pipeline *ingest.Pipeline
	holder   *IndexHolder
}

func NewIngestService(pipeline *ingest.Pipeline, holder *IndexHolder) *IngestService {
	return &IngestService{pipeline: pipeline, holder: holder}
}

// Ingest rebuilds the knowledge base from the given files and returns the
// chunk count. A zero count leaves the previous index in place.
func (s *IngestService) Ingest(ctx context.Context, paths []string) (int, error) {
	index, count, err := s.pipeline.Ingest(ctx, paths)
	if err != nil {
		return 0, err
	}
	if index != nil {
		s.holder.Swap(index)
	}
	return count, nil
}
