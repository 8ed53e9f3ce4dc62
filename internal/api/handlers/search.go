package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/leadline-ai/leadline/internal/api"
	"github.com/leadline-ai/leadline/internal/domain"
)

type SearchService interface {
	Search(ctx context.Context, query string, k int) ([]domain.RetrievedChunk, error)
}

type SearchHandler struct {
	svc SearchService
}

func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type SearchResultResponse struct {
	ID      string  `json:"id"`
	Source  string  `json:"source"`
	Page    int     `json:"page,omitempty"`
	Score   float64 `json:"score"`
	Content string  `json:"content"`
}

type SearchResponse struct {
	Results []SearchResultResponse `json:"results"`
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		api.Error(w, http.StatusBadRequest, "query is required")
		return
	}

	results, err := h.svc.Search(r.Context(), req.Query, req.TopK)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]SearchResultResponse, len(results))
	for i, res := range results {
		responses[i] = SearchResultResponse{
			ID:      res.Chunk.ID,
			Source:  res.Chunk.Source,
			Page:    res.Chunk.Page,
			Score:   res.Score,
			Content: res.Chunk.Content,
		}
	}

	api.Success(w, http.StatusOK, SearchResponse{Results: responses})
}
