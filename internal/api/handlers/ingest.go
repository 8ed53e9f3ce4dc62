package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/leadline-ai/leadline/internal/api"
)

type IngestService interface {
	Ingest(ctx context.Context, paths []string) (int, error)
}

type IngestHandler struct {
	svc IngestService
}

func NewIngestHandler(svc IngestService) *IngestHandler {
	return &IngestHandler{svc: svc}
}

type IngestRequest struct {
	Paths []string `json:"paths"`
}

type IngestResponse struct {
	Chunks  int  `json:"chunks"`
	Indexed bool `json:"indexed"`
}

func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Paths) == 0 {
		api.Error(w, http.StatusBadRequest, "paths is required")
		return
	}

	count, err := h.svc.Ingest(r.Context(), req.Paths)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, IngestResponse{
		Chunks:  count,
		Indexed: count > 0,
	})
}
