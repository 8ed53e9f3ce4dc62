package handlers

import (
	"net/http"
	"time"

	"github.com/leadline-ai/leadline/internal/api"
	"github.com/leadline-ai/leadline/internal/domain"
)

type AnalyticsSource interface {
	IntentCounts() map[domain.Intent]int
	Records() []domain.QARecord
}

type AnalyticsHandler struct {
	store AnalyticsSource
}

func NewAnalyticsHandler(store AnalyticsSource) *AnalyticsHandler {
	return &AnalyticsHandler{store: store}
}

type IntentCountsResponse struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

func (h *AnalyticsHandler) IntentCounts(w http.ResponseWriter, r *http.Request) {
	counts := h.store.IntentCounts()

	out := make(map[string]int, len(counts))
	total := 0
	for intent, n := range counts {
		out[string(intent)] = n
		total += n
	}

	api.Success(w, http.StatusOK, IntentCountsResponse{Counts: out, Total: total})
}

type QARecordResponse struct {
	Timestamp    string   `json:"timestamp"`
	Question     string   `json:"question"`
	Answer       string   `json:"answer"`
	Intent       string   `json:"intent"`
	RetrievedIDs []string `json:"retrieved_ids"`
}

type QARecordsResponse struct {
	Records []QARecordResponse `json:"records"`
}

func (h *AnalyticsHandler) Records(w http.ResponseWriter, r *http.Request) {
	records := h.store.Records()

	responses := make([]QARecordResponse, len(records))
	for i, rec := range records {
		responses[i] = QARecordResponse{
			Timestamp:    rec.Timestamp.Format(time.RFC3339),
			Question:     rec.Question,
			Answer:       rec.Answer,
			Intent:       string(rec.Intent),
			RetrievedIDs: rec.RetrievedIDs,
		}
	}

	api.Success(w, http.StatusOK, QARecordsResponse{Records: responses})
}
