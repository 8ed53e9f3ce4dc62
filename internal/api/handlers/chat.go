package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/leadline-ai/leadline/internal/api"
	"github.com/leadline-ai/leadline/internal/domain"
	"github.com/leadline-ai/leadline/internal/service"
)

type ChatService interface {
	ProcessTurn(ctx context.Context, sessionID, message string) *service.TurnOutput
}

type ChatHandler struct {
	svc ChatService
}

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type LeadResponse struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Interest string `json:"interest"`
}

type RetrievedChunkResponse struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Page   int     `json:"page,omitempty"`
	Score  float64 `json:"score"`
}

type ChatResponse struct {
	SessionID     string                   `json:"session_id"`
	Answer        string                   `json:"answer"`
	Intent        string                   `json:"intent"`
	LeadCompleted bool                     `json:"lead_completed"`
	Lead          *LeadResponse            `json:"lead,omitempty"`
	Retrieved     []RetrievedChunkResponse `json:"retrieved"`
	RetrievedIDs  []string                 `json:"retrieved_ids"`
}

func retrievedToResponse(chunks []domain.RetrievedChunk) []RetrievedChunkResponse {
	out := make([]RetrievedChunkResponse, len(chunks))
	for i, c := range chunks {
		out[i] = RetrievedChunkResponse{
			ID:     c.Chunk.ID,
			Source: c.Chunk.Source,
			Page:   c.Chunk.Page,
			Score:  c.Score,
		}
	}
	return out
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		api.Error(w, http.StatusBadRequest, "message is required")
		return
	}

	turn := h.svc.ProcessTurn(r.Context(), req.SessionID, req.Message)

	resp := ChatResponse{
		SessionID:     turn.SessionID,
		Answer:        turn.Answer,
		Intent:        string(turn.Intent),
		LeadCompleted: turn.LeadCompleted,
		Retrieved:     retrievedToResponse(turn.Retrieved),
		RetrievedIDs:  turn.RetrievedIDs,
	}
	if turn.Lead != nil {
		resp.Lead = &LeadResponse{
			Name:     turn.Lead.Name,
			Email:    turn.Lead.Email,
			Phone:    turn.Lead.Phone,
			Interest: turn.Lead.Interest,
		}
	}

	api.Success(w, http.StatusOK, resp)
}
