package handlers

import (
	"net/http"
	"time"

	"github.com/leadline-ai/leadline/internal/api"
	"github.com/leadline-ai/leadline/internal/domain"
)

type LeadLister interface {
	List() ([]domain.Lead, error)
}

type LeadsHandler struct {
	store LeadLister
}

func NewLeadsHandler(store LeadLister) *LeadsHandler {
	return &LeadsHandler{store: store}
}

type LeadRecordResponse struct {
	Timestamp           string `json:"timestamp"`
	Source              string `json:"source"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	Interest            string `json:"interest"`
	ConversationSummary string `json:"conversation_summary"`
}

type LeadsResponse struct {
	Leads []LeadRecordResponse `json:"leads"`
}

func (h *LeadsHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.store.List()
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]LeadRecordResponse, len(leads))
	for i, l := range leads {
		responses[i] = LeadRecordResponse{
			Timestamp:           l.Timestamp.Format(time.RFC3339),
			Source:              l.Source,
			Name:                l.Name,
			Email:               l.Email,
			Phone:               l.Phone,
			Interest:            l.Interest,
			ConversationSummary: l.ConversationSummary,
		}
	}

	api.Success(w, http.StatusOK, LeadsResponse{Leads: responses})
}
