// Package service wires the retrieval pipeline, the classifier and the
// lead machine into the turn-level operations the API and CLI consume.
package service

import (
	"context"
	"log"

	"github.com/leadline-ai/leadline/internal/agent"
	"github.com/leadline-ai/leadline/internal/domain"
	"github.com/leadline-ai/leadline/internal/llm"
)

// AnswerComposer produces grounded answers and retrieval results.
type AnswerComposer interface {
	Answer(ctx context.Context, question string, history []llm.Message) (string, []domain.RetrievedChunk, []string)
	Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievedChunk, error)
}

// LeadSink persists completed leads.
type LeadSink interface {
	Append(source string, payload domain.LeadPayload, summary string) (*domain.Lead, error)
}

// TurnRecorder receives one QA record per processed turn.
type TurnRecorder interface {
	Record(question, answer string, intent domain.Intent, retrievedIDs []string)
}

// TurnOutput is the composed result of one conversation turn.
type TurnOutput struct {
	SessionID     string
	Answer        string
	Intent        domain.Intent
	LeadCompleted bool
	Lead          *domain.LeadPayload
	Retrieved     []domain.RetrievedChunk
	RetrievedIDs  []string
}

// ConversationService orchestrates one user turn: grounded answer, intent
// classification, lead-machine transition and analytics recording.
type ConversationService struct {
	composer   AnswerComposer
	classifier *agent.Classifier
	sessions   *SessionManager
	leads      LeadSink
	recorder   TurnRecorder
	leadSource string
}

func NewConversationService(
	composer AnswerComposer,
	classifier *agent.Classifier,
	sessions *SessionManager,
	leads LeadSink,
	recorder TurnRecorder,
) *ConversationService {
	return &ConversationService{
		composer:   composer,
		classifier: classifier,
		sessions:   sessions,
		leads:      leads,
		recorder:   recorder,
		leadSource: "chat",
	}
}

// ProcessTurn fully processes one user message before the next can begin
// on the same session. A lead-store write failure is logged, not surfaced;
// the user-facing turn always completes.
func (s *ConversationService) ProcessTurn(ctx context.Context, sessionID, message string) *TurnOutput {
	session := s.sessions.Get(sessionID)
	session.mu.Lock()
	defer session.mu.Unlock()

	answer, retrieved, retrievedIDs := s.composer.Answer(ctx, message, session.history)

	intent := s.classifier.Classify(message)
	log.Printf("conversation: session=%s intent=%s", session.ID, intent)

	turn := session.machine.Observe(message, intent)

	final := answer
	if turn.FollowUp != "" {
		final += "\n\n" + turn.FollowUp
	}

	if turn.Completed && s.leads != nil {
		if _, err := s.leads.Append(s.leadSource, *turn.Payload, message); err != nil {
			log.Printf("conversation: failed to persist lead: %v", err)
		}
	}

	if s.recorder != nil {
		s.recorder.Record(message, final, intent, retrievedIDs)
	}

	session.history = append(session.history,
		llm.Message{Role: llm.RoleUser, Content: message},
		llm.Message{Role: llm.RoleAssistant, Content: final},
	)

	return &TurnOutput{
		SessionID:     session.ID,
		Answer:        final,
		Intent:        intent,
		LeadCompleted: turn.Completed,
		Lead:          turn.Payload,
		Retrieved:     retrieved,
		RetrievedIDs:  retrievedIDs,
	}
}

// Search exposes thresholded retrieval for the dashboard search box.
func (s *ConversationService) Search(ctx context.Context, query string, k int) ([]domain.RetrievedChunk, error) {
	return s.composer.Retrieve(ctx, query, k)
}
