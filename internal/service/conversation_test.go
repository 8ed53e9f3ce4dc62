package service

import (
	"context"
	"testing"

	"github.com/leadline-ai/leadline/internal/agent"
	"github.com/leadline-ai/leadline/internal/domain"
	"github.com/leadline-ai/leadline/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockComposer struct {
	mock.Mock
}

func (m *MockComposer) Answer(ctx context.Context, question string, history []llm.Message) (string, []domain.RetrievedChunk, []string) {
	args := m.Called(ctx, question, history)
	var retrieved []domain.RetrievedChunk
	if args.Get(1) != nil {
		retrieved = args.Get(1).([]domain.RetrievedChunk)
	}
	var ids []string
	if args.Get(2) != nil {
		ids = args.Get(2).([]string)
	}
	return args.String(0), retrieved, ids
}

func (m *MockComposer) Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievedChunk, error) {
	args := m.Called(ctx, query, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RetrievedChunk), args.Error(1)
}

type MockLeadSink struct {
	mock.Mock
}

func (m *MockLeadSink) Append(source string, payload domain.LeadPayload, summary string) (*domain.Lead, error) {
	args := m.Called(source, payload, summary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

type recordedTurn struct {
	question string
	answer   string
	intent   domain.Intent
	ids      []string
}

type fakeRecorder struct {
	turns []recordedTurn
}

func (r *fakeRecorder) Record(question, answer string, intent domain.Intent, retrievedIDs []string) {
	r.turns = append(r.turns, recordedTurn{question, answer, intent, retrievedIDs})
}

func newTestService(composer AnswerComposer, leads LeadSink, recorder TurnRecorder) *ConversationService {
	return NewConversationService(
		composer,
		agent.NewClassifier(agent.DefaultKeywordSets()),
		NewSessionManager(),
		leads,
		recorder,
	)
}

func TestProcessTurn_AppendsFollowUpQuestion(t *testing.T) {
	composer := new(MockComposer)
	composer.On("Answer", mock.Anything, "Tell me about your packages", mock.Anything).
		Return("We offer several membership tiers.", nil, nil)

	recorder := &fakeRecorder{}
	svc := newTestService(composer, nil, recorder)

	out := svc.ProcessTurn(context.Background(), "", "Tell me about your packages")

	assert.Equal(t, domain.IntentSales, out.Intent)
	assert.Contains(t, out.Answer, "We offer several membership tiers.")
	assert.Contains(t, out.Answer, "may I have your name?")
	assert.False(t, out.LeadCompleted)
	assert.NotEmpty(t, out.SessionID)

	require.Len(t, recorder.turns, 1)
	assert.Equal(t, out.Answer, recorder.turns[0].answer)
}

func TestProcessTurn_LeadCompletionPersistsLead(t *testing.T) {
	composer := new(MockComposer)
	composer.On("Answer", mock.Anything, mock.Anything, mock.Anything).
		Return("answer", nil, nil)

	sink := new(MockLeadSink)
	sink.On("Append", "chat", domain.LeadPayload{
		Name:     "Sam",
		Email:    "sam@x.com",
		Phone:    "+1 555 0100",
		Interest: "the premium plan",
	}, "the premium plan").Return(&domain.Lead{Name: "Sam"}, nil)

	svc := newTestService(composer, sink, &fakeRecorder{})

	ctx := context.Background()
	sessionID := ""
	for _, msg := range []string{"My name is Sam", "sam@x.com", "+1 555 0100"} {
		out := svc.ProcessTurn(ctx, sessionID, msg)
		sessionID = out.SessionID
		assert.False(t, out.LeadCompleted)
	}

	out := svc.ProcessTurn(ctx, sessionID, "the premium plan")
	assert.True(t, out.LeadCompleted)
	require.NotNil(t, out.Lead)
	assert.Equal(t, "Sam", out.Lead.Name)
	assert.Contains(t, out.Answer, "we have enough details")
	sink.AssertExpectations(t)
}

func TestProcessTurn_SessionsAreIsolated(t *testing.T) {
	composer := new(MockComposer)
	composer.On("Answer", mock.Anything, mock.Anything, mock.Anything).
		Return("answer", nil, nil)

	svc := newTestService(composer, nil, nil)
	ctx := context.Background()

	a := svc.ProcessTurn(ctx, "session-a", "My name is Ana")
	b := svc.ProcessTurn(ctx, "session-b", "I want a pricing plan")

	require.NotEqual(t, a.SessionID, b.SessionID)
	// session-b never saw Ana's name, so its sales turn asks for one
	assert.Contains(t, b.Answer, "may I have your name?")
}

func TestProcessTurn_RetrievedIDsPassedThrough(t *testing.T) {
	retrieved := []domain.RetrievedChunk{
		{Chunk: domain.Chunk{ID: "faq.txt::p0::c0", Content: "c", Source: "faq.txt"}, Score: 0.9},
	}
	composer := new(MockComposer)
	composer.On("Answer", mock.Anything, mock.Anything, mock.Anything).
		Return("grounded answer", retrieved, []string{"faq.txt::p0::c0"})

	recorder := &fakeRecorder{}
	svc := newTestService(composer, nil, recorder)

	out := svc.ProcessTurn(context.Background(), "", "what are your opening hours?")

	assert.Equal(t, []string{"faq.txt::p0::c0"}, out.RetrievedIDs)
	require.Len(t, recorder.turns, 1)
	assert.Equal(t, []string{"faq.txt::p0::c0"}, recorder.turns[0].ids)
}

func TestProcessTurn_HistoryGrowsPerTurn(t *testing.T) {
	composer := new(MockComposer)
	composer.On("Answer", mock.Anything, mock.Anything, mock.Anything).
		Return("answer", nil, nil)

	svc := newTestService(composer, nil, nil)
	ctx := context.Background()

	out := svc.ProcessTurn(ctx, "", "hello")
	svc.ProcessTurn(ctx, out.SessionID, "anyone there?")

	session := svc.sessions.Get(out.SessionID)
	assert.Len(t, session.history, 4)
}
