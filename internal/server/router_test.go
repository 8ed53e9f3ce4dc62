package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/leadline-ai/leadline/internal/api/handlers"
	"github.com/leadline-ai/leadline/internal/domain"
	"github.com/leadline-ai/leadline/internal/service"
)

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) ProcessTurn(ctx context.Context, sessionID, message string) *service.TurnOutput {
	args := m.Called(ctx, sessionID, message)
	return args.Get(0).(*service.TurnOutput)
}

type MockIngestService struct {
	mock.Mock
}

func (m *MockIngestService) Ingest(ctx context.Context, paths []string) (int, error) {
	args := m.Called(ctx, paths)
	return args.Int(0), args.Error(1)
}

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, query string, k int) ([]domain.RetrievedChunk, error) {
	args := m.Called(ctx, query, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RetrievedChunk), args.Error(1)
}

type MockLeadLister struct {
	mock.Mock
}

func (m *MockLeadLister) List() ([]domain.Lead, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lead), args.Error(1)
}

type fakeAnalyticsSource struct {
	counts  map[domain.Intent]int
	records []domain.QARecord
}

func (f *fakeAnalyticsSource) IntentCounts() map[domain.Intent]int { return f.counts }
func (f *fakeAnalyticsSource) Records() []domain.QARecord          { return f.records }

func setupRouter() (http.Handler, *MockChatService, *MockIngestService, *MockSearchService, *MockLeadLister) {
	chatSvc := new(MockChatService)
	ingestSvc := new(MockIngestService)
	searchSvc := new(MockSearchService)
	leadStore := new(MockLeadLister)

	cfg := RouterConfig{
		ChatHandler:      handlers.NewChatHandler(chatSvc),
		IngestHandler:    handlers.NewIngestHandler(ingestSvc),
		SearchHandler:    handlers.NewSearchHandler(searchSvc),
		LeadsHandler:     handlers.NewLeadsHandler(leadStore),
		AnalyticsHandler: handlers.NewAnalyticsHandler(&fakeAnalyticsSource{counts: map[domain.Intent]int{domain.IntentSales: 1}}),
	}

	router := NewRouter(cfg)
	return router, chatSvc, ingestSvc, searchSvc, leadStore
}

func TestRouter_HealthEndpoint(t *testing.T) {
	router, _, _, _, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "ok", data["status"])
}

func TestRouter_ChatRoute(t *testing.T) {
	router, chatSvc, _, _, _ := setupRouter()

	chatSvc.On("ProcessTurn", mock.Anything, "", "hello").Return(&service.TurnOutput{
		SessionID: "generated-id",
		Answer:    "Hi there!",
		Intent:    domain.IntentChitchat,
	})

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"hello"}`))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	chatSvc.AssertExpectations(t)
}

func TestRouter_IngestRoute(t *testing.T) {
	router, _, ingestSvc, _, _ := setupRouter()

	ingestSvc.On("Ingest", mock.Anything, []string{"docs/faq.md"}).Return(7, nil)

	req := httptest.NewRequest(http.MethodPost, "/ingest", strings.NewReader(`{"paths":["docs/faq.md"]}`))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	ingestSvc.AssertExpectations(t)
}

func TestRouter_SearchRoute(t *testing.T) {
	router, _, _, searchSvc, _ := setupRouter()

	searchSvc.On("Search", mock.Anything, "pricing", 0).Return([]domain.RetrievedChunk{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"query":"pricing"}`))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	searchSvc.AssertExpectations(t)
}

func TestRouter_LeadsRoute(t *testing.T) {
	router, _, _, _, leadStore := setupRouter()

	leadStore.On("List").Return([]domain.Lead{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	leadStore.AssertExpectations(t)
}

func TestRouter_AnalyticsRoutes(t *testing.T) {
	router, _, _, _, _ := setupRouter()

	for _, path := range []string{"/analytics/intents", "/analytics/records"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	router, _, _, _, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
