package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leadline-ai/leadline/internal/api"
	"github.com/leadline-ai/leadline/internal/api/handlers"
	"github.com/leadline-ai/leadline/internal/api/middleware"
)

type RouterConfig struct {
	ChatHandler      *handlers.ChatHandler
	IngestHandler    *handlers.IngestHandler
	SearchHandler    *handlers.SearchHandler
	LeadsHandler     *handlers.LeadsHandler
	AnalyticsHandler *handlers.AnalyticsHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 5 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/chat", cfg.ChatHandler.Chat)
	r.Post("/ingest", cfg.IngestHandler.Ingest)
	r.Post("/search", cfg.SearchHandler.Search)
	r.Get("/leads", cfg.LeadsHandler.List)

	r.Route("/analytics", func(r chi.Router) {
		r.Get("/intents", cfg.AnalyticsHandler.IntentCounts)
		r.Get("/records", cfg.AnalyticsHandler.Records)
	})

	return r
}
