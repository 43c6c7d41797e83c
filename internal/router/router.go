package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"codereview-backend/internal/handlers"
	"codereview-backend/internal/middleware"
	"codereview-backend/internal/observability"
)

const (
	ReviewPath  = "/api/review"
	WeatherPath = "/api/agents/weatherAgent/generate"
)

// New builds the public HTTP surface. A nil handler leaves its route
// unmounted, so the path answers 404 like any other unknown path.
func New(
	logger *zap.Logger,
	metrics *observability.Metrics,
	reviewHandler *handlers.ReviewHandler,
	weatherHandler *handlers.WeatherHandler,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(logger, metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.CORS)

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.NotFound)

	// Health check
	r.Get("/health", handlers.Health)

	if reviewHandler != nil {
		r.Post(ReviewPath, reviewHandler.Review)
	}
	if weatherHandler != nil {
		r.Post(WeatherPath, weatherHandler.Generate)
	}

	return r
}
