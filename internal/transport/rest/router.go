package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/vocab-backend/internal/config"
	"github.com/heartmarshall/vocab-backend/internal/transport/middleware"
)

// RouterDeps holds the handlers and settings mounted by NewRouter.
type RouterDeps struct {
	Words  *WordsHandler
	Health *HealthHandler
	CORS   config.CORSConfig
	Logger *slog.Logger
}

// NewRouter builds the HTTP handler. The word routes are served both at the
// root and under /api.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Get("/live", deps.Health.Live)
	r.Get("/ready", deps.Health.Ready)
	r.Get("/health", deps.Health.Health)

	r.Route("/words", deps.Words.Routes)
	r.Route("/api/words", deps.Words.Routes)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Message: "route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Message: "method not allowed"})
	})

	var cors middleware.Middleware
	if deps.CORS.AllowedOrigins != "" {
		cors = middleware.CORS(deps.CORS)
	}

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
		cors,
	)(r)
}
