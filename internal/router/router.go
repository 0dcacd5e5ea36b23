package router

import (
	"net/http"

	"daily-diet/internal/handler"
	"daily-diet/internal/middleware"
	"daily-diet/internal/observability"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Session selects where the session middleware reads tokens from.
type Session struct {
	Guard      middleware.Authorizer
	CookieName string
	HeaderName string
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	mealHandler *handler.MealHandler,
	userHandler *handler.UserHandler,
	session Session,
	prom *observability.Prom,
	gatherer prometheus.Gatherer,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	mux.HandleFunc("POST /users", userHandler.Register)

	// Meal routes require a session
	requireSession := middleware.RequireSession(session.Guard, session.CookieName, session.HeaderName, logger)
	withSession := func(h http.HandlerFunc) http.Handler {
		return requireSession(h)
	}

	mux.Handle("POST /meals", withSession(mealHandler.Create))
	mux.Handle("GET /meals", withSession(mealHandler.List))
	mux.Handle("GET /meals/metrics", withSession(mealHandler.Metrics))
	mux.Handle("POST /meals/export", withSession(mealHandler.Export))
	mux.Handle("GET /meals/{id}", withSession(mealHandler.Get))
	mux.Handle("PUT /meals/{id}", withSession(mealHandler.Update))
	mux.Handle("DELETE /meals/{id}", withSession(mealHandler.Delete))

	// Apply middleware in order: Recovery -> Tracing -> RequestID -> Logging -> Prom -> CORS -> RouteName
	var handler http.Handler = observability.RouteName(mux)
	handler = middleware.CORS(handler)
	handler = prom.Middleware(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)
	handler = observability.Tracing(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
