package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"calcpad/internal/calcapi"
	"calcpad/internal/handlers"
	"calcpad/internal/observability"
)

// NewRouter assembles the middleware chain, the operational endpoints and
// the calculator API. gatherer backs /metrics.
func NewRouter(h *calcapi.Handler, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler(gatherer))

	calcapi.RegisterRoutes(r, h)

	return r
}
