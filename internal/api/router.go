// Package api wires handlers and middleware into the HTTP router.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/firejune/notion-github-embed/internal/api/handlers"
	"github.com/firejune/notion-github-embed/internal/api/middleware"
)

// NewRouter registers every endpoint. Fixed paths are registered before the
// catch-all /{username} route.
func NewRouter(graph *handlers.GraphHandler, health *handlers.HealthHandler, allowedOrigins []string, logger *zap.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", health.GetHealthHandler).Methods(http.MethodGet, http.MethodHead)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/{username}/graph", graph.GetGraphJSONHandler).Methods(http.MethodGet)

	r.HandleFunc("/{username}", graph.GetGraphSVGHandler).Methods(http.MethodGet, http.MethodHead)

	// Wrapped outside the router so unmatched and 405 responses are logged too.
	return middleware.CORSHandler(allowedOrigins)(middleware.RequestLogger(logger)(r))
}
