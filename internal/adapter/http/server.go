// Package http exposes the resolution core to the UI layer over a
// small JSON API, alongside the health and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hydsafe/jurisdictiond/internal/domain"
)

// Resolver is the jurisdiction resolution core as the API consumes it.
type Resolver interface {
	ResolveByLocation(ctx context.Context, lat, lng float64, k int) ([]domain.RankedStation, error)
	ResolveByText(ctx context.Context, query string, k int) []domain.Station
	DescribeArea(ctx context.Context, lat, lng float64) string
	CheckReadiness(ctx context.Context) error
}

// Server exposes the resolver API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	resolver   Resolver
	registry   *domain.Registry
	limit      int
	logger     *slog.Logger
}

// NewServer creates the API server. limit is the default result count
// for queries that do not pass k.
func NewServer(addr string, resolver Resolver, registry *domain.Registry, limit int, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		resolver: resolver,
		registry: registry,
		limit:    limit,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/resolve", s.handleResolve)
	mux.HandleFunc("GET /v1/area", s.handleArea)
	mux.HandleFunc("GET /v1/stations", s.handleStations)
	mux.HandleFunc("POST /v1/memos", s.handleMemo)

	s.httpServer.Handler = chain(mux, requestID, requestLogging(logger), recovery(logger))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.resolver.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
