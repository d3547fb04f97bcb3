// Package http exposes scenario execution and stored run records over a
// small JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jdahm/lattice"
	"github.com/jdahm/lattice/pkg/backend"
	"github.com/jdahm/lattice/pkg/ports"
	"github.com/jdahm/lattice/pkg/scenario"
)

// Server routes API requests to a scenario runner and an optional run store.
type Server struct {
	runner   ports.Runner
	store    ports.RunStore
	backends []string
	version  string
	metrics  http.Handler
	logger   *slog.Logger
}

// Option configures the handler returned by NewHandler.
type Option func(*Server)

// WithStore enables the /api/runs listing, lookup and delete endpoints.
// Without a store those endpoints answer 501.
func WithStore(store ports.RunStore) Option {
	return func(s *Server) { s.store = store }
}

// WithBackends overrides the backend names reported by /api/backends.
func WithBackends(names []string) Option {
	return func(s *Server) { s.backends = names }
}

// WithVersion overrides the version reported by /api/info.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithMetrics mounts h at /metrics, typically promhttp.Handler().
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewHandler creates the HTTP handler for the given runner.
func NewHandler(runner ports.Runner, opts ...Option) http.Handler {
	s := &Server{
		runner:   runner,
		backends: backend.Names(),
		version:  lattice.Version,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/api/info", s.GetInfo)
	r.Get("/api/backends", s.GetBackends)
	r.Post("/api/runs", s.CreateRun)
	r.Get("/api/runs", s.ListRuns)
	r.Get("/api/runs/{id}", s.GetRun)
	r.Delete("/api/runs/{id}", s.DeleteRun)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /api/info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.respond(w, map[string]string{
		"app":     "lattice-http",
		"version": strings.TrimSpace(s.version),
	})
}

// GetBackends handles the GET /api/backends request.
func (s *Server) GetBackends(w http.ResponseWriter, r *http.Request) {
	s.respond(w, map[string][]string{"backends": s.backends})
}

// CreateRun handles the POST /api/runs request. The body is a scenario
// document; the response is the record of the completed run.
func (s *Server) CreateRun(w http.ResponseWriter, r *http.Request) {
	var sc scenario.Scenario
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("CreateRun: invalid request body", "error", err)
		return
	}

	rec, _, err := s.runner.RunScenario(r.Context(), &sc)
	if err != nil {
		if isScenarioError(err) {
			http.Error(w, fmt.Sprintf("Invalid scenario: %v", err), http.StatusBadRequest)
			s.logger.Warn("CreateRun: scenario rejected", "scenario", sc.Name, "error", err)
			return
		}
		http.Error(w, fmt.Sprintf("Run error: %v", err), http.StatusInternalServerError)
		s.logger.Error("CreateRun: run failed", "scenario", sc.Name, "error", err)
		return
	}

	s.logger.Info("CreateRun: run finished", "id", rec.ID, "scenario", rec.Scenario, "backend", rec.Backend)
	s.respond(w, rec)
}

// ListRuns handles the GET /api/runs request.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "No run store configured", http.StatusNotImplemented)
		return
	}

	recs, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.logger.Error("ListRuns: store list failed", "error", err)
		return
	}
	if recs == nil {
		recs = []ports.RunRecord{}
	}

	s.respond(w, recs)
}

// GetRun handles the GET /api/runs/{id} request.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "No run store configured", http.StatusNotImplemented)
		return
	}

	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrRunNotFound) {
			http.Error(w, "Run not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Get error: %v", err), http.StatusInternalServerError)
		s.logger.Error("GetRun: store get failed", "id", id, "error", err)
		return
	}

	s.respond(w, rec)
}

// DeleteRun handles the DELETE /api/runs/{id} request.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "No run store configured", http.StatusNotImplemented)
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		http.Error(w, fmt.Sprintf("Delete error: %v", err), http.StatusInternalServerError)
		s.logger.Error("DeleteRun: store delete failed", "id", id, "error", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) respond(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

// isScenarioError reports whether err stems from a bad scenario document
// rather than from the run itself.
func isScenarioError(err error) bool {
	var aggr *scenario.AggregateError
	var verr *scenario.ValidationError
	return errors.As(err, &aggr) || errors.As(err, &verr) || errors.Is(err, backend.ErrUnknownBackend)
}

// Serve runs handler on addr until ctx is canceled, then drains in-flight
// requests before returning. A nil logger falls back to slog.Default().
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("http server listening", "addr", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("listen and serve: %w", err)

	case <-ctx.Done():
		logger.Info("http server shutting down")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			if cerr := srv.Close(); cerr != nil {
				logger.Error("http server close failed", "error", cerr)
			}
			return fmt.Errorf("graceful shutdown: %w", err)
		}
	}

	return nil
}
