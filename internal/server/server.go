// Package server exposes the dashboard and the raw analysis JSON over
// HTTP. It reads whatever result the daemon last published; it never
// triggers work itself.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/trendhawk/trendhawk/internal/report"
	"github.com/trendhawk/trendhawk/pkg/trendhawk/analyze"
)

// Provider hands out the most recent analysis result. The second return
// is false until the first run completes.
type Provider interface {
	Current() (analyze.Result, bool)
}

// Server serves the live dashboard.
type Server struct {
	server   *http.Server
	provider Provider
}

// New builds the server on addr backed by p.
func New(addr string, p Provider) *Server {
	s := &Server{provider: p}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(30 * time.Second))

	router.Get("/", s.handleDashboard)
	router.Get("/analysis.json", s.handleAnalysisJSON)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	s.server = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.server.Handler }

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error { return s.server.ListenAndServe() }

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error { return s.server.Shutdown(ctx) }

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	res, ok := s.provider.Current()
	if !ok {
		// Empty dashboard until the first run lands.
		res = analyze.Result{}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.Render(w, res); err != nil {
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

func (s *Server) handleAnalysisJSON(w http.ResponseWriter, r *http.Request) {
	res, ok := s.provider.Current()
	if !ok {
		http.Error(w, `{"error":"no analysis yet"}`, http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		http.Error(w, "encode failed", http.StatusInternalServerError)
	}
}
