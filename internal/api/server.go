package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jimezsa/jobsink/internal/filter"
	"github.com/jimezsa/jobsink/internal/store"
	"github.com/rs/zerolog"
)

// Server is the thin query surface over the persisted jobs. It shares
// the filter catalog with the ingestion pipeline so query-time exclusion
// behaves identically to ingest-time exclusion.
type Server struct {
	store   *store.Store
	catalog *filter.Catalog
	logger  zerolog.Logger
	http    *http.Server
}

func New(addr string, st *store.Store, catalog *filter.Catalog, logger zerolog.Logger) *Server {
	s := &Server{
		store:   st,
		catalog: catalog,
		logger:  logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.HandleFunc("POST /jobs", s.handleCreateJob)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.logRequests(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) ListenAndServe() error {
	s.logger.Info().Str("addr", s.http.Addr).Msg("api listening")
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
