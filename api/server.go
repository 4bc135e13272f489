// Package api serves the catalog over HTTP as JSON.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/arthur-debert/taxostore/taxostore"
	"github.com/arthur-debert/taxostore/types"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server exposes a Catalog over HTTP.
type Server struct {
	catalog *taxostore.Catalog
	logger  *slog.Logger
	metrics *Metrics
	limiter *RateLimiter

	staticDir string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithRateLimit rejects requests above requestsPerSecond with 429. A
// non-positive rate disables limiting.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(s *Server) {
		if requestsPerSecond <= 0 {
			s.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = NewRateLimiter(requestsPerSecond, burst, nil)
	}
}

// WithStaticDir serves the files in dir under / alongside the API, for
// the browser front end.
func WithStaticDir(dir string) Option {
	return func(s *Server) { s.staticDir = dir }
}

// NewServer builds a server over catalog.
func NewServer(catalog *taxostore.Catalog, opts ...Option) *Server {
	s := &Server{
		catalog: catalog,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: NewMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.limiter != nil {
		s.limiter.logger = s.logger
	}
	return s
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Routes returns the full handler including middleware.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", s.metrics.Handler())

	mux.HandleFunc("GET /api/literature", s.handleListLiterature)
	mux.HandleFunc("POST /api/literature", s.handleUpsertLiterature)
	mux.HandleFunc("POST /api/literature/ris", s.handleImportRIS)
	mux.HandleFunc("GET /api/literature/{id}", s.handleGetLiterature)
	mux.HandleFunc("DELETE /api/literature/{id}", s.handleDeleteLiterature)

	mux.HandleFunc("GET /api/taxonomy", s.handleListTaxonomy)
	mux.HandleFunc("POST /api/taxonomy", s.handleUpsertTaxonomy)
	mux.HandleFunc("GET /api/taxonomy/{id}", s.handleGetTaxonomy)
	mux.HandleFunc("DELETE /api/taxonomy/{id}", s.handleDeleteTaxonomy)
	mux.HandleFunc("GET /api/taxonomy/{id}/literature", s.handleTaxonomyLiterature)
	mux.HandleFunc("GET /api/taxonomy/{id}/parent", s.handleTaxonomyParent)

	mux.HandleFunc("GET /api/samples", s.handleListSamples)
	mux.HandleFunc("POST /api/samples", s.handleUpsertSample)
	mux.HandleFunc("GET /api/samples/{id}", s.handleGetSample)
	mux.HandleFunc("DELETE /api/samples/{id}", s.handleDeleteSample)
	mux.HandleFunc("GET /api/samples/{id}/taxonomy", s.handleSampleTaxonomy)

	mux.HandleFunc("GET /api/generate-id/{kind}", s.handleGenerateID)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/check", s.handleCheck)

	if s.staticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(s.staticDir)))
	}

	middlewares := []func(http.Handler) http.Handler{
		CORS,
		RequestID,
		Logging(s.logger),
		s.metrics.Middleware,
	}
	if s.limiter != nil {
		middlewares = append(middlewares, s.limiter.Limit)
	}
	return Chain(middlewares...)(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, errorBody{Error: err.Error()})
}

// writeCatalogErr maps catalog errors onto status codes.
func (s *Server) writeCatalogErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, types.ErrValidation), errors.Is(err, types.ErrUnsupportedKind):
		writeErr(w, http.StatusBadRequest, err)
	case errors.Is(err, types.ErrNotFound):
		writeErr(w, http.StatusNotFound, err)
	default:
		s.logger.Error("request failed",
			"request_id", RequestIDFrom(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		writeErr(w, http.StatusInternalServerError, err)
	}
}
