package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/HanHach/Codex-Numeris/internal/catalog"
)

// Catalog is the read side of the project store.
type Catalog interface {
	Projects(ctx context.Context) ([]catalog.Item, error)
	Project(ctx context.Context, id int64) (catalog.Item, error)
}

// HTTPConfig holds API server configuration.
type HTTPConfig struct {
	Addr     string
	AllowAll bool // allow all CORS origins
}

// HTTPServer serves the catalog API.
type HTTPServer struct {
	cfg        HTTPConfig
	catalog    Catalog
	router     chi.Router
	httpServer *http.Server
}

// NewHTTPServer creates an API server over the given catalog.
func NewHTTPServer(cfg HTTPConfig, c Catalog) *HTTPServer {
	s := &HTTPServer{cfg: cfg, catalog: c}
	s.router = s.buildRouter()
	return s
}

func (s *HTTPServer) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", s.handleProjects)
		r.Get("/projects/{id}", s.handleProject)
		r.Get("/stats", s.handleStats)
	})
	return r
}

// Handler returns the router, for tests and embedding.
func (s *HTTPServer) Handler() http.Handler { return s.router }

func (s *HTTPServer) handleProjects(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalog.Projects(r.Context())
	if err != nil {
		log.Printf("api: list projects: %v", err)
		http.Error(w, "catalog unavailable", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []catalog.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	it, err := s.catalog.Project(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("api: get project %d: %v", id, err)
		http.Error(w, "catalog unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

type countJSON struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type statsJSON struct {
	Total     int         `json:"total"`
	MaxStars  int         `json:"max_stars"`
	Oldest    string      `json:"oldest,omitempty"`
	Newest    string      `json:"newest,omitempty"`
	Languages []countJSON `json:"languages"`
	Years     []countJSON `json:"years"`
}

func counts(cs []catalog.Count) []countJSON {
	out := make([]countJSON, len(cs))
	for i, c := range cs {
		out[i] = countJSON{Label: c.Label, Count: c.N}
	}
	return out
}

func dateString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func (s *HTTPServer) handleStats(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalog.Projects(r.Context())
	if err != nil {
		log.Printf("api: stats: %v", err)
		http.Error(w, "catalog unavailable", http.StatusInternalServerError)
		return
	}
	sum := catalog.Summarize(items)
	writeJSON(w, http.StatusOK, statsJSON{
		Total:     sum.Total,
		MaxStars:  sum.MaxStars,
		Oldest:    dateString(sum.Oldest),
		Newest:    dateString(sum.Newest),
		Languages: counts(sum.Languages),
		Years:     counts(sum.Years),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Start begins listening on the configured address.
func (s *HTTPServer) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("HTTP API listening on %s", s.cfg.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
