// Package api exposes the query engine over HTTP. It is a thin presentation
// wrapper; all filtering and pagination lives in the store.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/a11yscan/a11yscan/internal/store"
	"github.com/a11yscan/a11yscan/internal/types"
)

// Server serves read-only views over one result store.
type Server struct {
	store *store.Store
	log   *zap.SugaredLogger
}

func New(st *store.Store, log *zap.SugaredLogger) *Server {
	return &Server{store: st, log: log}
}

// Routes mounts the API endpoints.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/api/findings", s.handleFindings)
	r.Get("/api/summary", s.handleSummary)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFindings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := store.Params{
		Page:     intParam(q.Get("page"), 1),
		PageSize: intParam(q.Get("pageSize"), 25),
		SortBy:   store.SortKey(q.Get("sortBy")),
		Search:   q.Get("search"),
	}
	for _, v := range splitParam(q.Get("severity")) {
		params.Severities = append(params.Severities, types.Impact(v))
	}
	for _, v := range splitParam(q.Get("tags")) {
		params.Tags = append(params.Tags, types.ComplianceTag(v))
	}
	writeJSON(w, http.StatusOK, s.store.Query(params))
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Summary())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func intParam(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return def
	}
	return v
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
