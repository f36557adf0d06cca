// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the query engine over HTTP. It is a thin read
// surface: request parsing, response envelopes, and HTTP cache headers
// live here; all filtering semantics stay in internal/query.
// See docs/ARCHITECTURE.md § HTTP Surface.
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/pdiddy/question-engine/internal/corpus"
	"github.com/pdiddy/question-engine/internal/query"
	"github.com/pdiddy/question-engine/pkg/types"
)

// cacheForever marks immutable payloads: the corpus only changes on
// redeploy, so a non-empty response can be cached indefinitely. Empty
// responses are not cached, in case they reflect a not-yet-built corpus.
const cacheForever = "public, s-maxage=31536000, max-age=31536000, immutable"

// errorResponse is the uniform error payload.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// questionsPayload is the /api/questions envelope.
type questionsPayload struct {
	Questions  []types.DisplayQuestion `json:"questions"`
	Sources    []string                `json:"sources"`
	TotalCount int                     `json:"totalCount"`
}

// Server serves read-only question queries from a corpus cache.
type Server struct {
	cache  *corpus.Cache
	query  types.QueryConfig
	logger *zap.Logger
}

// New returns a Server reading through cache. cfg.MaxResults, when
// positive, caps requests that carry no explicit limit.
func New(cache *corpus.Cache, cfg types.QueryConfig, logger *zap.Logger) *Server {
	return &Server{cache: cache, query: cfg, logger: logger}
}

// Handler builds the chi router with the full middleware stack.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Timeout(60*time.Second))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Get("/api/questions", s.handleQuestions)
	router.Get("/api/sources", s.handleSources)
	router.Get("/api/topics", s.handleTopics)

	return router
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	c, err := s.cache.Get(r.Context(), io.Discard)
	if err != nil {
		s.serviceFailure(w, err)
		return
	}

	f := filtersFromRequest(r)
	if f.Limit == nil && s.query.MaxResults > 0 {
		max := s.query.MaxResults
		f.Limit = &max
	}

	resp := query.Questions(c, f)

	display := make([]types.DisplayQuestion, len(resp.Questions))
	for i, q := range resp.Questions {
		display[i] = q.Display()
	}

	writeJSON(w, len(display) > 0, questionsPayload{
		Questions:  display,
		Sources:    resp.Sources,
		TotalCount: resp.TotalCount,
	})
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	c, err := s.cache.Get(r.Context(), io.Discard)
	if err != nil {
		s.serviceFailure(w, err)
		return
	}

	sources := query.Sources(c)
	writeJSON(w, len(sources) > 0, map[string][]string{"sources": sources})
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	c, err := s.cache.Get(r.Context(), io.Discard)
	if err != nil {
		s.serviceFailure(w, err)
		return
	}

	topics := query.Topics(c)
	writeJSON(w, len(topics) > 0, map[string][]string{"topics": topics})
}

// serviceFailure maps any engine error to a generic 500: build failures
// and read failures are indistinguishable to clients, while empty result
// sets are a normal 200 with an empty sequence.
func (s *Server) serviceFailure(w http.ResponseWriter, err error) {
	s.logger.Error("query failed", zap.Error(err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(errorResponse{
		Code:    "internal_error",
		Message: "failed to load questions",
	})
}

// filtersFromRequest parses the facet query parameters. Lists are
// comma-separated; every parameter is optional. "companies" is accepted
// as an alias for "sources" to keep old dashboard URLs working.
func filtersFromRequest(r *http.Request) query.Filters {
	params := r.URL.Query()

	sources := params.Get("sources")
	if sources == "" {
		sources = params.Get("companies")
	}

	f := query.Filters{
		Sources:      splitParam(sources),
		Difficulties: splitParam(params.Get("difficulties")),
		Topics:       splitParam(params.Get("topics")),
		Timeframes:   splitParam(params.Get("timeframes")),
		Search:       params.Get("search"),
	}

	if v := params.Get("premium"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Premium = &b
		}
	}
	if v := params.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = &n
		}
	}
	if v := params.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Offset = n
		}
	}

	return f
}

func splitParam(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// writeJSON writes v with the cache policy: immutable when the payload is
// non-empty, no-store otherwise.
func writeJSON(w http.ResponseWriter, cacheable bool, v any) {
	w.Header().Set("Content-Type", "application/json")
	if cacheable {
		w.Header().Set("Cache-Control", cacheForever)
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}
