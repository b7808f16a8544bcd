package catalog

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ParasiteAtlas/pkg/kit"
)

const readyTimeout = 1 * time.Second

type Server struct {
	Catalog *Service
	Log     *zap.Logger
}

// Routes returns the bare routes without throttling.
func (s *Server) Routes() http.Handler {
	return s.routes(nil)
}

// routes wraps the endpoints that fan out upstream with limit, if any.
func (s *Server) routes(limit func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := s.Catalog.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	r.Route("/parasites", func(pr chi.Router) {
		pr.With(limit).Get("/", s.list)
		pr.With(limit).Get("/search", s.search)
		pr.Get("/categories", s.categories)
		pr.Get("/{id}", s.get)
	})

	return r
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kit.WriteJSON(w, http.StatusOK, s.Catalog.Search(r.Context(), q.Get("q"), q.Get("category")))
}

// list is search with an empty query.
func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Catalog.Search(r.Context(), "", r.URL.Query().Get("category")))
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Catalog.Categories(r.Context()))
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if unescaped, err := url.PathUnescape(id); err == nil {
		id = unescaped
	}

	e, ok := s.Catalog.Get(r.Context(), id)
	if !ok {
		kit.WriteNull(w)
		return
	}
	kit.WriteJSON(w, http.StatusOK, e)
}
