package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ParasiteAtlas/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	// SearchPerMinute caps searches per client IP. Zero disables the cap.
	SearchPerMinute int
	SearchBurst     int
}

// NewHandler wraps the catalog routes with request ids, panic recovery,
// access logs and, when a registry is given, request metrics.
func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))

	if deps.Registry != nil {
		metrics := kit.NewMetrics(deps.Registry)
		r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

		if deps.MetricsEnabled {
			r.With(kit.MetricsAuth(deps.MetricsToken)).
				Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
		}
	} else if deps.MetricsEnabled {
		deps.Log.Warn("metrics enabled but Registry is nil")
	}

	var limit func(http.Handler) http.Handler
	if deps.SearchPerMinute > 0 {
		limit = kit.NewIPRateLimiter(deps.SearchPerMinute, deps.SearchBurst).Middleware
	}

	r.Mount("/", s.routes(limit))
	return r
}
