package kit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ChiRoutePatternOrPath labels metrics by route pattern so that
// /parasites/{id} stays a single series.
func ChiRoutePatternOrPath(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}
	if rp := rctx.RoutePattern(); rp != "" {
		return rp
	}
	return r.URL.Path
}
