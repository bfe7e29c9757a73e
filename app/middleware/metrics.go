package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pmpmaster/pmp-api/app/metrics"
)

// Metrics records Prometheus HTTP metrics per route pattern.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			// Label by route pattern, not raw path, to keep cardinality bounded.
			routePattern := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && len(rctx.RoutePatterns) > 0 {
				routePattern = rctx.RoutePatterns[len(rctx.RoutePatterns)-1]
			}

			metrics.RecordHTTPRequest(r.Method, routePattern, ww.Status(), time.Since(start))
		})
	}
}
