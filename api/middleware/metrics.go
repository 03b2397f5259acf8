package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cpinopacheco/sistema-inventario-BD/pkg/metrics"
)

// Metrics records per-route duration and status counts. The route label uses
// the chi pattern (e.g. /api/v1/productos/{id}) so IDs don't explode the
// label cardinality.
func Metrics(httpMetrics *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if httpMetrics == nil {
				next.ServeHTTP(w, r)
				return
			}

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}

			route := chi.RouteContext(r.Context()).RoutePattern()
			httpMetrics.ObserveRequest(route, r.Method, rec.status, time.Since(start))
		})
	}
}
