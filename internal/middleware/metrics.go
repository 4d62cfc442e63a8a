package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rahul4469/youtube-analyzer/internal/metrics"
)

// Metrics records request duration and in-flight count for Prometheus.
// The /metrics endpoint itself is not instrumented.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		metrics.RequestsInFlight.Inc()
		defer metrics.RequestsInFlight.Dec()

		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RequestDuration.
			WithLabelValues(routePattern(r), r.Method, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
