package middleware

import (
	"net/http"
	"strings"
	"time"

	"stride/internal/metrics"
)

// Metrics records a duration histogram sample for every handled request.
// The route pattern matched by the mux is used as the label so metric
// cardinality stays bounded regardless of path parameters.
func Metrics(mux *http.ServeMux) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/metrics") {
				next.ServeHTTP(w, r)
				return
			}

			_, pattern := mux.Handler(r)
			if pattern == "" {
				pattern = "unmatched"
			}

			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
				written:        false,
			}

			next.ServeHTTP(rw, r)

			metrics.RecordHTTPRequest(r.Method, pattern, rw.statusCode, time.Since(start))
		})
	}
}
