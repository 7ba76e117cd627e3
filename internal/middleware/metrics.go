package middleware

import (
	"net/http"
	"time"

	"arguminds/internal/metrics"
)

// unmatchedRoute labels requests no pattern matched, keeping label cardinality bounded
const unmatchedRoute = "unmatched"

// statusRecorder captures the status code written by the handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// Metrics records request count and latency per route pattern.
// It must wrap the ServeMux directly: the mux sets r.Pattern on the request it
// receives, which outer middlewares that cloned the request never see.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := r.Pattern
			if route == "" {
				route = unmatchedRoute
			}
			m.RecordHTTPRequest(route, rec.status, time.Since(start))
		})
	}
}
