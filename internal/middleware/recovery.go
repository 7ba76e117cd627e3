package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"arguminds/internal/httputil"
	"arguminds/internal/metrics"
)

// Recovery turns handler panics into a 500 problem and counts them.
// http.ErrAbortHandler is re-raised so net/http can drop a half-written export.
func Recovery(logger *slog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				m.RecordPanic()
				logger.Error("handler panic",
					"error", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
