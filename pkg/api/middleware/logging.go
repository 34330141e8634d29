package middleware

import (
	"net/http"
	"time"

	"github.com/dd0wney/cluso-segmenter/pkg/logging"
)

// Logging creates middleware that logs HTTP requests with timing
// information. The request ID from context is included when present.
func Logging(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			fields := []logging.Field{
				logging.String("method", r.Method),
				logging.Path(r.URL.Path),
				logging.Latency(time.Since(start)),
			}
			if requestID := GetRequestID(r); requestID != "" {
				fields = append(fields, logging.String("request_id", requestID))
			}
			logger.Info("request handled", fields...)
		})
	}
}
