package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"todo-app-go/pkg/logger"
)

// NewRequestLogger logs one line per request through the application logger.
func NewRequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()

			next.ServeHTTP(ww, r)

			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(started),
			}
			if requestID := chimw.GetReqID(r.Context()); requestID != "" {
				args = append(args, "request_id", requestID)
			}

			switch {
			case ww.Status() >= http.StatusInternalServerError:
				log.Error("http: request failed", args...)
			default:
				log.Info("http: request", args...)
			}
		})
	}
}
