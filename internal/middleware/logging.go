package middleware

import (
	"net/http"
	"time"

	"github.com/sellsense/ef-sandbox/pkg/logger"
)

// LoggingMiddleware logs each request with its response status and duration.
type LoggingMiddleware struct {
	log *logger.Logger
}

// NewLoggingMiddleware creates a new request logging middleware.
func NewLoggingMiddleware(log *logger.Logger) *LoggingMiddleware {
	if log == nil {
		log = logger.NewDefault("http")
	}
	return &LoggingMiddleware{log: log}
}

// Handler returns the logging middleware handler.
func (m *LoggingMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.log.WithField("method", r.Method).
			WithField("path", r.URL.Path).
			WithField("status", rec.status).
			WithField("duration", time.Since(start).String()).
			Debug("request handled")
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
