package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/sellsense/ef-sandbox/pkg/logger"
)

// RecoverMiddleware converts handler panics into 500 responses.
type RecoverMiddleware struct {
	log *logger.Logger
}

// NewRecoverMiddleware creates a new panic recovery middleware.
func NewRecoverMiddleware(log *logger.Logger) *RecoverMiddleware {
	if log == nil {
		log = logger.NewDefault("http")
	}
	return &RecoverMiddleware{log: log}
}

// Handler returns the recovery middleware handler.
func (m *RecoverMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				m.log.WithField("path", r.URL.Path).
					WithField("panic", rec).
					Error("handler panicked")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
