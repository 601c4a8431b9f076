package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RequestLogger tags every request with an id and stores a request-scoped
// logger in the context.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.With().
			Str("request_id", uuid.NewString()).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()

		ctx := logger.WithContext(r.Context())
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		logger.Info().Dur("duration", time.Since(start)).Msg("request handled")
	})
}
