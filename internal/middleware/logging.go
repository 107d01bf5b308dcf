package middleware

import (
	"net/http"
	"time"

	"github.com/Varun5711/recipebook/internal/enrichment"
	"github.com/Varun5711/recipebook/internal/logger"
)

// AccessLog logs one line per request, including the identity resolved by
// RequireAuth further down the chain.
func AccessLog(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			holder := &identityHolder{}

			next.ServeHTTP(rec, r.WithContext(withIdentityHolder(r.Context(), holder)))

			entry := log.
				With("method", r.Method).
				With("path", r.URL.Path).
				With("status", rec.status).
				With("duration", time.Since(start).Round(time.Microsecond)).
				With("client", getClientIP(r, false))
			if holder.identity != "" {
				entry = entry.With("user", holder.identity)
			}
			entry = entry.With("agent", enrichment.ParseUserAgent(r.UserAgent()).String())

			if rec.status >= http.StatusInternalServerError {
				entry.Error("request failed")
				return
			}
			entry.Info("request")
		})
	}
}
