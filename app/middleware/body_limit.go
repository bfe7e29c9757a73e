package middleware

import (
	"net/http"

	"github.com/pmpmaster/pmp-api/app/config"
)

const defaultMaxBodyBytes = 1 << 20 // 1MB

// BodyLimit caps request body size so an oversized payload fails fast
// instead of being buffered by a handler. Limit comes from
// REQUEST_BODY_MAX_SIZE (bytes).
func BodyLimit() func(http.Handler) http.Handler {
	maxBytes := int64(config.GetInt("REQUEST_BODY_MAX_SIZE", defaultMaxBodyBytes))
	if maxBytes <= 0 {
		maxBytes = defaultMaxBodyBytes
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				w.Write([]byte(`{"success":false,"error":"request body too large"}`))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
