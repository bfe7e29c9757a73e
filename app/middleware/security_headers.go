package middleware

import (
	"net/http"
	"os"
)

// SecurityHeaders sets the usual protective headers on every response.
// HSTS only goes out in production since it would pin local dev to HTTPS.
func SecurityHeaders() func(http.Handler) http.Handler {
	isProduction := os.Getenv("ENVIRONMENT") == "production"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			if isProduction {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
