package middleware

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	applogger "github.com/pmpmaster/pmp-api/app/logger"
)

// RequestIDTracing propagates the chi request ID into the response headers
// and into a per-request zerolog logger carried on the context.
func RequestIDTracing() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := middleware.GetReqID(r.Context())
			if requestID == "" {
				requestID = strconv.FormatUint(middleware.NextRequestID(), 10)
			}

			w.Header().Set("X-Request-ID", requestID)

			logger := applogger.Logger.With().Str("request_id", requestID).Logger()
			ctx := logger.WithContext(r.Context())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoggerFromContext returns the request-scoped logger, falling back to the
// global one outside a request.
func LoggerFromContext(r *http.Request) zerolog.Logger {
	logger := zerolog.Ctx(r.Context())
	if logger.GetLevel() == zerolog.Disabled {
		return applogger.Logger
	}
	return *logger
}
