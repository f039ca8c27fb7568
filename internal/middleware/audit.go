package middleware

import (
	"net/http"

	logpkg "github.com/benvon/trackme/internal/logger"
	"github.com/benvon/trackme/internal/request"
	"go.uber.org/zap"
)

// Audit records destructive requests and rate limit violations
func Audit(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			status := wrapped.statusCode
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", logpkg.SanitizePath(r.URL.Path)),
				zap.String("ip", logpkg.SanitizeString(request.ClientIP(r), logpkg.MaxGeneralStringLength)),
				zap.String("request_id", request.RequestID(r.Context())),
			}

			switch {
			case status == http.StatusTooManyRequests:
				logger.Warn("rate_limit_violation", fields...)
			case r.Method == http.MethodDelete && status < http.StatusBadRequest:
				logger.Info("record_deleted", append(fields, zap.Int("status_code", status))...)
			}
		})
	}
}
