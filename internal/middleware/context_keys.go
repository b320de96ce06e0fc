package middleware

import (
	"context"
	"log/slog"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is used for values stored in the request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	claimsKey    = contextKey("claims")
)

// GetLoggerFromCtx retrieves the request-scoped logger from a context.
// It returns the default logger if none is found.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetUserIDFromContext retrieves the authenticated user ID from the request.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// AuthInfo is what the auth middleware learned from a valid access token.
type AuthInfo struct {
	UserID    string
	Username  string
	Role      domain.Role
	JTI       string
	ExpiresAt int64
}

// GetAuthInfoFromContext returns the verified token details of the current request.
func GetAuthInfoFromContext(c *gin.Context) (AuthInfo, bool) {
	info, ok := c.Request.Context().Value(claimsKey).(AuthInfo)
	return info, ok
}
