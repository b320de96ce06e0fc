package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	"github.com/SscSPs/cashflow_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// RevocationChecker reports whether an access token id was logged out.
type RevocationChecker interface {
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens.
// revoked may be nil, in which case logged-out tokens are not looked up.
func AuthMiddleware(jwtSecret string, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		if claims.Subject == "" || claims.ID == "" {
			logger.Error("Subject or jti missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsTokenRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				logger.Error("Failed to check token revocation", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
			if isRevoked {
				logger.Warn("Revoked token presented", slog.String("jti", claims.ID))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
				return
			}
		}

		info := AuthInfo{
			UserID:   claims.Subject,
			Username: claims.Username,
			Role:     domain.Role(claims.Role),
			JTI:      claims.ID,
		}
		if claims.ExpiresAt != nil {
			info.ExpiresAt = claims.ExpiresAt.Unix()
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, info.UserID)
		ctx = context.WithValue(ctx, claimsKey, info)
		ctx = WithLogger(ctx, logger.With(slog.String("user_id", info.UserID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles lets the request through only when the token carries one of roles.
// It must run after AuthMiddleware.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := GetAuthInfoFromContext(c)
		if !ok || !slices.Contains(roles, info.Role) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Access denied", slog.String("role", string(info.Role)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}
