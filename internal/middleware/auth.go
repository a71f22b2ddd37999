package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"apartmentbooking/internal/domain"
	"apartmentbooking/internal/pkg/jwt"
	"apartmentbooking/internal/pkg/logger"
	"apartmentbooking/internal/pkg/response"
)

const (
	CtxUserID      = "user_id"
	CtxRole        = "role"
	CtxTokenID     = "token_id"
	CtxTokenExpiry = "token_expires_at"
)

// RevocationChecker reports whether a token id was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// JWTAuth accepts valid, unrevoked bearer tokens. A nil revoked skips the
// revocation lookup.
func JWTAuth(jwtService *jwt.Service, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortError(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.AbortError(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.TokenID())
			if err != nil {
				logger.FromGin(c).Error("revocation lookup failed", zap.Error(err))
				response.AbortError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
				return
			}
			if isRevoked {
				response.AbortError(c, http.StatusUnauthorized, "TOKEN_REVOKED", "Token has been revoked")
				return
			}
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxTokenID, claims.TokenID())
		c.Set(CtxTokenExpiry, claims.Expiry())
		c.Next()
	}
}

// RequireRole lets through only callers holding one of the roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := domain.UserRole(c.GetString(CtxRole))
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		response.AbortError(c, http.StatusUnauthorized, "ROLE_NOT_ALLOWED", "Your role may not perform this action")
	}
}

// ActorFrom returns the authenticated caller set by JWTAuth.
func ActorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{
		UserID: c.GetInt64(CtxUserID),
		Role:   domain.UserRole(c.GetString(CtxRole)),
	}
}

// TokenFrom returns the id and expiry of the token that authenticated the request.
func TokenFrom(c *gin.Context) (string, time.Time) {
	return c.GetString(CtxTokenID), c.GetTime(CtxTokenExpiry)
}
