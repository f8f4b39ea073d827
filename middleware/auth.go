package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-admin/services"
	"hotel-admin/utils"
)

const (
	ctxUserID = "userID"
	ctxClaims = "claims"
)

// extractToken accepts both "Bearer <token>" and a bare token.
func extractToken(authHeader string) string {
	authHeader = strings.TrimSpace(authHeader)
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return authHeader
}

// Authenticate rejects requests without a token (401) and with an invalid,
// expired or revoked one (403). On success the user id and claims are stored
// on the context.
func Authenticate(jwtSvc services.InterfaceJWTService, tokens services.TokenStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Access denied. No token provided.")
			c.Abort()
			return
		}

		claims, err := jwtSvc.ParseToken(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusForbidden, "Invalid or expired token")
			c.Abort()
			return
		}

		revoked, err := tokens.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			// fail open when the denylist is unreachable
			log.Warn("token revocation check failed", zap.Error(err))
		} else if revoked {
			utils.JSONError(c, http.StatusForbidden, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxClaims, claims)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, or 0 outside Authenticate.
func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(ctxUserID)
}

// CurrentClaims returns the parsed token claims, or nil outside Authenticate.
func CurrentClaims(c *gin.Context) *services.JWTClaims {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*services.JWTClaims)
	return claims
}
