package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"loadboard/internal/auth"
	"loadboard/internal/domain"
)

// Context keys set by the auth middleware.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// Auth returns middleware that verifies the Bearer token and places the
// caller's identity in the gin context.
func Auth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole returns middleware that rejects callers whose role is not
// in the allowed set. It must run after Auth.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := CallerRole(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}

// RequireAdmin returns middleware that only admits admin and superadmin.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin)
}

// CallerID returns the authenticated user's ID from the gin context.
func CallerID(c *gin.Context) (string, bool) {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return "", false
	}
	userID, ok := id.(string)
	return userID, ok
}

// CallerRole returns the authenticated user's role from the gin context.
func CallerRole(c *gin.Context) (domain.Role, bool) {
	r, ok := c.Get(ContextRole)
	if !ok {
		return "", false
	}
	role, ok := r.(domain.Role)
	return role, ok
}
