package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/waste3d/vod-platform/internal/infrastructure/security"
)

const (
	UserIDKey = "userId"
	RoleKey   = "role"

	AccessCookie = "access_token"
)

// DenyFunc writes an authentication failure and aborts the chain.
type DenyFunc func(c *gin.Context, status int, message string)

// DenyJSON is the default DenyFunc.
func DenyJSON(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// AuthMiddleware accepts a bearer token or, for browser navigation, the access_token cookie.
// Failures go to deny, or DenyJSON when deny is nil.
func AuthMiddleware(tm *security.TokenManager, deny DenyFunc) gin.HandlerFunc {
	if deny == nil {
		deny = DenyJSON
	}
	return func(c *gin.Context) {
		accessToken, ok := bearer(c)
		if !ok {
			deny(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}
		if accessToken == "" {
			deny(c, http.StatusUnauthorized, "Authorization required")
			return
		}

		claims, err := tm.ValidateAccessToken(accessToken)
		if err != nil {
			deny(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

func bearer(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		cookie, _ := c.Cookie(AccessCookie)
		return cookie, true
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// RequireRoles lets the request through when the authenticated role is one of allowed.
func RequireRoles(allowed ...string) gin.HandlerFunc {
	roleSet := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		roleSet[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role not found"})
			return
		}
		if _, ok := roleSet[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}
