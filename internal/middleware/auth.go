package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sevatrust/core/internal/pkg/jwt"
	"github.com/sevatrust/core/internal/pkg/response"
)

const ContextKeyAdminID = "admin_id"

// Auth returns a middleware that enforces admin JWT authentication.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := jwt.Parse(extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyAdminID, claims.AdminID)
		c.Next()
	}
}

// OptionalAuth marks the request authenticated if a valid token is
// present, but does not block it.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := jwt.Parse(extractToken(c)); err == nil {
			c.Set(ContextKeyAdminID, claims.AdminID)
		}
		c.Next()
	}
}

// IsAuthenticated reports whether the request carries a valid admin token.
func IsAuthenticated(c *gin.Context) bool {
	_, ok := c.Get(ContextKeyAdminID)
	return ok
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips an optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
