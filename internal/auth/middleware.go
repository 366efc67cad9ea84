package auth

import (
	"strings"

	"codeberg.org/lessonplanner/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// requires a bearer credential and stores the resolved identity in the context
func RequireIdentity(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errors.Unauthorized(c, "authorization header required")
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			errors.Unauthorized(c, "invalid authorization header format")
			return
		}

		identity, err := ResolveIdentity(token, jwtSecret)
		if err != nil {
			errors.Unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ContextKeyIdentity, identity)
		c.Next()
	}
}

// extracts the identity from context after RequireIdentity
func GetIdentity(c *gin.Context) (string, bool) {
	identity := c.GetString(ContextKeyIdentity)
	return identity, identity != ""
}
