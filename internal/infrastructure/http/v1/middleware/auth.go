package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"erpreports/internal/core/apperror"
)

// HeaderAPIKey carries the shared secret.
const HeaderAPIKey = "X-API-Key"

// APIKey middleware rejects requests whose X-API-Key does not match secret.
// Paths under /health are public. An empty secret rejects everything.
func APIKey(secret string) gin.HandlerFunc {
	want := []byte(secret)

	return func(c *gin.Context) {
		if isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		got := c.GetHeader(HeaderAPIKey)
		if got == "" {
			abortUnauthorized(c, "missing API key")
			return
		}
		if len(want) == 0 || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			abortUnauthorized(c, "invalid API key")
			return
		}

		c.Next()
	}
}

func isPublicPath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/health/")
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
