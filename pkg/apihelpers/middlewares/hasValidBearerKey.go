package middlewares

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// HasValidBearerKey checks the Authorization header against the configured
// API key. An empty key disables the check.
func HasValidBearerKey(validKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if validKey == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		key, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			slog.Error("A valid API key missing")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "A valid API key missing"})
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(validKey)) != 1 {
			slog.Error("A valid API key missing")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "A valid API key missing"})
			c.Abort()
			return
		}
		c.Next()
	}
}
