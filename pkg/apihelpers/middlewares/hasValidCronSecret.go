package middlewares

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// HasValidCronSecret guards endpoints meant for the external scheduler. The
// secret is accepted as a bearer token or in the X-Cron-Secret header. An
// empty configured secret disables the check (local development).
func HasValidCronSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		incoming := cronSecretFromRequest(c)
		if incoming == "" || subtle.ConstantTimeCompare([]byte(incoming), []byte(secret)) != 1 {
			slog.Warn("Unauthorized cron request", slog.String("path", c.Request.URL.Path))
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Unauthorized cron request"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func cronSecretFromRequest(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, bearerPrefix) {
		return strings.TrimSpace(auth[len(bearerPrefix):])
	}
	return strings.TrimSpace(c.GetHeader("X-Cron-Secret"))
}
