package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	apiKey    string
	emailsDir string
}

func NewHTTPHandler(apiKey string, emailsDir string) *HttpEndpoints {
	return &HttpEndpoints{
		apiKey:    apiKey,
		emailsDir: emailsDir,
	}
}
