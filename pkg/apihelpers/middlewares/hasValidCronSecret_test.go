package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func cronTestRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", HasValidCronSecret(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestHasValidCronSecret(t *testing.T) {
	testCases := []struct {
		name           string
		secret         string
		authHeader     string
		cronHeader     string
		expectedStatus int
	}{
		{"empty secret disables the check", "", "", "", http.StatusOK},
		{"valid bearer token", "s3cret", "Bearer s3cret", "", http.StatusOK},
		{"valid cron header", "s3cret", "", "s3cret", http.StatusOK},
		{"missing credentials", "s3cret", "", "", http.StatusUnauthorized},
		{"wrong bearer token", "s3cret", "Bearer nope", "", http.StatusUnauthorized},
		{"wrong cron header", "s3cret", "", "nope", http.StatusUnauthorized},
		{"bearer takes precedence over header", "s3cret", "Bearer nope", "s3cret", http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := cronTestRouter(tc.secret)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			if tc.cronHeader != "" {
				req.Header.Set("X-Cron-Secret", tc.cronHeader)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			if recorder.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d", tc.expectedStatus, recorder.Code)
			}
		})
	}
}
