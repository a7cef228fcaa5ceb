// Package middleware provides HTTP middleware for the zonekeeper REST API:
// API key authentication, request logging, and actor identification for the
// audit trail.
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jroosing/zonekeeper/internal/api/models"
)

// RequireAPIKey enforces a shared-secret API key sent as `X-API-Key`.
// An empty expected key disables the check. Comparison is constant-time.
func RequireAPIKey(expected string) gin.HandlerFunc {
	want := []byte(expected)
	return func(c *gin.Context) {
		if len(want) == 0 {
			c.Next()
			return
		}
		got := []byte(c.GetHeader("X-API-Key"))
		if subtle.ConstantTimeCompare(got, want) == 1 {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
	}
}
