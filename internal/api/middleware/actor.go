package middleware

import "github.com/gin-gonic/gin"

// DefaultActor is recorded in audit logs when a request does not identify
// its operator.
const DefaultActor = "api"

// Actor returns the operator identity a request acts as, taken from the
// X-Actor header. Audit log lines attribute every mutation to this value.
func Actor(c *gin.Context) string {
	if actor := c.GetHeader("X-Actor"); actor != "" {
		return actor
	}
	return DefaultActor
}
