package http

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowMethods  = "GET, POST, PATCH, OPTIONS"
	corsAllowHeaders  = "Content-Type, Authorization, " + requestIDHeader
	corsExposeHeaders = requestIDHeader
	corsMaxAge        = "600"
)

// corsMiddleware lets the booking frontend call the API from its own origin.
// An empty allow list, or one containing "*", admits every origin.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	wildcard := len(allowed) == 0 || slices.Contains(allowed, "*")
	return func(c *gin.Context) {
		headers := c.Writer.Header()
		if wildcard {
			headers.Set("Access-Control-Allow-Origin", "*")
		} else {
			headers.Set("Access-Control-Allow-Origin", matchOrigin(c.GetHeader("Origin"), allowed))
			headers.Add("Vary", "Origin")
		}
		headers.Set("Access-Control-Allow-Methods", corsAllowMethods)
		headers.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		headers.Set("Access-Control-Expose-Headers", corsExposeHeaders)

		if c.Request.Method == http.MethodOptions {
			headers.Set("Access-Control-Max-Age", corsMaxAge)
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// matchOrigin echoes an allowed request origin; unknown origins get the
// first configured one so the browser rejects the response.
func matchOrigin(origin string, allowed []string) string {
	for _, candidate := range allowed {
		if origin != "" && strings.EqualFold(candidate, origin) {
			return origin
		}
	}
	return allowed[0]
}
