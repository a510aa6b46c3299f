package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/jdu211171/schedule-website-sub007/pkg/response"
)

// CronAuth guards trigger endpoints with a shared secret presented in the
// X-Cron-Secret header. An empty configured secret disables the routes.
func CronAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			response.NotFound(c, 40400, "not found")
			c.Abort()
			return
		}
		provided := c.GetHeader("X-Cron-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			response.Unauthorized(c, 40100, "invalid cron secret")
			c.Abort()
			return
		}
		c.Next()
	}
}
