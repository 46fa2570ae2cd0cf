package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"habitat/internal/infrastructure/ratelimit"
	"habitat/internal/shared/logger"
	"habitat/internal/shared/utils"
)

// SendRateLimit throttles notification send endpoints per authenticated
// caller. A limiter failure lets the request through rather than blocking
// all sends on a redis outage.
func SendRateLimit(limiter ratelimit.RateLimiter, requestsPerMinute int, log logger.Interface) gin.HandlerFunc {
	cfg := ratelimit.RateLimitConfig{RequestsPerMinute: requestsPerMinute}

	return func(c *gin.Context) {
		callerID, ok := CallerID(c)
		if !ok {
			c.Next()
			return
		}

		allowed, err := limiter.Allow(fmt.Sprintf("send:%d", callerID), cfg)
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
