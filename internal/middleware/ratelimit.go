package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// RateLimit allows perMinute requests per client, with bursts of up to perMinute.
// Authenticated requests are keyed by username, everything else by client IP.
func RateLimit(perMinute int) gin.HandlerFunc {
	return limit.NewRateLimiter(
		func(c *gin.Context) string {
			if u := Username(c); u != "" {
				return "user:" + u
			}
			return "ip:" + c.ClientIP()
		},
		func(c *gin.Context) (*rate.Limiter, time.Duration) {
			return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute), time.Hour
		},
		func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, slow down"})
		},
	)
}
