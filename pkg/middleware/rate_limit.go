package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jellydator/ttlcache/v2"
	"golang.org/x/time/rate"
)

type RateLimiterConfig struct {
	RequestsPerSecond int
	Burst             int
	// How long an idle client's limiter is kept around
	TTL time.Duration
	// Closes the limiter store once done. A nil Context keeps it for the life of the process.
	Context context.Context
}

// RateLimiterMiddleware throttles clients per IP. A non-positive
// RequestsPerSecond disables limiting.
func RateLimiterMiddleware(config RateLimiterConfig) gin.HandlerFunc {
	if config.RequestsPerSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	if config.Burst <= 0 {
		config.Burst = config.RequestsPerSecond * 2
	}
	if config.TTL == 0 {
		config.TTL = 3 * time.Minute
	}

	visitors := ttlcache.NewCache()
	// Every hit extends the entry, so only idle clients expire
	visitors.SetTTL(config.TTL)

	if config.Context != nil {
		go func() {
			<-config.Context.Done()
			visitors.Close()
		}()
	}

	var mu sync.Mutex

	getVisitor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		if v, err := visitors.Get(ip); err == nil {
			return v.(*rate.Limiter)
		}

		limiter := rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst)
		visitors.Set(ip, limiter)
		return limiter
	}

	return func(c *gin.Context) {
		if !getVisitor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":     "Too many requests",
				"requestID": c.GetString("requestID"),
			})
			return
		}

		c.Next()
	}
}
