package middlewares

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// One limiter per key (client IP in release mode). Entries idle longer than
// limiterIdleAge are dropped so the map does not grow with every IP ever seen.
const limiterIdleAge = 10 * time.Minute

type keyedLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	limiters = make(map[string]*keyedLimiter)
	mu       sync.Mutex
)

func getLimiter(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	now := time.Now()
	for k, kl := range limiters {
		if now.Sub(kl.lastSeen) > limiterIdleAge {
			delete(limiters, k)
		}
	}

	kl, exists := limiters[key]
	if !exists {
		kl = &keyedLimiter{limiter: rate.NewLimiter(r, b)}
		limiters[key] = kl
	}
	kl.lastSeen = now
	return kl.limiter
}

func RateLimitMiddleware(r rate.Limit, b int, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFunc(c)
		limiter := getLimiter(key, r, b)

		if !limiter.Allow() {
			c.AbortWithStatusJSON(429, gin.H{"error": "Too many requests. Please slow down :("})
			return
		}

		c.Next()
	}
}
