// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/brightcart/storefront/internal/config"
)

// ipLimiter hands out one token bucket per client IP and evicts buckets that
// have been idle for a few minutes.
type ipLimiter struct {
	buckets map[string]*bucket
	mtx     sync.Mutex
	rate    rate.Limit
	burst   int
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(r rate.Limit, burst int) *ipLimiter {
	l := &ipLimiter{
		buckets: make(map[string]*bucket),
		rate:    r,
		burst:   burst,
	}
	go l.evictIdle()
	return l
}

func (l *ipLimiter) evictIdle() {
	for {
		time.Sleep(time.Minute)
		l.mtx.Lock()
		for ip, b := range l.buckets {
			if time.Since(b.lastSeen) > 3*time.Minute {
				delete(l.buckets, ip)
			}
		}
		l.mtx.Unlock()
	}
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	b, exists := l.buckets[ip]
	if !exists {
		limiter := rate.NewLimiter(l.rate, l.burst)
		l.buckets[ip] = &bucket{limiter, time.Now()}
		return limiter
	}

	b.lastSeen = time.Now()
	return b.limiter
}

func (l *ipLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.get(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{"message": "Rate limit exceeded. Please try again later."},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Limiters carries the API's three rate-limit tiers, sized from configuration.
// With rate limiting disabled every tier is a pass-through.
type Limiters struct {
	enabled bool
	general *ipLimiter
	write   *ipLimiter
	upload  *ipLimiter
}

func NewLimiters(cfg config.RateLimitConfig) *Limiters {
	if !cfg.Enabled {
		return &Limiters{}
	}
	return &Limiters{
		enabled: true,
		general: newIPLimiter(rate.Every(time.Second), orDefault(cfg.RequestsPerSecond, 20)),
		write:   newIPLimiter(rate.Every(time.Second), orDefault(cfg.WritesPerSecond, 5)),
		upload:  newIPLimiter(rate.Every(time.Minute), orDefault(cfg.UploadsPerMinute, 10)),
	}
}

func orDefault(n, fallback int) int {
	if n > 0 {
		return n
	}
	return fallback
}

func passThrough() gin.HandlerFunc {
	return func(c *gin.Context) { c.Next() }
}

func (l *Limiters) General() gin.HandlerFunc {
	if !l.enabled {
		return passThrough()
	}
	return l.general.middleware()
}

func (l *Limiters) Write() gin.HandlerFunc {
	if !l.enabled {
		return passThrough()
	}
	return l.write.middleware()
}

func (l *Limiters) Upload() gin.HandlerFunc {
	if !l.enabled {
		return passThrough()
	}
	return l.upload.middleware()
}
