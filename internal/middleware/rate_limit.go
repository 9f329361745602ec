// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/shoplite/shoplite-backend/internal/config"
)

// ipLimiter keeps one token bucket per client IP. Buckets idle for more
// than three minutes are swept so the map cannot grow without bound.
type ipLimiter struct {
	mtx     sync.Mutex
	buckets map[string]*bucket
	rate    rate.Limit
	burst   int
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(r rate.Limit, burst int) *ipLimiter {
	if burst < 1 {
		burst = 1
	}
	l := &ipLimiter{
		buckets: make(map[string]*bucket),
		rate:    r,
		burst:   burst,
	}
	go l.sweep()
	return l
}

func (l *ipLimiter) sweep() {
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

	b, ok := l.buckets[ip]
	if !ok {
		limiter := rate.NewLimiter(l.rate, l.burst)
		l.buckets[ip] = &bucket{limiter: limiter, lastSeen: time.Now()}
		return limiter
	}

	b.lastSeen = time.Now()
	return b.limiter
}

func (l *ipLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.get(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func perMinute(n int) rate.Limit {
	if n < 1 {
		n = 1
	}
	return rate.Every(time.Minute / time.Duration(n))
}

// GeneralRateLimit covers all API traffic. AuthRateLimit and UploadRateLimit
// are the tighter buckets on login/register attempts and image uploads.
// Rates and bursts come from the RATE_LIMIT_* settings.
func GeneralRateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	rps := cfg.GeneralPerSecond
	if rps < 1 {
		rps = 1
	}
	return newIPLimiter(rate.Limit(rps), cfg.GeneralBurst).middleware()
}

func AuthRateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	return newIPLimiter(perMinute(cfg.AuthPerMinute), cfg.AuthBurst).middleware()
}

func UploadRateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	return newIPLimiter(perMinute(cfg.UploadPerMinute), cfg.UploadBurst).middleware()
}
