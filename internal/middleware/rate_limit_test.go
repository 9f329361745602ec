// internal/middleware/rate_limit_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/shoplite/shoplite-backend/internal/config"
)

func rateLimitedEngine(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", handler, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func ping(r *gin.Engine, ip string) int {
	req := httptest.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestAuthRateLimitBlocksAfterBurst(t *testing.T) {
	cfg := config.RateLimitConfig{AuthPerMinute: 1, AuthBurst: 2}
	r := rateLimitedEngine(AuthRateLimit(cfg))

	assert.Equal(t, http.StatusOK, ping(r, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, ping(r, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, ping(r, "10.0.0.1"))
}

func TestRateLimitBucketsArePerIP(t *testing.T) {
	cfg := config.RateLimitConfig{UploadPerMinute: 1, UploadBurst: 1}
	r := rateLimitedEngine(UploadRateLimit(cfg))

	assert.Equal(t, http.StatusOK, ping(r, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, ping(r, "10.0.0.1"))

	// An exhausted bucket for one IP does not affect another.
	assert.Equal(t, http.StatusOK, ping(r, "10.0.0.2"))
}

func TestGeneralRateLimitDefaultsSurviveZeroConfig(t *testing.T) {
	// Zero values floor to a 1/s, burst 1 limiter instead of one that
	// rejects everything.
	r := rateLimitedEngine(GeneralRateLimit(config.RateLimitConfig{}))

	assert.Equal(t, http.StatusOK, ping(r, "10.0.0.3"))
}
