package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(cfg RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(cfg))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return r
}

func get(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitAllowsWithinLimit(t *testing.T) {
	r := newLimitedRouter(RateLimitConfig{Limit: 5, Window: time.Minute})

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(r, "10.0.0.1").Code)
	}
}

func TestRateLimitBlocksOverLimit(t *testing.T) {
	r := newLimitedRouter(RateLimitConfig{Limit: 3, Window: time.Minute})

	for i := 0; i < 3; i++ {
		get(r, "10.0.0.1")
	}
	w := get(r, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitIsPerIP(t *testing.T) {
	r := newLimitedRouter(RateLimitConfig{Limit: 1, Window: time.Minute})

	assert.Equal(t, http.StatusOK, get(r, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, get(r, "10.0.0.2").Code)
}

func TestTokenBucketRefills(t *testing.T) {
	// 100 tokens/second: an emptied bucket recovers almost immediately.
	tb := newTokenBucket(1, 100)

	assert.True(t, tb.allow())
	assert.False(t, tb.allow())

	time.Sleep(30 * time.Millisecond)
	assert.True(t, tb.allow())
}
