package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig holds configuration for inbound API rate limiting. This
// protects the server's own endpoints; the outbound ledger throttle lives
// in the request queue.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

// DefaultRateLimitConfig returns sensible defaults for read endpoints.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{Limit: 120, Window: time.Minute}
}

// CreateRateLimitConfig returns stricter limits for the mint endpoint.
func CreateRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{Limit: 10, Window: time.Minute}
}

// tokenBucket refills continuously at limit/window.
type tokenBucket struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

func newTokenBucket(maxTokens, refillRate float64) *tokenBucket {
	return &tokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

func (tb *tokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.tokens = min(tb.maxTokens, tb.tokens+elapsed*tb.refillRate)
	tb.lastRefill = now

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

func (tb *tokenBucket) retryAfter() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	if tb.tokens < 1 {
		return int((1-tb.tokens)/tb.refillRate) + 1
	}
	return 0
}

type rateLimiter struct {
	mu      sync.RWMutex
	buckets map[string]*tokenBucket
	config  RateLimitConfig
}

// RateLimit returns per-IP token-bucket rate limiting middleware.
func RateLimit(config RateLimitConfig) gin.HandlerFunc {
	rl := &rateLimiter{
		buckets: make(map[string]*tokenBucket),
		config:  config,
	}
	go rl.cleanupLoop()

	return func(c *gin.Context) {
		bucket := rl.bucket(c.ClientIP())
		if !bucket.allow() {
			retryAfter := bucket.retryAfter()
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter,
			})
			return
		}
		c.Next()
	}
}

func (rl *rateLimiter) bucket(ip string) *tokenBucket {
	rl.mu.RLock()
	bucket, ok := rl.buckets[ip]
	rl.mu.RUnlock()
	if ok {
		return bucket
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if bucket, ok = rl.buckets[ip]; ok {
		return bucket
	}
	refillRate := float64(rl.config.Limit) / rl.config.Window.Seconds()
	bucket = newTokenBucket(float64(rl.config.Limit), refillRate)
	rl.buckets[ip] = bucket
	return bucket
}

// cleanupLoop drops full buckets so idle IPs don't accumulate forever.
func (rl *rateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		for ip, bucket := range rl.buckets {
			bucket.mu.Lock()
			full := bucket.tokens >= bucket.maxTokens
			bucket.mu.Unlock()
			if full {
				delete(rl.buckets, ip)
			}
		}
		rl.mu.Unlock()
	}
}
