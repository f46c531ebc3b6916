package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"tech-booking-server/config"
)

const limiterIdleTTL = time.Hour

// RateLimiter stores rate limiters per client key
type RateLimiter struct {
	limit       rate.Limit
	burst       int
	limiters    map[string]*rate.Limiter
	lastSeen    map[string]time.Time
	lastCleanup time.Time
	mutex       sync.Mutex
}

// NewRateLimiter allows perMinute requests per key with the given burst.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	return &RateLimiter{
		limit:       rate.Every(time.Minute / time.Duration(perMinute)),
		burst:       burst,
		limiters:    make(map[string]*rate.Limiter),
		lastSeen:    make(map[string]time.Time),
		lastCleanup: time.Now(),
	}
}

// GetLimiter returns the limiter for key, creating it on first use. Idle
// limiters are swept at most once per idle period.
func (rl *RateLimiter) GetLimiter(key string) *rate.Limiter {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()
	if now.Sub(rl.lastCleanup) > limiterIdleTTL {
		for k, seen := range rl.lastSeen {
			if now.Sub(seen) > limiterIdleTTL {
				delete(rl.limiters, k)
				delete(rl.lastSeen, k)
			}
		}
		rl.lastCleanup = now
	}

	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[key] = limiter
	}
	rl.lastSeen[key] = now
	return limiter
}

// AuthRateLimit throttles credential endpoints per route and client IP. A
// non-positive rate disables it.
func AuthRateLimit(cfg config.SecurityConfig) gin.HandlerFunc {
	if cfg.AuthRatePerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := NewRateLimiter(cfg.AuthRatePerMinute, cfg.AuthRateBurst)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if !limiter.GetLimiter(c.FullPath() + "|" + clientIP).Allow() {
			log.Warn().Str("ip", clientIP).Str("path", c.FullPath()).Msg("Auth rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Authentication rate limit exceeded",
				"message":     "Too many authentication attempts. Please try again later.",
				"retry_after": 60,
			})
			return
		}
		c.Next()
	}
}

// SecurityHeaders adds security headers
func SecurityHeaders(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:;")
		if production {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}

// BodyLimit rejects bodies larger than maxBytes.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":   "Request too large",
				"message": "Request body exceeds maximum size limit",
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// CORS builds the cors middleware from configuration. Without configured
// origins every origin is allowed and credentials are not.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.Origins) == 0 {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = cfg.Origins
	}
	return cors.New(corsConfig)
}
