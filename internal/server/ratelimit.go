package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/CamiloTriana75/ProyectoElden/internal/api"
	"github.com/CamiloTriana75/ProyectoElden/internal/auth"
)

// RateLimiter hands out one token bucket per caller key.
type RateLimiter struct {
	mu      sync.Mutex
	callers map[string]*caller
	rate    rate.Limit
	burst   int
	ttl     time.Duration
	now     func() time.Time
}

type caller struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(rps float64, burst int, ttl time.Duration) *RateLimiter {
	return &RateLimiter{
		callers: make(map[string]*caller),
		rate:    rate.Limit(rps),
		burst:   burst,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	c, ok := rl.callers[key]
	if !ok {
		rl.evict(now)
		c = &caller{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.callers[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// evict drops idle callers. It runs on insert, so the map never outgrows the
// set of callers seen within ttl.
func (rl *RateLimiter) evict(now time.Time) {
	for key, c := range rl.callers {
		if now.Sub(c.lastSeen) > rl.ttl {
			delete(rl.callers, key)
		}
	}
}

func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.callers)
}

// RateLimitMiddleware limits each authenticated requester, or each client IP
// when no actor is attached.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	limiter := NewRateLimiter(rps, burst, 3*time.Minute)

	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if actor, ok := auth.GetActor(c); ok {
			key = "user:" + actor.ID
		}
		if !limiter.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
