package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/index/internal/logger"
	"github.com/MrSnakeDoc/index/internal/utils"
)

type RateLimitConfig struct {
	Burst             int
	RefillPerIPPerMin int
	MaxEntries        int
	SweepInterval     time.Duration
	IdleTTL           time.Duration
	TrustProxy        bool
}

func (c RateLimitConfig) withDefaults() RateLimitConfig {
	if c.SweepInterval <= 0 {
		c.SweepInterval = time.Minute
	}
	if c.IdleTTL <= 0 {
		c.IdleTTL = 15 * time.Minute
	}
	if c.Burst < 1 {
		c.Burst = 1
	}
	if c.RefillPerIPPerMin < 1 {
		c.RefillPerIPPerMin = 1
	}
	if c.MaxEntries <= 0 {
		c.MaxEntries = 10_000
	}
	return c
}

type bucket struct {
	tokens   float64
	lastRef  time.Time
	lastSeen time.Time
}

// Limiter is a per-key token bucket. Buckets idle longer than IdleTTL are
// swept on SweepInterval or when MaxEntries is reached.
type Limiter struct {
	cfg       RateLimitConfig
	rate      float64 // tokens per second
	capacity  float64
	now       func() time.Time
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func NewLimiter(cfg RateLimitConfig, now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	cfg = cfg.withDefaults()
	return &Limiter{
		cfg:       cfg,
		rate:      float64(cfg.RefillPerIPPerMin) / 60.0,
		capacity:  float64(cfg.Burst),
		now:       now,
		buckets:   make(map[string]*bucket),
		lastSweep: now(),
	}
}

// Allow takes one token for key. When none is left it returns the whole
// seconds until the next one.
func (l *Limiter) Allow(key string) (ok bool, remaining int, retryAfter int) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.cfg.SweepInterval || len(l.buckets) >= l.cfg.MaxEntries {
		l.sweepLocked(now)
	}

	b := l.buckets[key]
	if b == nil {
		b = &bucket{tokens: l.capacity, lastRef: now}
		l.buckets[key] = b
	}
	b.lastSeen = now

	if elapsed := now.Sub(b.lastRef).Seconds(); elapsed > 0 {
		b.tokens = math.Min(l.capacity, b.tokens+elapsed*l.rate)
		b.lastRef = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return true, int(b.tokens), 0
	}
	return false, 0, max(1, int(math.Ceil((1-b.tokens)/l.rate)))
}

// Len reports the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) sweepLocked(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.cfg.IdleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

// RateLimit limits requests per client IP.
func RateLimit(cfg RateLimitConfig, log logger.Logger) func(http.Handler) http.Handler {
	l := NewLimiter(cfg, nil)
	limit := strconv.Itoa(l.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := utils.ClientIP(r, cfg.TrustProxy)
			ok, remaining, retry := l.Allow(key)

			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !ok {
				log.Debug("rate limited",
					logger.String("client", key),
					logger.String("path", r.URL.Path))
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				reject(w, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
