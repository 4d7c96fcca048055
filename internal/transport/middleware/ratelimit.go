package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter is a per-client-IP token bucket.
type RateLimiter struct {
	buckets sync.Map // client IP -> *bucket
	stop    chan struct{}
	once    sync.Once
	now     func() time.Time
}

type bucket struct {
	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// NewRateLimiter starts a limiter whose idle buckets are dropped every
// cleanupInterval. Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{stop: make(chan struct{}), now: time.Now}
	go rl.cleanup(cleanupInterval)
	return rl
}

// Stop terminates the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Limit allows perMinute requests per client IP with a burst of the same
// size. Rejected requests get 429 with Retry-After. A non-positive
// perMinute disables limiting.
func (rl *RateLimiter) Limit(perMinute int) Middleware {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	capacity := float64(perMinute)
	refill := capacity / 60.0
	retryAfter := strconv.Itoa(int(60.0/capacity) + 1)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(clientIP(r), capacity, refill) {
				w.Header().Set("Retry-After", retryAfter)
				writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) allow(key string, capacity, refill float64) bool {
	now := rl.now()
	v, _ := rl.buckets.LoadOrStore(key, &bucket{tokens: capacity, lastRefill: now})
	b := v.(*bucket)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens = min(capacity, b.tokens+now.Sub(b.lastRefill).Seconds()*refill)
	b.lastRefill = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictIdle(10 * time.Minute)
		}
	}
}

func (rl *RateLimiter) evictIdle(idle time.Duration) {
	now := rl.now()
	rl.buckets.Range(func(key, value any) bool {
		b := value.(*bucket)
		b.mu.Lock()
		stale := now.Sub(b.lastRefill) > idle
		b.mu.Unlock()
		if stale {
			rl.buckets.Delete(key)
		}
		return true
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
