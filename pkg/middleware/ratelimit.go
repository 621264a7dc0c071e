package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"hotel-booking/pkg/apperror"
	"hotel-booking/pkg/metrics"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP. A bucket holds burst
// tokens and refills burst tokens per window.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
	log      *zap.Logger
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(requests int, window time.Duration, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		limit:    rate.Limit(float64(requests) / window.Seconds()),
		burst:    requests,
		idleTTL:  window,
		now:      time.Now,
		log:      log.With(zap.String("middleware", "ratelimit")),
	}
}

// Allow consumes one token for key.
func (rl *RateLimiter) Allow(key string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[key] = cl
	}
	cl.lastSeen = now

	return cl.limiter.AllowN(now, 1)
}

// Sweep drops buckets idle for longer than one window; an idle bucket is full
// again anyway.
func (rl *RateLimiter) Sweep() int {
	cutoff := rl.now().Add(-rl.idleTTL)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for key, cl := range rl.limiters {
		if cl.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
			removed++
		}
	}
	return removed
}

// Handler answers 429 once a client has used up its bucket.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.Allow(ip) {
			metrics.ObserveRateLimited()
			rl.log.Warn("Rate limit exceeded", zap.String("ip", ip), zap.String("path", r.URL.Path))
			utils.ResponseError(w, apperror.ErrTooManyRequests.HTTPStatus(), apperror.ErrTooManyRequests.Code)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
