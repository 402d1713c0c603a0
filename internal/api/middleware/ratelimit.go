package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/tasktrack/tasktrack-api/internal/api/shared"
	"github.com/tasktrack/tasktrack-api/internal/config"
)

// RateLimiter bounds the request rate per client before any handler runs.
// It sits in front of authentication, so unauthenticated endpoints
// (login, registration) are protected from brute force as well.
//
// Each client gets a token bucket refilling at max-requests-per-window
// with a burst of the full window allowance, so the (N+1)th request
// inside one window is rejected. State is process-wide; stale client
// entries are evicted lazily to bound memory.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter

	limit    rate.Limit
	burst    int
	window   time.Duration
	timeFunc func() time.Time // Injectable for testing

	lastSweep time.Time
}

// clientLimiter pairs a limiter with its last activity for eviction.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// staleAfterWindows is the number of idle windows after which a client's
// bucket is dropped. An evicted client that returns simply gets a fresh
// full bucket, which is the correct behavior after that much idle time.
const staleAfterWindows = 3

// NewRateLimiter creates a RateLimiter from configuration.
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	window := time.Duration(cfg.WindowSeconds) * time.Second
	return &RateLimiter{
		clients:  make(map[string]*clientLimiter),
		limit:    rate.Limit(float64(cfg.MaxRequests) / window.Seconds()),
		burst:    cfg.MaxRequests,
		window:   window,
		timeFunc: time.Now,
	}
}

// Limit is the middleware entry point. Rejected requests receive
// 429 with a Retry-After header and never reach the next handler.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// chi's RealIP middleware has already resolved RemoteAddr
		retryAfter, ok := rl.Admit(clientKey(r))
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests,
				"Too many requests", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Admit checks and consumes one unit of the client's allowance.
// Returns (0, true) when the request is admitted, or (retryAfter, false)
// when it must be rejected. Check-and-consume is atomic per client key:
// the whole operation happens under the limiter lock, so two concurrent
// requests cannot both pass the same boundary check.
func (rl *RateLimiter) Admit(key string) (time.Duration, bool) {
	now := rl.timeFunc()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.sweepLocked(now)

	client, ok := rl.clients[key]
	if !ok {
		client = &clientLimiter{
			limiter: rate.NewLimiter(rl.limit, rl.burst),
		}
		rl.clients[key] = client
	}
	client.lastSeen = now

	res := client.limiter.ReserveN(now, 1)
	if !res.OK() {
		return rl.window, false
	}
	if delay := res.DelayFrom(now); delay > 0 {
		// Not admitted: return the token so the rejected request does not
		// consume allowance.
		res.CancelAt(now)
		return delay, false
	}

	return 0, true
}

// sweepLocked drops clients idle for several windows. Runs at most once
// per window to keep the common path cheap. Caller holds rl.mu.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	rl.lastSweep = now

	staleBefore := now.Add(-staleAfterWindows * rl.window)
	for key, client := range rl.clients {
		if client.lastSeen.Before(staleBefore) {
			delete(rl.clients, key)
		}
	}
}

// clientKey derives the limiter key from the request's client identity.
// RemoteAddr is ip:port and the port changes with every connection, so
// only the host part is used; a client cannot get a fresh bucket by
// reconnecting.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RealIP may have rewritten RemoteAddr to a bare IP already.
		return r.RemoteAddr
	}
	return host
}
