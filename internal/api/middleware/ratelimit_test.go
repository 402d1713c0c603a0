package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasktrack/tasktrack-api/internal/config"
)

// newTestRateLimiter builds a limiter with an injected clock so window
// boundaries are deterministic.
func newTestRateLimiter(maxRequests, windowSeconds int, now *time.Time) *RateLimiter {
	rl := NewRateLimiter(config.RateLimitConfig{
		WindowSeconds: windowSeconds,
		MaxRequests:   maxRequests,
	})
	rl.timeFunc = func() time.Time { return *now }
	return rl
}

func TestRateLimiterAdmit(t *testing.T) {
	t.Parallel()

	t.Run("admits up to the limit then rejects", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		rl := newTestRateLimiter(5, 60, &now)

		for i := 0; i < 5; i++ {
			_, ok := rl.Admit("client-a")
			require.True(t, ok, "request %d should be admitted", i+1)
		}

		retryAfter, ok := rl.Admit("client-a")
		assert.False(t, ok, "request over the limit should be rejected")
		assert.Greater(t, retryAfter, time.Duration(0))
	})

	t.Run("rejected request does not consume allowance", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		rl := newTestRateLimiter(2, 60, &now)

		_, ok := rl.Admit("client-a")
		require.True(t, ok)
		_, ok = rl.Admit("client-a")
		require.True(t, ok)

		// Repeated rejections must not push the retry horizon further out
		first, ok := rl.Admit("client-a")
		require.False(t, ok)
		second, ok := rl.Admit("client-a")
		require.False(t, ok)
		assert.Equal(t, first, second)
	})

	t.Run("allowance recovers after the window", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		rl := newTestRateLimiter(3, 60, &now)

		for i := 0; i < 3; i++ {
			_, ok := rl.Admit("client-a")
			require.True(t, ok)
		}
		_, ok := rl.Admit("client-a")
		require.False(t, ok)

		// A full window later the bucket has refilled completely
		now = now.Add(61 * time.Second)
		for i := 0; i < 3; i++ {
			_, ok := rl.Admit("client-a")
			require.True(t, ok, "request %d after window should be admitted", i+1)
		}
	})

	t.Run("clients are limited independently", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		rl := newTestRateLimiter(1, 60, &now)

		_, ok := rl.Admit("client-a")
		require.True(t, ok)
		_, ok = rl.Admit("client-a")
		require.False(t, ok)

		// An exhausted bucket for one client never affects another
		_, ok = rl.Admit("client-b")
		assert.True(t, ok)
	})

	t.Run("idle clients are evicted", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		rl := newTestRateLimiter(5, 60, &now)

		_, ok := rl.Admit("client-a")
		require.True(t, ok)

		// Four idle windows later a different client's request triggers
		// the sweep
		now = now.Add(4 * 60 * time.Second)
		_, ok = rl.Admit("client-b")
		require.True(t, ok)

		rl.mu.Lock()
		_, exists := rl.clients["client-a"]
		rl.mu.Unlock()
		assert.False(t, exists, "stale client entry should have been evicted")
	})
}

func TestRateLimiterMiddleware(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := newTestRateLimiter(2, 60, &now)

	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	doRequest := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	// First two requests pass through
	assert.Equal(t, http.StatusOK, doRequest("10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, doRequest("10.0.0.1:1234").Code)

	// Third is rejected with a Retry-After hint
	rec := doRequest("10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	retryAfter, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.Greater(t, retryAfter, 0)
	assert.JSONEq(t, `{"error":"Too many requests"}`, rec.Body.String())

	// A different client address is unaffected
	assert.Equal(t, http.StatusOK, doRequest("10.0.0.2:1234").Code)
}

// Reconnecting from a new source port must not grant a fresh allowance:
// the limiter keys on the client IP, not the full ip:port address.
func TestRateLimiterMiddlewareKeysOnHost(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := newTestRateLimiter(1, 60, &now)

	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	doRequest := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, doRequest("10.0.0.1:50001").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest("10.0.0.1:50002").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest("10.0.0.1:50003").Code)

	// A genuinely different host still gets its own bucket
	assert.Equal(t, http.StatusOK, doRequest("10.0.0.2:50001").Code)

	// RealIP may leave a bare IP with no port; that parses as its own key
	assert.Equal(t, http.StatusOK, doRequest("10.0.0.3").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest("10.0.0.3").Code)
}
