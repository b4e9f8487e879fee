package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock управляемые часы для rate limiter
type fakeClock struct {
	now time.Time
	mu  sync.Mutex
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(t *testing.T, rate int, window time.Duration) (*RateLimiter, *fakeClock) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rl := NewRateLimiter(rate, window, logger)
	t.Cleanup(rl.Stop)

	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl.now = clock.Now

	return rl, clock
}

func TestNewRateLimiter(t *testing.T) {
	rl, _ := newTestLimiter(t, 20, 15*time.Minute)

	assert.Equal(t, 20, rl.rate)
	assert.Equal(t, 15*time.Minute, rl.window)
	assert.NotNil(t, rl.buckets)
}

func TestRateLimiter_Allow(t *testing.T) {
	rl, clock := newTestLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _ := rl.Allow("10.0.0.1")
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, retry := rl.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, time.Minute, retry)

	// Другой IP имеет свой bucket
	allowed, _ = rl.Allow("10.0.0.2")
	assert.True(t, allowed)

	clock.Advance(20 * time.Second)
	allowed, retry = rl.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, 40*time.Second, retry)

	// После окна токены восстанавливаются
	clock.Advance(40 * time.Second)
	allowed, _ = rl.Allow("10.0.0.1")
	assert.True(t, allowed)
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl, _ := newTestLimiter(t, 2, 15*time.Minute)

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("192.168.1.1:1000").Code)
	// Порт не влияет на ключ
	assert.Equal(t, http.StatusOK, send("192.168.1.1:2000").Code)

	w := send("192.168.1.1:3000")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "900", w.Header().Get("Retry-After"))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Too many requests")
	assert.Equal(t, "rate_limited", decodeError(t, w).Kind)

	assert.Equal(t, http.StatusOK, send("192.168.1.2:1000").Code)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{remote: "192.168.1.1:12345", want: "192.168.1.1"},
		{remote: "[2001:db8::1]:443", want: "2001:db8::1"},
		{remote: "10.0.0.1", want: "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			assert.Equal(t, tt.want, clientIP(req))
		})
	}
}

func TestRateLimiter_CleanupOldBuckets(t *testing.T) {
	rl, clock := newTestLimiter(t, 5, time.Minute)

	rl.Allow("old")
	clock.Advance(3 * time.Minute)
	rl.Allow("fresh")

	rl.cleanupOldBuckets()

	rl.mu.RLock()
	defer rl.mu.RUnlock()
	assert.NotContains(t, rl.buckets, "old")
	assert.Contains(t, rl.buckets, "fresh")
}

func TestRateLimiter_LogsExceededRequests(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))
	rl := NewRateLimiter(1, time.Minute, logger)
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/forgot-password", nil)
		req.RemoteAddr = "172.16.0.9:5555"
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Contains(t, logBuf.String(), "Rate limit exceeded")
	assert.Contains(t, logBuf.String(), "172.16.0.9")
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
