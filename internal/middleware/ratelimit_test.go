package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(cfg RateLimitConfig) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(cfg)
	rl.now = clock.Now
	return rl, clock
}

// ============================================================================
// NewRateLimiter Tests
// ============================================================================

func TestNewRateLimiter_DefaultConfig(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{})

	if rl.rate != 60 {
		t.Errorf("expected default rate 60, got %d", rl.rate)
	}
	if rl.window != time.Minute {
		t.Errorf("expected default window 1m, got %v", rl.window)
	}
	if rl.burst != 10 {
		t.Errorf("expected default burst 10, got %d", rl.burst)
	}
}

// ============================================================================
// Allow Tests
// ============================================================================

func TestAllow_ExhaustsThenBlocks(t *testing.T) {
	t.Parallel()
	rl, _ := newTestLimiter(RateLimitConfig{Rate: 2, Burst: 1, Window: time.Minute})

	for i := 0; i < 3; i++ {
		if ok, _, _ := rl.Allow("a"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if ok, remaining, _ := rl.Allow("a"); ok || remaining != 0 {
		t.Errorf("expected block with 0 remaining, got ok=%v remaining=%d", ok, remaining)
	}
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	t.Parallel()
	rl, _ := newTestLimiter(RateLimitConfig{Rate: 1, Burst: 1})

	rl.Allow("a")
	rl.Allow("a")
	if ok, _, _ := rl.Allow("b"); !ok {
		t.Error("a different key must have its own bucket")
	}
}

func TestAllow_RefillsAfterWindow(t *testing.T) {
	t.Parallel()
	rl, clock := newTestLimiter(RateLimitConfig{Rate: 1, Burst: 1, Window: time.Minute})

	rl.Allow("a")
	rl.Allow("a")
	if ok, _, _ := rl.Allow("a"); ok {
		t.Fatal("expected bucket to be empty")
	}

	clock.Advance(time.Minute)
	if ok, _, _ := rl.Allow("a"); !ok {
		t.Error("expected refill after a full window")
	}
}

func TestAllow_SweepsIdleBuckets(t *testing.T) {
	t.Parallel()
	rl, clock := newTestLimiter(RateLimitConfig{Rate: 5, Window: time.Minute, Cleanup: time.Minute})

	rl.Allow("idle")
	clock.Advance(3 * time.Minute)
	rl.Allow("fresh")

	if n := rl.Len(); n != 1 {
		t.Errorf("expected idle bucket to be swept, have %d buckets", n)
	}
}

// ============================================================================
// RateLimit Middleware Tests
// ============================================================================

func TestRateLimit_ReturnsJSON429(t *testing.T) {
	t.Parallel()
	rl, _ := newTestLimiter(RateLimitConfig{Rate: 1, Burst: 1})
	h := RateLimit(rl)(okHandler("ok"))

	var rr *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/events", nil)
		req.RemoteAddr = "10.0.0.1:5000" + strconv.Itoa(i)
		rr = httptest.NewRecorder()
		h.ServeHTTP(rr, req)
	}

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil || body["error"] == "" {
		t.Errorf("expected {\"error\": ...} body, got %v (%v)", body, err)
	}
}

func TestRateLimit_ReadsAreNotLimited(t *testing.T) {
	t.Parallel()
	rl, _ := newTestLimiter(RateLimitConfig{Rate: 1, Burst: 1})
	h := RateLimit(rl)(okHandler("ok"))

	for i := 0; i < 5; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/events/x", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("GET %d: expected 200, got %d", i, rr.Code)
		}
	}
	if rl.Len() != 0 {
		t.Error("reads must not create buckets")
	}
}

func TestClientIP_StripsPort(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:4242"
	if ip := clientIP(req); ip != "192.0.2.7" {
		t.Errorf("expected 192.0.2.7, got %q", ip)
	}

	req.RemoteAddr = "not-an-addr"
	if ip := clientIP(req); ip != "not-an-addr" {
		t.Errorf("expected raw address fallback, got %q", ip)
	}
}
