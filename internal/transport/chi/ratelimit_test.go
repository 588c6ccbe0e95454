package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	mw := RateLimitMiddleware(0, 0)
	handler := mw(okHandler())

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest("GET", "/documents", http.NoBody)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: got %d, want 200", i, rr.Code)
		}
	}
}

func TestRateLimitMiddleware_BurstExceeded(t *testing.T) {
	mw := RateLimitMiddleware(1, 3)
	handler := mw(okHandler())

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("GET", "/documents", http.NoBody)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	for i := 0; i < 3; i++ {
		if codes[i] != http.StatusOK {
			t.Errorf("request %d: got %d, want 200", i, codes[i])
		}
	}
	if codes[3] != http.StatusTooManyRequests || codes[4] != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst, got %v", codes[3:])
	}
}

func TestRateLimitMiddleware_PerClientBuckets(t *testing.T) {
	mw := RateLimitMiddleware(1, 1)
	handler := mw(okHandler())

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:2", "10.0.0.3:3"} {
		req := httptest.NewRequest("GET", "/documents", http.NoBody)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("client %s: got %d, want 200", addr, rr.Code)
		}
	}
}

func TestRateLimitMiddleware_ExemptPaths(t *testing.T) {
	mw := RateLimitMiddleware(1, 1)
	handler := mw(okHandler())

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("GET", "/health", http.NoBody)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("health request %d: got %d, want 200", i, rr.Code)
		}
	}
}

func TestClientLimiters_EvictsIdleClients(t *testing.T) {
	cl := newClientLimiters(1, 1)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	cl.now = func() time.Time { return now }

	cl.get("10.0.0.1")
	cl.get("10.0.0.2")

	// Keep 10.0.0.1 active halfway through the idle window.
	now = now.Add(cl.idleTTL / 2)
	cl.get("10.0.0.1")

	// At the window boundary a new client triggers the sweep: the idle
	// bucket is dropped, the active one survives.
	now = now.Add(cl.idleTTL / 2)
	cl.get("10.0.0.3")

	if _, ok := cl.limiters["10.0.0.2"]; ok {
		t.Error("idle client bucket not evicted")
	}
	if _, ok := cl.limiters["10.0.0.1"]; !ok {
		t.Error("active client bucket evicted")
	}
	if len(cl.limiters) != 2 {
		t.Errorf("limiter count = %d, want 2", len(cl.limiters))
	}
}

func TestClientLimiters_ActiveClientKeepsBucket(t *testing.T) {
	cl := newClientLimiters(1, 1)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	cl.now = func() time.Time { return now }

	lim := cl.get("10.0.0.1")
	lim.Allow()

	// The sweep must not hand a still-active client a fresh burst.
	now = now.Add(cl.idleTTL / 2)
	cl.get("10.0.0.1")
	now = now.Add(cl.idleTTL / 2)
	if got := cl.get("10.0.0.1"); got != lim {
		t.Error("active client bucket replaced across sweep")
	}
}
