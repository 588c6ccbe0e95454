package chi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a client bucket survives without traffic
// before the sweep drops it, keeping the map bounded in long-lived
// processes.
const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// clientLimiters tracks one token bucket per client IP.
type clientLimiters struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	rps       rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newClientLimiters(rps rate.Limit, burst int) *clientLimiters {
	return &clientLimiters{
		limiters: make(map[string]*limiterEntry),
		rps:      rps,
		burst:    burst,
		idleTTL:  limiterIdleTTL,
		now:      time.Now,
	}
}

func (c *clientLimiters) get(ip string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweepLocked(now)

	entry, ok := c.limiters[ip]
	if !ok {
		entry = &limiterEntry{lim: rate.NewLimiter(c.rps, c.burst)}
		c.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.lim
}

// sweepLocked drops buckets idle longer than idleTTL, at most once per
// TTL interval. Caller holds the mutex.
func (c *clientLimiters) sweepLocked(now time.Time) {
	if now.Sub(c.lastSweep) < c.idleTTL {
		return
	}
	c.lastSweep = now
	for ip, entry := range c.limiters {
		if now.Sub(entry.lastSeen) >= c.idleTTL {
			delete(c.limiters, ip)
		}
	}
}

// RateLimitMiddleware returns a per-client-IP rate limiting middleware.
// rps <= 0 disables limiting.
func RateLimitMiddleware(rps float64, burst int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rps <= 0 {
			return next
		}

		cl := newClientLimiters(rate.Limit(rps), burst)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			if !cl.get(clientIP(r)).Allow() {
				writeError(w, http.StatusTooManyRequests, ErrorCodeRateLimited, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
