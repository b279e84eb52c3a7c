// Package ratelimit guards the Login state with a per-source-IP token
// bucket, generalized from the teacher's single shared RateLimitMiddleware
// limiter into one limiter per key so one abusive client can't exhaust
// the login budget of every other address.
package ratelimit

import (
	"net"
	"sync"

	"golang.org/x/time/rate"
)

// LoginThrottle rejects excess LoginStart attempts before a connection's
// identity is even known, keyed on the remote IP. Token bucket, not
// leaky bucket: legitimate clients retrying after a dropped connection
// still get through as long as they're not bursting.
type LoginThrottle struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	burst    int
}

// NewLoginThrottle builds a throttle allowing r login attempts per
// second (sustained) with burst allowed in a single moment, per source IP.
func NewLoginThrottle(r float64, burst int) *LoginThrottle {
	return &LoginThrottle{
		limiters: make(map[string]*rate.Limiter),
		r:        rate.Limit(r),
		burst:    burst,
	}
}

// Allow reports whether a login attempt from addr may proceed, lazily
// creating that address's bucket on first sight.
func (t *LoginThrottle) Allow(addr net.Addr) bool {
	key := addrKey(addr)
	t.mu.Lock()
	limiter, ok := t.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(t.r, t.burst)
		t.limiters[key] = limiter
	}
	t.mu.Unlock()
	return limiter.Allow()
}

// Forget drops a since-disconnected address's bucket so long-lived
// servers don't accumulate one limiter per ever-seen IP forever.
func (t *LoginThrottle) Forget(addr net.Addr) {
	key := addrKey(addr)
	t.mu.Lock()
	delete(t.limiters, key)
	t.mu.Unlock()
}

func addrKey(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String()
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
