package kit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL    = 10 * time.Minute
	limiterSweepEvery = 1024
)

type ipLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands each client IP its own token bucket refilled at
// perMinute tokens per minute.
type IPRateLimiter struct {
	mu      sync.Mutex
	every   rate.Limit
	burst   int
	clients map[string]*ipLimiter
	calls   int
	now     func() time.Time
}

func NewIPRateLimiter(perMinute, burst int) *IPRateLimiter {
	if burst <= 0 {
		burst = perMinute
	}
	return &IPRateLimiter{
		every:   rate.Limit(float64(perMinute) / 60),
		burst:   burst,
		clients: make(map[string]*ipLimiter),
		now:     time.Now,
	}
}

func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			w.Header().Set("Retry-After", "60")
			WriteError(w, r, http.StatusTooManyRequests, "too many requests", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	l.calls++
	if l.calls%limiterSweepEvery == 0 {
		l.sweep(now)
	}

	c, ok := l.clients[ip]
	if !ok {
		c = &ipLimiter{lim: rate.NewLimiter(l.every, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now

	return c.lim.AllowN(now, 1)
}

func (l *IPRateLimiter) sweep(now time.Time) {
	for ip, c := range l.clients {
		if now.Sub(c.lastSeen) > limiterIdleTTL {
			delete(l.clients, ip)
		}
	}
}

func clientIP(r *http.Request) string {
	if ip := firstForwardedFor(r.Header.Get("X-Forwarded-For")); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}

	return r.RemoteAddr
}

func firstForwardedFor(xff string) string {
	first, _, _ := strings.Cut(xff, ",")
	return strings.TrimSpace(first)
}
