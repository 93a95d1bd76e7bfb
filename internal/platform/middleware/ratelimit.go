package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTTL = 5 * time.Minute

// RateLimit returns middleware that allows each client address rps requests
// per second with the given burst. Requests over the limit get 429.
// A non-positive rps disables limiting.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	limiters := &limiterMap{
		rps:      rate.Limit(rps),
		burst:    max(burst, 1),
		limiters: make(map[string]*clientLimiter),
		now:      time.Now,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiters.get(clientIP(r)).Allow() {
				w.Header().Set("Retry-After", "1")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"success":false,"error":"Too many requests. Please slow down."}` + "\n"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterMap holds one limiter per client address. Idle entries are pruned
// lazily on access instead of by a background goroutine.
type limiterMap struct {
	mu       sync.Mutex
	rps      rate.Limit
	burst    int
	limiters map[string]*clientLimiter
	now      func() time.Time
}

func (m *limiterMap) get(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, cl := range m.limiters {
		if now.Sub(cl.lastSeen) > limiterIdleTTL {
			delete(m.limiters, key)
		}
	}

	cl, ok := m.limiters[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(m.rps, m.burst)}
		m.limiters[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
