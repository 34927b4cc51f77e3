package server

import (
	"net"
	"net/http"
	"sync"
	"time"
)

const (
	limiterWindow      = 10 * time.Second
	limiterMaxRequests = 30
)

// rateLimiter tracks request counts per client address and action over a
// sliding window. It only guards mutation endpoints; polling reads are
// unlimited.
type rateLimiter struct {
	mu      sync.Mutex
	buckets map[string][]time.Time
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{buckets: make(map[string][]time.Time)}
}

func (l *rateLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := now.Add(-limiterWindow)
	kept := l.buckets[key][:0]
	for _, stamp := range l.buckets[key] {
		if stamp.After(cutoff) {
			kept = append(kept, stamp)
		}
	}
	if len(kept) >= limiterMaxRequests {
		l.buckets[key] = kept
		return false
	}
	l.buckets[key] = append(kept, now)
	return true
}

func (s *Server) enforceRateLimit(w http.ResponseWriter, r *http.Request, action string) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if s.limiter.allow(host+"|"+action, time.Now()) {
		return true
	}
	writeError(w, http.StatusTooManyRequests, "too many requests")
	return false
}
