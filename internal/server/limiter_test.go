package server

import (
	"testing"
	"time"
)

func TestRateLimiterSlidingWindow(t *testing.T) {
	limiter := newRateLimiter()
	now := time.Now()

	for i := 0; i < limiterMaxRequests; i++ {
		if !limiter.allow("host|create", now) {
			t.Fatalf("request %d unexpectedly limited", i+1)
		}
	}
	if limiter.allow("host|create", now) {
		t.Fatalf("expected limit at %d requests", limiterMaxRequests)
	}
	if !limiter.allow("host|join", now) {
		t.Fatalf("actions must not share buckets")
	}
	if !limiter.allow("host|create", now.Add(limiterWindow+time.Second)) {
		t.Fatalf("expected window to expire")
	}
}
