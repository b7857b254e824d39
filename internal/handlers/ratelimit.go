package handlers

import (
	"net"
	"net/http"
	"strings"
)

// RateLimiter guards the credential endpoints. A nil limiter means no limit.
type RateLimiter interface {
	Allow(key string) bool
}

// limiterAllows keys the limiter on scope plus caller address so register and
// login budgets do not bleed into each other.
func limiterAllows(limiter RateLimiter, r *http.Request, scope string) bool {
	if limiter == nil {
		return true
	}
	return limiter.Allow(scope + ":" + callerAddr(r))
}

// callerAddr trusts the first X-Forwarded-For hop when present; the service
// is expected to sit behind a proxy that sets it.
func callerAddr(r *http.Request) string {
	if forwarded, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ","); strings.TrimSpace(forwarded) != "" {
		return strings.TrimSpace(forwarded)
	}

	remote := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(remote); err == nil && host != "" {
		return host
	}
	return remote
}
