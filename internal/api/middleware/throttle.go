package middleware

import (
	"net/http"

	"golang.org/x/time/rate"
)

// Throttle sheds requests above ratePerSec with 429. The probe endpoints
// are unauthenticated and every hit costs one upstream read, so excess
// requests are rejected immediately rather than queued — a health check
// that waits in line stops measuring anything.
// Burst is set equal to the rate so no extra burst capacity is allowed
// beyond the configured per-second maximum.
// A ratePerSec of zero or below disables the limiter.
func Throttle(ratePerSec int) func(http.Handler) http.Handler {
	if ratePerSec <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	limiter := rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
