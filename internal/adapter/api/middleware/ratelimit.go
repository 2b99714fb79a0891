package middleware

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimit is a middleware factory that applies a global token-bucket limit
// to the API. Requests beyond the burst are rejected with 429 rather than
// queued.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
