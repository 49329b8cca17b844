package api

import (
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/faces-agency/talent-sync/internal/pkg/httputil"
	"github.com/faces-agency/talent-sync/internal/pkg/logger"
)

// RateLimit returns middleware limiting each client IP to perMin
// submissions per minute, counted in Redis so the limit holds across
// server instances. A Redis outage fails open: blocking submissions
// because the counter is down would be worse than letting a burst in.
func RateLimit(client *redis.Client, perMin int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ratelimit:submit:" + clientIP(r)

			count, err := client.Incr(r.Context(), key).Result()
			if err != nil {
				logger.Warn("rate limit counter unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				client.Expire(r.Context(), key, time.Minute)
			}
			if count > int64(perMin) {
				httputil.Error(w, http.StatusTooManyRequests,
					"too many submissions, try again in a minute")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP trusts RemoteAddr, which the RealIP middleware has already
// rewritten from forwarding headers when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
