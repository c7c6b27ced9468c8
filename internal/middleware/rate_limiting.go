package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-redis/redis_rate/v9"
)

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit caps the request rate on a subrouter. The limit is shared by every
// instance of the service, the counters live in redis.
func RateLimit(
	rateLimiter RequestRateLimiter,
	limiterKey string,
	allowedPerMin int,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := rateLimiter.Allow(r.Context(), limiterKey, redis_rate.PerMinute(allowedPerMin))
			if err != nil {
				http.Error(w, "rate limit internal error", http.StatusInternalServerError)
				return
			}

			if res.Allowed == 0 {
				http.Error(
					w,
					fmt.Sprintf("retry after %f seconds", res.RetryAfter.Seconds()),
					http.StatusTooEarly,
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
