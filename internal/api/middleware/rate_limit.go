package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string) (bool, int, int, error)
}

// RateLimit throttles writes per authenticated user within scope. Requests
// pass through when the limiter itself fails.
func RateLimit(limiter RateLimiter, scope string) func(http.Handler) http.HandlerFunc {
	return func(next http.Handler) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			claims, ok := ClaimsFromContext(r.Context())
			if !ok || limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			logger := LoggerFromContext(r.Context())

			allowed, remaining, retryAfter, err := limiter.CheckRateLimit(r.Context(), scope+":"+claims.UserID.String())
			if err != nil {
				logger.Error("Rate limit check failed", slog.String("scope", scope), slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				response.Error(w, errors.TooManyRequestsError("Too many requests, please try again later"))
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			next.ServeHTTP(w, r)
		}
	}
}
