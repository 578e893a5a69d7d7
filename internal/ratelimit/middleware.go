package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"surety/pkg/platform/httputil"
	"surety/pkg/requestcontext"
)

// PerCaller limits each authenticated caller to limit requests per window.
// It must run after the caller is resolved; anonymous requests pass through.
// A failing limiter lets the request through and logs.
func PerCaller(l Limiter, limit int, window time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			caller := requestcontext.Caller(ctx)
			if caller == "" || limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			res, err := l.Allow(ctx, caller, limit, window)
			if err != nil {
				logger.WarnContext(ctx, "rate limiter unavailable, allowing request", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
			if !res.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(res.RetryAfter))
				httputil.WriteJSON(w, http.StatusTooManyRequests, httputil.ErrorResponse{
					Error:            "rate_limit_exceeded",
					ErrorDescription: "too many requests for this caller, try again later",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
