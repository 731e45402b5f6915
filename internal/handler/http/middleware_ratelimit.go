package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/SACHINKATHAR2005/viralprompts/internal/config"
	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
	"github.com/SACHINKATHAR2005/viralprompts/internal/utils"
	"github.com/SACHINKATHAR2005/viralprompts/models"
)

// rateLimit returns a middleware enforcing the named action's fixed-window
// budget against the requesting principal.
//
// The principal is the authenticated user when the request carries one,
// otherwise the client IP, so unauthenticated abuse and per-account abuse
// are throttled independently. Every response carries the X-RateLimit-*
// headers; a rejected request answers 429 with a Retry-After header and
// the envelope body clients use to display the wait.
//
// The limiter fails open: when its counter store is unreachable the
// request proceeds as if allowed.
func (h *Handler) rateLimit(action string, limit config.LimitConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := h.limiter.Allow(r.Context(), action, principalFor(r), limit.Max, limit.Window)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				retryAfter := int64(time.Until(result.ResetAt).Seconds()) + 1
				logger.FromRequest(r).Warn().
					Str("action", action).
					Str("principal", principalFor(r)).
					Msg("rate limit exceeded")

				w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
				utils.WriteJSON(w, models.RateLimitedResponse{
					Success:    false,
					Message:    fmt.Sprintf("too many %s requests, try again later", action),
					RetryAfter: retryAfter,
				}, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// principalFor identifies the requester for rate limiting and cache
// namespacing: the authenticated user ID when present, the client IP
// otherwise.
func principalFor(r *http.Request) string {
	if userID, found := utils.GetUserIDFromContext(r.Context()); found {
		return fmt.Sprintf("user:%d", userID)
	}
	return "ip:" + utils.ClientIP(r)
}
