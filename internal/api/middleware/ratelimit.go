package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/phrazzld/todo-api/internal/api/shared"
)

// RateLimitMessage is the body message of a 429 response.
const RateLimitMessage = "Too many requests. Try again later."

// RateLimit allows at most requests per window from each client IP.
// Each call returns a limiter with its own counters.
//
// The client IP is the socket address unless trustProxy is set, in which
// case forwarding headers win.
func RateLimit(requests int, window time.Duration, trustProxy bool) func(http.Handler) http.Handler {
	keyFunc := httprate.KeyByIP
	if trustProxy {
		keyFunc = httprate.KeyByRealIP
	}
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(keyFunc),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests, RateLimitMessage, nil)
		}),
	)
}
