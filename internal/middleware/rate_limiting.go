package middleware

import (
	"context"
	"math"
	"net/http"
	"net/netip"
	"strconv"

	"github.com/foracure/backend/internal/ratelimit"
	"github.com/foracure/backend/internal/telemetry/metrics"
	"github.com/foracure/backend/pkg"

	log "github.com/sirupsen/logrus"
)

const TooManyLoginAttemptsMessage = "too many login attempts, please try again later"

//go:generate mockgen -source=$GOFILE -destination=rate_limiting_mocks_test.go -package=middleware_test

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string) (ratelimit.Result, error)
}

// RateLimit counts requests per client IP under the given route name. Rejected
// requests never reach the next handler. Forwarding headers are only honoured
// when the peer is one of the trusted proxies.
func RateLimit(
	rateLimiter RequestRateLimiter,
	routeName string,
	trustedProxies []netip.Prefix,
	metricsManager *metrics.Manager,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP, err := pkg.ReadUserIP(r, trustedProxies)
			if err != nil {
				log.Debugf("rate limit [%s]: %s", routeName, err)
				clientIP = "unknown"
			}

			res, err := rateLimiter.Allow(r.Context(), routeName+":"+clientIP)
			if err != nil {
				log.Errorf("rate limit [%s]: %s", routeName, err)
				pkg.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
				return
			}

			if res.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			if metricsManager != nil {
				metricsManager.CounterRateLimitedRequests.Inc()
			}
			log.Warnf("rate limit [%s]: client %s blocked for %s", routeName, clientIP, res.RetryAfter)

			retryAfter := int(math.Ceil(res.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			pkg.WriteJSONError(w, TooManyLoginAttemptsMessage, http.StatusTooManyRequests)
		})
	}
}
