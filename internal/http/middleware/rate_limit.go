package middleware

import (
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/furniture-storefront/internal/http/ban"
	rl "github.com/rogerio-castellano/furniture-storefront/internal/http/rate_limiter"
)

// RateLimit rejects requests over the limiter's budget with 429 before the handler runs.
// Keys are "<scope>:<client ip>". A failing limiter lets the request through.
func RateLimit(limiter rl.Limiter, scope string, recorder ban.Recorder, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			allowed, err := limiter.Allow(r.Context(), scope+":"+ip)
			if err != nil {
				logger.Warn("rate limiter unavailable", zap.String("scope", scope), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				if recorder != nil {
					entry := ban.StrikeEntry{Target: ip, Route: r.URL.Path, Scope: scope, Time: time.Now().UTC()}
					if err := recorder.Record(r.Context(), entry); err != nil {
						logger.Warn("recording strike", zap.Error(err))
					}
				}
				writeError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the host part of RemoteAddr, which chi's RealIP has already resolved.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
