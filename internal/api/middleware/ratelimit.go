package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/boardly/access-engine/internal/api/metrics"
	"github.com/boardly/access-engine/internal/core/domain"
	"github.com/boardly/access-engine/internal/core/ports"
)

// KeyFunc derives the rate-limit identifier from the request.
type KeyFunc func(c echo.Context) string

// KeyByIP keys the limiter on the caller's network origin.
func KeyByIP(c echo.Context) string {
	return c.RealIP()
}

// RateLimit rejects requests once the identifier's attempt budget for the
// current window is spent. scope labels the denial metric so the strict auth
// limiter and the loose general limiter stay distinguishable on dashboards.
func RateLimit(limiter ports.RateLimiter, scope string, key KeyFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := limiter.Allow(c.Request().Context(), key(c)); err != nil {
				if errors.Is(err, domain.ErrRateLimited) {
					metrics.RateLimitDeniedTotal.WithLabelValues(scope).Inc()
				}
				return err
			}
			return next(c)
		}
	}
}
