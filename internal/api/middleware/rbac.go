package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/boardly/access-engine/internal/core/domain"
	"github.com/boardly/access-engine/internal/core/service"
)

// RequirePermission enforces a capability check against the permission
// matrix for the route it wraps. Must run after Authenticate; a missing
// principal denies.
func RequirePermission(guard *service.AuthorizationGuard, resource domain.Resource, op domain.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, _ := c.Get("principal").(*domain.Principal)
			if err := guard.Require(p, resource, op); err != nil {
				return err
			}
			return next(c)
		}
	}
}
