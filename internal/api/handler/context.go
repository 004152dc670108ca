package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boardly/access-engine/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Authenticate
// middleware. Its presence proves the middleware ran; a missing principal on
// a protected route is a wiring bug surfaced as 401 rather than a panic.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	p, _ := c.Get("principal").(*domain.Principal)
	if p == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return p, nil
}
