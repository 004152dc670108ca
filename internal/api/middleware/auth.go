package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/boardly/access-engine/internal/api/metrics"
	"github.com/boardly/access-engine/internal/core/ports"
)

// APIKeyHeader carries the alternate opaque credential.
const APIKeyHeader = "X-API-Key"

// Authenticate resolves the request's credential material through the
// gateway and injects the current principal into the context. A bearer token
// in the Authorization header takes precedence over an API key; a request
// with neither, or with credentials that fail resolution, is rejected with
// the gateway's single generic authentication error.
func Authenticate(gateway ports.AuthenticationGateway) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			bearer := bearerToken(c.Request().Header.Get("Authorization"))
			apiKey := c.Request().Header.Get(APIKeyHeader)

			p, err := gateway.Authenticate(c.Request().Context(), bearer, apiKey)
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues("failure").Inc()
				return err
			}
			metrics.TokenValidationsTotal.WithLabelValues("success").Inc()

			c.Set("principal", p)
			return next(c)
		}
	}
}

// bearerToken extracts the token from "Bearer <token>"; anything else yields
// an empty string and falls through to the API-key path.
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
