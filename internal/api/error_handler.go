package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/boardly/access-engine/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the engine's error kinds to deterministic HTTP status codes.
//   - Logs storage and unexpected errors internally without leaking details.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Engine errors carry a kind and a caller-safe message. Authentication
	// and authorization messages are already generic; validation, duplicate
	// and rate-limit messages are safe to disclose verbatim.
	var de *domain.Error
	if errors.As(err, &de) {
		switch de.Kind {
		case domain.KindValidation:
			return http.StatusBadRequest, de.Message
		case domain.KindDuplicateIdentity:
			return http.StatusConflict, de.Message
		case domain.KindNotFound:
			return http.StatusNotFound, de.Message
		case domain.KindAuthentication:
			return http.StatusUnauthorized, de.Message
		case domain.KindAuthorization:
			return http.StatusForbidden, de.Message
		case domain.KindRateLimited:
			return http.StatusTooManyRequests, de.Message
		case domain.KindStorage:
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("storage failure")
			return http.StatusInternalServerError, "internal server error"
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
