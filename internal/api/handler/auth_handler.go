package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boardly/access-engine/internal/api/metrics"
	"github.com/boardly/access-engine/internal/core/domain"
	"github.com/boardly/access-engine/internal/core/ports"
)

type AuthHandler struct {
	store   ports.CredentialStore
	gateway ports.AuthenticationGateway
}

func NewAuthHandler(store ports.CredentialStore, gateway ports.AuthenticationGateway) *AuthHandler {
	return &AuthHandler{store: store, gateway: gateway}
}

// Register creates a new principal.
//
// @Summary      Register a new principal
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  principalResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domain.E(domain.KindValidation, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.store.Create(c.Request().Context(), ports.NewPrincipal{
		Username: req.Username,
		Email:    req.Email,
		Secret:   req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, principalResponse{User: p})
}

// Login authenticates a principal and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.E(domain.KindValidation, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.gateway.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(string(domain.KindOf(err))).Inc()
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
		User:      result.Principal,
	})
}

// Me returns the principal behind the presented credentials.
//
// @Summary      Current principal
// @Tags         auth
// @Produce      json
// @Success      200  {object}  principalResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, principalResponse{User: p})
}

// IssueAPIKey generates an opaque API key for the authenticated principal.
// The plaintext key appears only in this response.
//
// @Summary      Issue an API key
// @Tags         auth
// @Produce      json
// @Success      201  {object}  apiKeyResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/apikeys [post]
func (h *AuthHandler) IssueAPIKey(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	key, err := h.gateway.IssueAPIKey(c.Request().Context(), p)
	if err != nil {
		return err
	}
	metrics.APIKeysIssuedTotal.Inc()

	return c.JSON(http.StatusCreated, apiKeyResponse{APIKey: key})
}
