package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boardly/access-engine/internal/core/domain"
	"github.com/boardly/access-engine/internal/core/ports"
)

// PrincipalHandler exposes administrative principal management. Routes using
// it sit behind RequirePermission(user, admin).
type PrincipalHandler struct {
	store ports.CredentialStore
}

func NewPrincipalHandler(store ports.CredentialStore) *PrincipalHandler {
	return &PrincipalHandler{store: store}
}

type updatePrincipalRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Role     *string `json:"role"     validate:"omitempty,oneof=admin user agent"`
}

// Get returns a principal by id.
//
// @Summary      Fetch a principal
// @Tags         principals
// @Produce      json
// @Success      200  {object}  principalResponse
// @Failure      404  {object}  map[string]string
// @Router       /admin/principals/{id} [get]
func (h *PrincipalHandler) Get(c echo.Context) error {
	p, err := h.store.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, principalResponse{User: p})
}

// Update applies a partial update; a supplied password is re-hashed before
// storage.
//
// @Summary      Update a principal
// @Tags         principals
// @Accept       json
// @Produce      json
// @Param        body  body      updatePrincipalRequest  true  "Fields to change"
// @Success      200   {object}  principalResponse
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /admin/principals/{id} [patch]
func (h *PrincipalHandler) Update(c echo.Context) error {
	var req updatePrincipalRequest
	if err := c.Bind(&req); err != nil {
		return domain.E(domain.KindValidation, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	patch := ports.PrincipalPatch{
		Username: req.Username,
		Email:    req.Email,
		Secret:   req.Password,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		patch.Role = &role
	}

	p, err := h.store.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, principalResponse{User: p})
}

// Delete removes a principal.
//
// @Summary      Delete a principal
// @Tags         principals
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /admin/principals/{id} [delete]
func (h *PrincipalHandler) Delete(c echo.Context) error {
	if err := h.store.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
