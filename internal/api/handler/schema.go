package handler

import "github.com/boardly/access-engine/internal/core/domain"

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	// Admin is deliberately absent: registration is unauthenticated and the
	// admin role is only granted through the principal-management API.
	Role string `json:"role" validate:"omitempty,oneof=user agent"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string            `json:"token"`
	ExpiresIn int64             `json:"expires_in"`
	User      *domain.Principal `json:"user"`
}

// principalResponse is the envelope for any route that returns a single
// principal: registration, Me, and the admin reads and updates.
type principalResponse struct {
	User *domain.Principal `json:"user"`
}

type apiKeyResponse struct {
	// APIKey is the plaintext key, shown exactly once at issuance.
	APIKey string `json:"api_key"`
}
