package ports

import (
	"context"

	"github.com/boardly/access-engine/internal/core/domain"
)

// NewPrincipal carries the input for principal creation. Secret is the
// plaintext credential; it is hashed before anything is persisted.
type NewPrincipal struct {
	Username string
	Email    string
	Secret   string
	Role     domain.Role
}

// PrincipalPatch is a partial update: nil fields are left untouched. A
// non-nil Secret is re-hashed before storage.
type PrincipalPatch struct {
	Username *string
	Email    *string
	Secret   *string
	Role     *domain.Role
}

// CredentialStore manages principal records and verifies presented
// credentials against stored hashes.
type CredentialStore interface {
	Create(ctx context.Context, in NewPrincipal) (*domain.Principal, error)
	FindByID(ctx context.Context, id string) (*domain.Principal, error)
	FindByUsername(ctx context.Context, username string) (*domain.Principal, error)
	FindByEmail(ctx context.Context, email string) (*domain.Principal, error)
	Update(ctx context.Context, id string, patch PrincipalPatch) (*domain.Principal, error)
	Delete(ctx context.Context, id string) error

	// Verify checks username+secret. A missing username and a wrong secret
	// are indistinguishable to the caller: both return ErrAuthentication.
	Verify(ctx context.Context, username, secret string) (*domain.Principal, error)
}
