package ports

import (
	"context"

	"github.com/boardly/access-engine/internal/core/domain"
)

// PrincipalRepository is the persistence port for principal records.
//
// Implementations must serialize mutations (single-writer discipline) so
// concurrent create/update/delete cannot interleave into duplicated or
// corrupted records, and must never expose a partially written record to
// readers. Uniqueness of username and email is enforced here, at the
// application layer; the backing medium is not assumed to enforce it.
type PrincipalRepository interface {
	Create(ctx context.Context, p *domain.Principal) (*domain.Principal, error)
	FindByID(ctx context.Context, id string) (*domain.Principal, error)
	FindByUsername(ctx context.Context, username string) (*domain.Principal, error)
	FindByEmail(ctx context.Context, email string) (*domain.Principal, error)
	Update(ctx context.Context, p *domain.Principal) (*domain.Principal, error)
	Delete(ctx context.Context, id string) error
}
