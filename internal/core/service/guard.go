package service

import (
	"context"

	"github.com/boardly/access-engine/internal/core/domain"
	"github.com/boardly/access-engine/internal/core/ports"
)

// AuthorizationGuard evaluates capability checks against the static
// permission matrix and, optionally, ownership of specific resource
// instances.
type AuthorizationGuard struct {
	matrix *domain.PermissionMatrix
	owners ports.ResourceOwnerResolver
}

// NewAuthorizationGuard wraps matrix. owners may be nil when no ownership
// policy is configured; RequireOwner then only enforces the capability check.
func NewAuthorizationGuard(matrix *domain.PermissionMatrix, owners ports.ResourceOwnerResolver) *AuthorizationGuard {
	return &AuthorizationGuard{matrix: matrix, owners: owners}
}

// Require denies with an authorization error when p's role lacks op on
// resource. Unknown roles and resources deny.
func (g *AuthorizationGuard) Require(p *domain.Principal, resource domain.Resource, op domain.Operation) error {
	if p == nil || !g.matrix.Allows(p.Role, resource, op) {
		return domain.ErrAuthorization
	}
	return nil
}

// RequireOwner layers the ownership policy above the capability check: the
// caller must hold the capability and own the resource instance. Admins skip
// the ownership comparison entirely.
func (g *AuthorizationGuard) RequireOwner(ctx context.Context, p *domain.Principal, resource domain.Resource, op domain.Operation, resourceID string) error {
	if err := g.Require(p, resource, op); err != nil {
		return err
	}
	if p.Role == domain.RoleAdmin || g.owners == nil {
		return nil
	}

	ownerID, err := g.owners.OwnerOf(ctx, resource, resourceID)
	if err != nil {
		if domain.KindOf(err) == domain.KindStorage {
			return err
		}
		return domain.ErrAuthorization
	}
	if ownerID != p.ID {
		return domain.ErrAuthorization
	}
	return nil
}
