package ports

import (
	"context"

	"github.com/boardly/access-engine/internal/core/domain"
)

// APIKeyResolver maps an opaque API key to the owning principal id. The
// engine defines the key format and issues keys; maintaining the binding is
// a collaborator concern behind this port.
type APIKeyResolver interface {
	// Resolve returns the principal id bound to key, or ErrAuthentication
	// when the key is unknown.
	Resolve(ctx context.Context, key string) (principalID string, err error)
}

// APIKeyBinder persists a freshly issued key→principal binding.
type APIKeyBinder interface {
	Bind(ctx context.Context, key, principalID string) error
}

// ResourceOwnerResolver answers which principal owns a specific resource
// instance, for the optional ownership policy layered above capability
// checks.
type ResourceOwnerResolver interface {
	OwnerOf(ctx context.Context, resource domain.Resource, resourceID string) (ownerID string, err error)
}
