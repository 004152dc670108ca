package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/boardly/access-engine/internal/core/domain"
)

// APIKeyStore maps opaque API keys to principal ids. Only a SHA-256 digest
// of the key is stored, so a stolen Redis dump cannot be replayed as
// credentials. Key format: apikey:<hex digest> → principal id.
type APIKeyStore struct {
	client *redis.Client
}

func NewAPIKeyStore(client *redis.Client) *APIKeyStore {
	return &APIKeyStore{client: client}
}

// Bind persists the binding for a freshly issued key. Bindings do not
// expire; revocation is a DEL on the digest.
func (s *APIKeyStore) Bind(ctx context.Context, key, principalID string) error {
	if err := s.client.Set(ctx, s.storageKey(key), principalID, 0).Err(); err != nil {
		return domain.Wrap(domain.KindStorage, "bind api key", err)
	}
	return nil
}

// Resolve returns the principal id bound to key. Unknown keys resolve to the
// generic authentication error.
func (s *APIKeyStore) Resolve(ctx context.Context, key string) (string, error) {
	id, err := s.client.Get(ctx, s.storageKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrAuthentication
		}
		return "", domain.Wrap(domain.KindStorage, "resolve api key", err)
	}
	return id, nil
}

func (s *APIKeyStore) storageKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return "apikey:" + hex.EncodeToString(sum[:])
}
