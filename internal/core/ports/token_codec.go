package ports

import (
	"time"

	"github.com/boardly/access-engine/internal/core/domain"
)

// TokenClaims is the payload embedded in every issued token. Role is a
// snapshot taken at issuance time; the gateway re-resolves the current
// principal on each authenticated call rather than trusting it.
type TokenClaims struct {
	Subject  string
	Role     domain.Role
	TokenID  string
	IssuedAt time.Time
	Expiry   time.Time
}

// TokenCodec issues and validates stateless signed tokens. Validity is
// computed, never stored: a token becomes unusable at expiry or on signature
// mismatch with no revocation step.
type TokenCodec interface {
	// Issue signs a token for p and returns the encoded string with its
	// declared time-to-live. The embedded token id is fresh per call, so
	// concurrent logins for one principal yield distinguishable tokens.
	Issue(p *domain.Principal) (token string, ttl time.Duration, err error)

	// Validate decodes and verifies token. Failures are ErrTokenExpired,
	// ErrTokenSignature or ErrTokenMalformed.
	Validate(token string) (*TokenClaims, error)
}
