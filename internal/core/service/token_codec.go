package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/boardly/access-engine/internal/core/domain"
	"github.com/boardly/access-engine/internal/core/ports"
)

// tokenClaims is the wire shape of the signed payload. Subject carries the
// principal id via RegisteredClaims.
type tokenClaims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec issues and validates HS256-signed tokens. Expiry is strict: no
// leeway unless a skew tolerance is configured.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	leeway time.Duration
	now    func() time.Time
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the codec's time source. Used by tests and by callers
// that need deterministic expiry.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	c.now = now
	return c
}

// WithLeeway grants a clock-skew tolerance applied during validation.
// Defaults to zero (strict expiry).
func (c *TokenCodec) WithLeeway(d time.Duration) *TokenCodec {
	c.leeway = d
	return c
}

// Issue signs a token for p. The jti is fresh per call, so two concurrent
// logins for the same principal produce distinguishable tokens.
func (c *TokenCodec) Issue(p *domain.Principal) (string, time.Duration, error) {
	now := c.now()
	claims := tokenClaims{
		Role: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", 0, domain.Wrap(domain.KindStorage, "sign token", err)
	}
	return signed, c.ttl, nil
}

// Validate decodes token, verifies the signature and checks expiry against
// the codec's clock. Failures map onto the three token sentinels; the
// signing algorithm is pinned to HS256 so an alg-substitution token fails as
// a signature mismatch.
func (c *TokenCodec) Validate(token string) (*ports.TokenClaims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return c.secret, nil
		},
		jwt.WithTimeFunc(c.now),
		jwt.WithLeeway(c.leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrTokenSignature
		default:
			return nil, domain.ErrTokenMalformed
		}
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenSignature
	}

	out := &ports.TokenClaims{
		Subject: claims.Subject,
		Role:    claims.Role,
		TokenID: claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.Expiry = claims.ExpiresAt.Time
	}
	return out, nil
}
