package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/rs/zerolog"

	"github.com/boardly/access-engine/internal/core/domain"
	"github.com/boardly/access-engine/internal/core/ports"
)

// apiKeyPrefix marks engine-issued keys so they are recognizable in request
// logs and support tooling without revealing the random suffix.
const apiKeyPrefix = "bk_"

// AuthenticationGateway composes the credential store, token codec, rate
// limiter and API-key resolution into the engine's two entry points. Every
// failure on the authenticated-call path collapses to the one generic
// authentication error; the real cause is only ever logged.
type AuthenticationGateway struct {
	store   ports.CredentialStore
	codec   ports.TokenCodec
	limiter ports.RateLimiter
	keys    ports.APIKeyResolver
	binder  ports.APIKeyBinder
	log     zerolog.Logger
}

func NewAuthenticationGateway(
	store ports.CredentialStore,
	codec ports.TokenCodec,
	limiter ports.RateLimiter,
	keys ports.APIKeyResolver,
	binder ports.APIKeyBinder,
	log zerolog.Logger,
) *AuthenticationGateway {
	return &AuthenticationGateway{store: store, codec: codec, limiter: limiter, keys: keys, binder: binder, log: log}
}

// Login rate-limits by username, verifies the secret and issues a token.
// Wrong username and wrong secret are already indistinguishable at the
// store; rate-limit and storage failures pass through unmasked.
func (g *AuthenticationGateway) Login(ctx context.Context, username, secret string) (*ports.LoginResult, error) {
	if err := g.limiter.Allow(ctx, "login:"+username); err != nil {
		return nil, err
	}

	p, err := g.store.Verify(ctx, username, secret)
	if err != nil {
		if domain.KindOf(err) == domain.KindStorage {
			return nil, err
		}
		g.log.Warn().Str("username", username).Msg("login rejected")
		return nil, domain.ErrAuthentication
	}

	token, ttl, err := g.codec.Issue(p)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{
		Token:     token,
		ExpiresIn: int64(ttl.Seconds()),
		Principal: p,
	}, nil
}

// Authenticate resolves bearer-token or API-key material to the current
// principal. Bearer wins when both are present. The token's role snapshot is
// not trusted: the principal is re-resolved by subject id, so a role change
// after issuance takes effect immediately and a deleted principal fails.
func (g *AuthenticationGateway) Authenticate(ctx context.Context, bearerToken, apiKey string) (*domain.Principal, error) {
	switch {
	case bearerToken != "":
		return g.authenticateToken(ctx, bearerToken)
	case apiKey != "":
		return g.authenticateKey(ctx, apiKey)
	default:
		return nil, domain.ErrAuthentication
	}
}

func (g *AuthenticationGateway) authenticateToken(ctx context.Context, token string) (*domain.Principal, error) {
	claims, err := g.codec.Validate(token)
	if err != nil {
		g.log.Debug().Err(err).Msg("token rejected")
		return nil, domain.ErrAuthentication
	}

	p, err := g.store.FindByID(ctx, claims.Subject)
	if err != nil {
		if domain.KindOf(err) == domain.KindStorage {
			return nil, err
		}
		g.log.Debug().Str("subject", claims.Subject).Msg("token subject no longer exists")
		return nil, domain.ErrAuthentication
	}
	return p, nil
}

func (g *AuthenticationGateway) authenticateKey(ctx context.Context, key string) (*domain.Principal, error) {
	id, err := g.keys.Resolve(ctx, key)
	if err != nil {
		if domain.KindOf(err) == domain.KindStorage {
			return nil, err
		}
		g.log.Debug().Msg("api key rejected")
		return nil, domain.ErrAuthentication
	}

	p, err := g.store.FindByID(ctx, id)
	if err != nil {
		if domain.KindOf(err) == domain.KindStorage {
			return nil, err
		}
		return nil, domain.ErrAuthentication
	}
	return p, nil
}

// IssueAPIKey generates a fresh opaque key for p and persists the binding.
// The plaintext key is returned exactly once; the binder is free to store
// only a digest.
func (g *AuthenticationGateway) IssueAPIKey(ctx context.Context, p *domain.Principal) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", domain.Wrap(domain.KindStorage, "generate api key", err)
	}
	key := apiKeyPrefix + hex.EncodeToString(buf)

	if err := g.binder.Bind(ctx, key, p.ID); err != nil {
		return "", err
	}
	return key, nil
}
