package ports

import (
	"context"

	"github.com/boardly/access-engine/internal/core/domain"
)

// LoginResult is what a successful login hands back to the transport layer.
type LoginResult struct {
	Token     string
	ExpiresIn int64 // seconds
	Principal *domain.Principal
}

// AuthenticationGateway composes credential verification, token handling and
// rate limiting into the two entry points the transport layer calls.
type AuthenticationGateway interface {
	// Login authenticates username+secret and issues a token. Every
	// credential failure returns the same generic ErrAuthentication;
	// only rate-limit and storage failures surface as themselves.
	Login(ctx context.Context, username, secret string) (*LoginResult, error)

	// Authenticate resolves an inbound call's credential material to the
	// current principal. A bearer token takes precedence over an API key
	// when both are present; with neither, and on every resolution
	// failure, it returns ErrAuthentication.
	Authenticate(ctx context.Context, bearerToken, apiKey string) (*domain.Principal, error)

	// IssueAPIKey generates an opaque key for p and persists the binding
	// through the configured APIKeyBinder.
	IssueAPIKey(ctx context.Context, p *domain.Principal) (string, error)
}
