package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure categories the engine produces.
// Callers branch on the kind, never on concrete error identity.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindDuplicateIdentity ErrorKind = "duplicate_identity"
	KindNotFound          ErrorKind = "not_found"
	KindAuthentication    ErrorKind = "authentication"
	KindAuthorization     ErrorKind = "authorization"
	KindRateLimited       ErrorKind = "rate_limited"
	KindStorage           ErrorKind = "storage"
)

// Error is the tagged-variant error carried across the engine's boundaries.
// Message is safe to disclose for Validation, DuplicateIdentity and
// RateLimited kinds; Authentication and Authorization messages stay
// deliberately generic so callers cannot enumerate identities.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is supports two matching modes: a bare-kind target (no cause) matches any
// error of the same kind, while a target carrying a cause matches only errors
// sharing that cause. The coarse canonical sentinels below use the first
// mode; the fine-grained token sentinels use the second.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.cause != nil {
		return e == t || (e.cause != nil && errors.Is(e.cause, t.cause))
	}
	return e.Kind == t.Kind
}

// E builds a tagged error.
func E(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds a tagged error that preserves the underlying cause for logs
// while exposing only kind and message to callers.
func Wrap(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf extracts the kind from any error in the chain; unknown errors map to
// KindStorage, the fatal bucket.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

// Canonical sentinels, one per kind where a stock message suffices. The
// authentication message is the single generic string shown for every
// credential failure.
var (
	ErrAuthentication    = E(KindAuthentication, "invalid credentials")
	ErrAuthorization     = E(KindAuthorization, "permission denied")
	ErrDuplicateIdentity = E(KindDuplicateIdentity, "username or email already taken")
	ErrNotFound          = E(KindNotFound, "principal not found")
	ErrRateLimited       = E(KindRateLimited, "too many attempts, retry later")
)

// Token validation failures. All share KindAuthentication so the gateway
// surfaces them identically, but logs and tests can still tell them apart
// through their causes.
var (
	errExpired   = errors.New("token expired")
	errSignature = errors.New("token signature invalid")
	errMalformed = errors.New("token malformed")

	ErrTokenExpired   = Wrap(KindAuthentication, "invalid credentials", errExpired)
	ErrTokenSignature = Wrap(KindAuthentication, "invalid credentials", errSignature)
	ErrTokenMalformed = Wrap(KindAuthentication, "invalid credentials", errMalformed)
)
