package service

import (
	"errors"
	"testing"
	"time"

	"github.com/boardly/access-engine/internal/core/domain"
)

func testPrincipal() *domain.Principal {
	return &domain.Principal{ID: "p-1", Username: "alice", Role: domain.RoleUser}
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	token, ttl, err := codec.Issue(testPrincipal())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if ttl != time.Hour {
		t.Fatalf("unexpected ttl: %v", ttl)
	}

	claims, err := codec.Validate(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.Subject != "p-1" {
		t.Fatalf("subject mismatch: %s", claims.Subject)
	}
	if claims.Role != domain.RoleUser {
		t.Fatalf("role snapshot mismatch: %s", claims.Role)
	}
	if claims.TokenID == "" {
		t.Fatalf("expected a token id")
	}
}

func TestTokenCodec_FreshTokenIDPerIssue(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)
	p := testPrincipal()

	t1, _, err := codec.Issue(p)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	t2, _, err := codec.Issue(p)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	c1, _ := codec.Validate(t1)
	c2, _ := codec.Validate(t2)
	if c1 == nil || c2 == nil || c1.TokenID == c2.TokenID {
		t.Fatalf("concurrent logins must yield distinguishable tokens")
	}
}

func TestTokenCodec_TamperDetection(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	token, _, err := codec.Issue(testPrincipal())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// Flip one bit in the signature segment.
	raw := []byte(token)
	raw[len(raw)-1] ^= 0x01
	if _, err := codec.Validate(string(raw)); !errors.Is(err, domain.ErrTokenSignature) {
		t.Fatalf("expected signature failure, got %v", err)
	}
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	issuer := NewTokenCodec("secret-a", time.Hour)
	verifier := NewTokenCodec("secret-b", time.Hour)

	token, _, err := issuer.Issue(testPrincipal())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := verifier.Validate(token); !errors.Is(err, domain.ErrTokenSignature) {
		t.Fatalf("expected signature failure, got %v", err)
	}
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)
	if _, err := codec.Validate("not.a.token"); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected malformed failure, got %v", err)
	}
}

func TestTokenCodec_Expiry(t *testing.T) {
	issued := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	codec := NewTokenCodec("test-secret", time.Hour).WithClock(func() time.Time { return now })

	token, _, err := codec.Issue(testPrincipal())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// One instant before expiry: still valid.
	now = issued.Add(time.Hour - time.Second)
	if _, err := codec.Validate(token); err != nil {
		t.Fatalf("token should be valid before expiry: %v", err)
	}

	// Past expiry: strict rejection, no leeway.
	now = issued.Add(time.Hour + time.Second)
	if _, err := codec.Validate(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected expiry failure, got %v", err)
	}
}

func TestTokenCodec_LeewayTolerance(t *testing.T) {
	issued := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	codec := NewTokenCodec("test-secret", time.Hour).
		WithClock(func() time.Time { return now }).
		WithLeeway(30 * time.Second)

	token, _, err := codec.Issue(testPrincipal())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	now = issued.Add(time.Hour + 10*time.Second)
	if _, err := codec.Validate(token); err != nil {
		t.Fatalf("token inside the leeway window should validate: %v", err)
	}
}
