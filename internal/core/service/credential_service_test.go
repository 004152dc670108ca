package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/boardly/access-engine/internal/core/domain"
	"github.com/boardly/access-engine/internal/core/ports"
	"github.com/boardly/access-engine/internal/infrastructure/db/memory"
)

func newCredentialService() *CredentialService {
	return NewCredentialService(memory.NewPrincipalRepository(), bcrypt.MinCost)
}

func TestCredentialService_Create_Success(t *testing.T) {
	svc := newCredentialService()

	p, err := svc.Create(context.Background(), ports.NewPrincipal{
		Username: "alice",
		Email:    "alice@x.test",
		Secret:   "secret123",
		Role:     domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected generated id")
	}
	if p.PasswordHash == "secret123" || p.PasswordHash == "" {
		t.Fatalf("plaintext must not be stored")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte("secret123")); err != nil {
		t.Fatalf("stored hash does not match secret: %v", err)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set")
	}
}

func TestCredentialService_Create_DefaultRole(t *testing.T) {
	svc := newCredentialService()

	p, err := svc.Create(context.Background(), ports.NewPrincipal{
		Username: "bob",
		Email:    "bob@x.test",
		Secret:   "secret123",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if p.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %s", p.Role)
	}
}

func TestCredentialService_Create_Validation(t *testing.T) {
	svc := newCredentialService()

	cases := []struct {
		name string
		in   ports.NewPrincipal
	}{
		{"short username", ports.NewPrincipal{Username: "ab", Email: "a@x.test", Secret: "secret123"}},
		{"bad email", ports.NewPrincipal{Username: "carol", Email: "not-an-email", Secret: "secret123"}},
		{"short secret", ports.NewPrincipal{Username: "carol", Email: "c@x.test", Secret: "short"}},
		{"bad role", ports.NewPrincipal{Username: "carol", Email: "c@x.test", Secret: "secret123", Role: "root"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tc.in); domain.KindOf(err) != domain.KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCredentialService_Create_RejectsAdminRole(t *testing.T) {
	svc := newCredentialService()

	_, err := svc.Create(context.Background(), ports.NewPrincipal{
		Username: "mallory",
		Email:    "mallory@x.test",
		Secret:   "secret123",
		Role:     domain.RoleAdmin,
	})
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error for requested admin role, got %v", err)
	}
	if _, err := svc.FindByUsername(context.Background(), "mallory"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("rejected create must not persist a record")
	}
}

func TestCredentialService_Create_Duplicate(t *testing.T) {
	svc := newCredentialService()

	if _, err := svc.Create(context.Background(), ports.NewPrincipal{Username: "alice", Email: "alice@x.test", Secret: "secret123"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	if _, err := svc.Create(context.Background(), ports.NewPrincipal{Username: "alice", Email: "other@x.test", Secret: "secret123"}); !errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("expected duplicate for username collision, got %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.NewPrincipal{Username: "alice2", Email: "alice@x.test", Secret: "secret123"}); !errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("expected duplicate for email collision, got %v", err)
	}

	if _, err := svc.FindByUsername(context.Background(), "alice2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("failed create must not persist a record")
	}
}

func TestCredentialService_Update_RehashesSecret(t *testing.T) {
	svc := newCredentialService()

	p, err := svc.Create(context.Background(), ports.NewPrincipal{Username: "dave", Email: "dave@x.test", Secret: "oldsecret"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newSecret := "newsecret99"
	updated, err := svc.Update(context.Background(), p.ID, ports.PrincipalPatch{Secret: &newSecret})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.PasswordHash == p.PasswordHash {
		t.Fatalf("hash must change when the secret changes")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(newSecret)); err != nil {
		t.Fatalf("new hash does not match new secret: %v", err)
	}
	if !updated.UpdatedAt.After(p.UpdatedAt) && !updated.UpdatedAt.Equal(p.UpdatedAt) {
		t.Fatalf("updated-at not refreshed")
	}
}

func TestCredentialService_Update_NotFound(t *testing.T) {
	svc := newCredentialService()
	role := domain.RoleAdmin
	if _, err := svc.Update(context.Background(), "missing", ports.PrincipalPatch{Role: &role}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCredentialService_Delete_NotFound(t *testing.T) {
	svc := newCredentialService()
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCredentialService_Verify_EnumerationResistance(t *testing.T) {
	svc := newCredentialService()

	if _, err := svc.Create(context.Background(), ports.NewPrincipal{Username: "erin", Email: "erin@x.test", Secret: "secret123"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, missingErr := svc.Verify(context.Background(), "nobody", "whatever1")
	_, wrongErr := svc.Verify(context.Background(), "erin", "wrongpass")

	if missingErr == nil || wrongErr == nil {
		t.Fatalf("both verifications must fail")
	}
	if missingErr.Error() != wrongErr.Error() {
		t.Fatalf("missing user and wrong secret must be indistinguishable: %q vs %q", missingErr, wrongErr)
	}
	if domain.KindOf(missingErr) != domain.KindAuthentication {
		t.Fatalf("expected authentication kind, got %s", domain.KindOf(missingErr))
	}
}

func TestCredentialService_DummyHashMatchesConfiguredCost(t *testing.T) {
	for _, cost := range []int{bcrypt.MinCost, bcrypt.DefaultCost} {
		svc := NewCredentialService(memory.NewPrincipalRepository(), cost)
		got, err := bcrypt.Cost(svc.dummyHash)
		if err != nil {
			t.Fatalf("dummy hash is not a valid bcrypt hash: %v", err)
		}
		if got != cost {
			t.Fatalf("dummy hash cost %d, want %d: missing-user and wrong-secret comparisons must cost the same", got, cost)
		}
	}
}

func TestCredentialService_Verify_Success(t *testing.T) {
	svc := newCredentialService()

	created, err := svc.Create(context.Background(), ports.NewPrincipal{Username: "frank", Email: "frank@x.test", Secret: "secret123"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	p, err := svc.Verify(context.Background(), "frank", "secret123")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if p.ID != created.ID {
		t.Fatalf("verify returned wrong principal")
	}
}
