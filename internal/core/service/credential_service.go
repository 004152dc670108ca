package service

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/boardly/access-engine/internal/core/domain"
	"github.com/boardly/access-engine/internal/core/ports"
)

// CredentialService implements ports.CredentialStore on top of a
// PrincipalRepository. Hashing uses bcrypt at a configurable cost: adaptive
// and deliberately slow, but bounded so a verify stays within request
// latency.
type CredentialService struct {
	repo ports.PrincipalRepository
	cost int
	now  func() time.Time

	// dummyHash is compared against when Verify cannot find the username, so
	// the missing-user path costs one bcrypt comparison at the same cost as
	// the wrong-secret path. Hashed from a throwaway value at construction;
	// a fixed-cost constant here would let response timing betray which
	// usernames exist whenever cost differs from the constant's.
	dummyHash []byte
}

func NewCredentialService(repo ports.PrincipalRepository, cost int) *CredentialService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// Cost is bounded above, so GenerateFromPassword cannot fail here.
	dummy, _ := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cost)
	return &CredentialService{
		repo:      repo,
		cost:      cost,
		now:       func() time.Time { return time.Now().UTC() },
		dummyHash: dummy,
	}
}

func (s *CredentialService) Create(ctx context.Context, in ports.NewPrincipal) (*domain.Principal, error) {
	if err := validateUsername(in.Username); err != nil {
		return nil, err
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validateSecret(in.Secret); err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.E(domain.KindValidation, fmt.Sprintf("unknown role %q", role))
	}
	// Admin is never self-assigned: the first admin is seeded out of band,
	// later ones are promoted through the admin principal update.
	if role == domain.RoleAdmin {
		return nil, domain.E(domain.KindValidation, "admin role cannot be requested at registration")
	}

	// Duplicate check before any write. The repository re-checks inside its
	// writer section, which is what makes the concurrent case safe.
	if _, err := s.repo.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrDuplicateIdentity
	} else if domain.KindOf(err) != domain.KindNotFound {
		return nil, err
	}
	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrDuplicateIdentity
	} else if domain.KindOf(err) != domain.KindNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Secret), s.cost)
	if err != nil {
		return nil, domain.Wrap(domain.KindStorage, "hash secret", err)
	}

	now := s.now()
	return s.repo.Create(ctx, &domain.Principal{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *CredentialService) FindByID(ctx context.Context, id string) (*domain.Principal, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CredentialService) FindByUsername(ctx context.Context, username string) (*domain.Principal, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *CredentialService) FindByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *CredentialService) Update(ctx context.Context, id string, patch ports.PrincipalPatch) (*domain.Principal, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *current
	if patch.Username != nil {
		if err := validateUsername(*patch.Username); err != nil {
			return nil, err
		}
		next.Username = *patch.Username
	}
	if patch.Email != nil {
		if err := validateEmail(*patch.Email); err != nil {
			return nil, err
		}
		next.Email = *patch.Email
	}
	if patch.Role != nil {
		if !domain.ValidRole(*patch.Role) {
			return nil, domain.E(domain.KindValidation, fmt.Sprintf("unknown role %q", *patch.Role))
		}
		next.Role = *patch.Role
	}
	if patch.Secret != nil {
		if err := validateSecret(*patch.Secret); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Secret), s.cost)
		if err != nil {
			return nil, domain.Wrap(domain.KindStorage, "hash secret", err)
		}
		next.PasswordHash = string(hash)
	}
	next.UpdatedAt = s.now()

	return s.repo.Update(ctx, &next)
}

func (s *CredentialService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Verify looks the username up and compares the secret against the stored
// hash. An unknown username and a failed comparison are indistinguishable:
// both cost one bcrypt comparison and both return ErrAuthentication.
func (s *CredentialService) Verify(ctx context.Context, username, secret string) (*domain.Principal, error) {
	p, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(secret))
			return nil, domain.ErrAuthentication
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(secret)) != nil {
		return nil, domain.ErrAuthentication
	}
	return p, nil
}

func validateUsername(username string) error {
	if n := len(username); n < domain.UsernameMinLen || n > domain.UsernameMaxLen {
		return domain.E(domain.KindValidation,
			fmt.Sprintf("username must be %d-%d characters", domain.UsernameMinLen, domain.UsernameMaxLen))
	}
	return nil
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.E(domain.KindValidation, "email is not a valid address")
	}
	return nil
}

func validateSecret(secret string) error {
	if len(secret) < domain.SecretMinLen {
		return domain.E(domain.KindValidation,
			fmt.Sprintf("password must be at least %d characters", domain.SecretMinLen))
	}
	return nil
}
