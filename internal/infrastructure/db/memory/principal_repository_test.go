package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/boardly/access-engine/internal/core/domain"
)

func seed(id, username, email string) *domain.Principal {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Principal{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$04$hash",
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestRepository_CreateAndFind(t *testing.T) {
	repo := NewPrincipalRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, seed("p-1", "alice", "alice@x.test"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	byID, err := repo.FindByID(ctx, "p-1")
	if err != nil || byID.Username != "alice" {
		t.Fatalf("find by id: %v %+v", err, byID)
	}
	byName, err := repo.FindByUsername(ctx, "alice")
	if err != nil || byName.ID != "p-1" {
		t.Fatalf("find by username: %v %+v", err, byName)
	}
	byEmail, err := repo.FindByEmail(ctx, "alice@x.test")
	if err != nil || byEmail.ID != "p-1" {
		t.Fatalf("find by email: %v %+v", err, byEmail)
	}

	// Stored state must be isolated from caller mutation.
	created.Username = "mallory"
	again, _ := repo.FindByID(ctx, "p-1")
	if again.Username != "alice" {
		t.Fatalf("caller mutation leaked into the store")
	}
}

func TestRepository_ConcurrentCreate_OneWinner(t *testing.T) {
	repo := NewPrincipalRepository()
	ctx := context.Background()

	const racers = 20
	var wg sync.WaitGroup
	errs := make(chan error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, seed(fmt.Sprintf("p-%d", i), "alice", fmt.Sprintf("a%d@x.test", i)))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, domain.ErrDuplicateIdentity) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one winner, got %d", succeeded)
	}
}

func TestRepository_Update(t *testing.T) {
	repo := NewPrincipalRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, seed("p-1", "alice", "alice@x.test")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := repo.Create(ctx, seed("p-2", "bob", "bob@x.test")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Renaming re-indexes the old username.
	next := seed("p-1", "alicia", "alicia@x.test")
	if _, err := repo.Update(ctx, next); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if _, err := repo.FindByUsername(ctx, "alice"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("old username must be released, got %v", err)
	}
	if _, err := repo.FindByUsername(ctx, "alicia"); err != nil {
		t.Fatalf("new username not indexed: %v", err)
	}

	// Colliding with another record's identity is rejected.
	collide := seed("p-1", "bob", "alicia@x.test")
	if _, err := repo.Update(ctx, collide); !errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("expected duplicate on username steal, got %v", err)
	}

	if _, err := repo.Update(ctx, seed("missing", "x", "x@x.test")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRepository_Delete(t *testing.T) {
	repo := NewPrincipalRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, seed("p-1", "alice", "alice@x.test")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Delete(ctx, "p-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.FindByID(ctx, "p-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("deleted record still found")
	}
	// Identity is released for reuse.
	if _, err := repo.Create(ctx, seed("p-2", "alice", "alice@x.test")); err != nil {
		t.Fatalf("identity not released after delete: %v", err)
	}

	if err := repo.Delete(ctx, "p-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on double delete, got %v", err)
	}
}
