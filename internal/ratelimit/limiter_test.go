package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/boardly/access-engine/internal/core/domain"
)

func TestLimiter_BudgetAndReset(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	l := New(3, 15*time.Minute).WithClock(func() time.Time { return now })
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := l.Allow(ctx, "alice"); err != nil {
			t.Fatalf("attempt %d should be allowed: %v", i, err)
		}
	}
	if err := l.Allow(ctx, "alice"); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("attempt 4 should be denied, got %v", err)
	}

	// Other identifiers hold independent budgets.
	if err := l.Allow(ctx, "bob"); err != nil {
		t.Fatalf("independent identifier should be allowed: %v", err)
	}

	// Window elapses: the next attempt starts a fresh window and is allowed.
	now = now.Add(15 * time.Minute)
	if err := l.Allow(ctx, "alice"); err != nil {
		t.Fatalf("fresh window should allow: %v", err)
	}
}

func TestLimiter_DeniedAttemptsStillCount(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	l := New(2, time.Minute).WithClock(func() time.Time { return now })
	ctx := context.Background()

	_ = l.Allow(ctx, "alice")
	_ = l.Allow(ctx, "alice")
	for i := 0; i < 5; i++ {
		if err := l.Allow(ctx, "alice"); !errors.Is(err, domain.ErrRateLimited) {
			t.Fatalf("hammering inside the window must keep denying, got %v", err)
		}
	}
}

func TestLimiter_ConcurrentSameIdentifier(t *testing.T) {
	const max = 5
	const callers = 50

	l := New(max, time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- l.Allow(ctx, "shared")
		}()
	}
	wg.Wait()
	close(results)

	allowed := 0
	for err := range results {
		if err == nil {
			allowed++
		} else if !errors.Is(err, domain.ErrRateLimited) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if allowed != max {
		t.Fatalf("expected exactly %d allowed under concurrency, got %d", max, allowed)
	}
}

func TestLimiter_SweepEvictsElapsedWindows(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	l := New(1, time.Minute).WithClock(func() time.Time { return now })
	ctx := context.Background()

	for i := 0; i < sweepThreshold; i++ {
		_ = l.Allow(ctx, fmt.Sprintf("id-%d", i))
	}

	now = now.Add(2 * time.Minute)
	if err := l.Allow(ctx, "fresh"); err != nil {
		t.Fatalf("allow after sweep failed: %v", err)
	}

	l.mu.Lock()
	size := len(l.windows)
	l.mu.Unlock()
	if size > 1 {
		t.Fatalf("expected elapsed windows to be swept, table still holds %d", size)
	}
}
