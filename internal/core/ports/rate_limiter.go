package ports

import "context"

// RateLimiter caps attempts per identifier inside fixed time windows.
// Implementations must be safe for concurrent callers sharing one identifier.
type RateLimiter interface {
	// Allow records one attempt for identifier and returns nil while the
	// attempt fits the current window, or ErrRateLimited once the budget
	// is exhausted.
	Allow(ctx context.Context, identifier string) error
}
