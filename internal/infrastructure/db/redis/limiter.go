package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/boardly/access-engine/internal/core/domain"
)

// Limiter is a fixed-window rate limiter backed by Redis, for deployments
// running more than one engine instance against a shared attempt budget.
// Same contract as the in-memory limiter: INCR counts the attempt, the
// window key expires when the window elapses.
type Limiter struct {
	client *redis.Client
	scope  string
	max    int64
	window time.Duration
}

// NewLimiter builds a limiter allowing max attempts per identifier within
// each window. scope namespaces the keys so independent limiters (auth vs.
// general) never collide.
func NewLimiter(client *redis.Client, scope string, max int, window time.Duration) *Limiter {
	return &Limiter{client: client, scope: scope, max: int64(max), window: window}
}

func (l *Limiter) Allow(ctx context.Context, identifier string) error {
	key := "ratelimit:" + l.scope + ":" + identifier

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.Wrap(domain.KindStorage, "rate limit update", err)
	}

	if incr.Val() > l.max {
		return domain.ErrRateLimited
	}
	return nil
}
