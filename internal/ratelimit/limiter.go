// Package ratelimit caps attempts per identifier inside fixed time windows.
// Authentication endpoints get a strict limiter (few attempts over a long
// window); general traffic gets a looser one. Both are instances of the same
// Limiter with different settings.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/boardly/access-engine/internal/core/domain"
)

// sweepThreshold bounds table growth: once the table holds this many
// identifiers, elapsed windows are purged on the next Allow.
const sweepThreshold = 4096

type window struct {
	count int
	start time.Time
}

// Limiter tracks one fixed-size window per identifier. The whole table sits
// behind one mutex: updates are a map lookup and an increment, cheap next to
// the bcrypt work they gate.
type Limiter struct {
	max    int
	length time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

// New builds a limiter allowing max attempts per identifier within each
// window of the given length.
func New(max int, length time.Duration) *Limiter {
	if max <= 0 {
		max = 1
	}
	if length <= 0 {
		length = time.Minute
	}
	return &Limiter{
		max:     max,
		length:  length,
		now:     func() time.Time { return time.Now().UTC() },
		windows: make(map[string]*window),
	}
}

// WithClock replaces the limiter's time source, for tests.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// Allow records one attempt for identifier. A fresh or elapsed window starts
// at count 1 and allows; within a live window the attempt is allowed while
// the count stays at or below the maximum.
func (l *Limiter) Allow(_ context.Context, identifier string) error {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[identifier]
	if !ok || now.Sub(w.start) >= l.length {
		if len(l.windows) >= sweepThreshold {
			l.sweep(now)
		}
		l.windows[identifier] = &window{count: 1, start: now}
		return nil
	}

	w.count++
	if w.count > l.max {
		return domain.ErrRateLimited
	}
	return nil
}

// sweep drops elapsed windows. Caller holds the mutex.
func (l *Limiter) sweep(now time.Time) {
	for id, w := range l.windows {
		if now.Sub(w.start) >= l.length {
			delete(l.windows, id)
		}
	}
}
