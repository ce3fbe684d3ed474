package utils

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Limiter caps how many tasks of one batch run at the same time. Create one
// per batch operation and pass it down.
type Limiter struct {
	size int
}

// NewLimiter returns a limiter allowing n concurrent tasks, at least 1
func NewLimiter(n int) *Limiter {
	if n < 1 {
		n = 1
	}
	return &Limiter{size: n}
}

// DefaultLimiter is sized to GOMAXPROCS, the parallelism the runtime may use
func DefaultLimiter() *Limiter {
	return NewLimiter(runtime.GOMAXPROCS(0))
}

// Size returns the concurrency cap
func (l *Limiter) Size() int {
	if l == nil || l.size < 1 {
		return 1
	}
	return l.size
}

// Outcome is the settled result of one task
type Outcome[R any] struct {
	Value R
	Err   error
}

// Settle runs fn for every item under the limiter and waits for all of them.
// A failing task never cancels its siblings. Outcomes are index-aligned with
// items.
func Settle[T, R any](ctx context.Context, limiter *Limiter, items []T, fn func(context.Context, T) (R, error)) []Outcome[R] {
	outcomes := make([]Outcome[R], len(items))

	var g errgroup.Group
	g.SetLimit(limiter.Size())

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}
			v, err := fn(ctx, item)
			outcomes[i] = Outcome[R]{Value: v, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return outcomes
}
