package resilience

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Guard wraps outbound calls to one dependency with a circuit breaker and
// collapses concurrent calls that share a key.
type Guard struct {
	breaker *Breaker
	flight  singleflight.Group
	counts  func(error) bool
}

// NewGuard returns a Guard. counts decides which errors trip the breaker;
// nil counts every error. A disabled config yields a Guard with no breaker.
func NewGuard(breaker *Breaker, enabled bool, counts func(error) bool) *Guard {
	if !enabled {
		breaker = nil
	}
	if counts == nil {
		counts = func(err error) bool { return err != nil }
	}
	return &Guard{breaker: breaker, counts: counts}
}

func (g *Guard) State() State {
	if g == nil || g.breaker == nil {
		return StateClosed
	}
	return g.breaker.State()
}

// Do runs fn unless the breaker is open. An empty key skips call collapsing.
func (g *Guard) Do(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	if g == nil {
		return fn(ctx)
	}
	if g.breaker != nil {
		if err := g.breaker.Allow(); err != nil {
			return nil, err
		}
	}

	run := func() (any, error) {
		out, err := fn(ctx)
		g.record(err)
		return out, err
	}

	if key == "" {
		return run()
	}
	out, err, _ := g.flight.Do(key, run)
	return out, err
}

func (g *Guard) record(err error) {
	if g.breaker == nil {
		return
	}
	if err != nil && g.counts(err) {
		g.breaker.RecordFailure()
		return
	}
	g.breaker.RecordSuccess()
}
