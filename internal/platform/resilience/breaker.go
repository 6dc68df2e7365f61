package resilience

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// Breaker trips open after FailureThreshold consecutive failures and lets
// HalfOpenMaxReq probes through once OpenTimeout has elapsed.
type Breaker struct {
	mu    sync.Mutex
	cfg   BreakerConfig
	clock clockwork.Clock

	state     State
	failures  int
	openedAt  time.Time
	inFlight  int
	successes int
}

func NewBreaker(cfg BreakerConfig, clock clockwork.Clock) *Breaker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Breaker{
		cfg:   cfg.Normalize(),
		clock: clock,
		state: StateClosed,
	}
}

func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.clock.Since(b.openedAt) < b.cfg.OpenTimeout {
			return ErrCircuitOpen
		}
		b.reset(StateHalfOpen)
	}

	if b.state == StateHalfOpen {
		if b.inFlight >= b.cfg.HalfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.inFlight++
	}
	return nil
}

func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
		b.release()
		b.successes++
		if b.successes >= b.cfg.HalfOpenMaxReq && b.inFlight == 0 {
			b.reset(StateClosed)
		}
	}
}

func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.trip()
		}
	case StateHalfOpen:
		b.release()
		b.trip()
	case StateOpen:
		b.openedAt = b.clock.Now()
	}
}

// State reports half_open once the open window has elapsed, even before the next Allow.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.clock.Since(b.openedAt) >= b.cfg.OpenTimeout {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) trip() {
	b.reset(StateOpen)
	b.openedAt = b.clock.Now()
}

func (b *Breaker) release() {
	if b.inFlight > 0 {
		b.inFlight--
	}
}

func (b *Breaker) reset(state State) {
	b.state = state
	b.failures = 0
	b.inFlight = 0
	b.successes = 0
	if state == StateClosed {
		b.openedAt = time.Time{}
	}
}
