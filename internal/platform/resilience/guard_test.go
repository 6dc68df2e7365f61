package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

var errTransient = errors.New("transient")

func TestGuard_CollapsesConcurrentCalls(t *testing.T) {
	g := NewGuard(nil, false, nil)
	var calls atomic.Int32

	const workers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			_, err := g.Do(context.Background(), "team", func(context.Context) (any, error) {
				calls.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("guarded call failed: %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one underlying call, got %d", got)
	}
}

func TestGuard_OnlyCountedErrorsTripBreaker(t *testing.T) {
	b := NewBreaker(BreakerConfig{FailureThreshold: 1, OpenTimeout: time.Minute}, clockwork.NewFakeClock())
	g := NewGuard(b, true, func(err error) bool { return errors.Is(err, errTransient) })

	_, _ = g.Do(context.Background(), "", func(context.Context) (any, error) {
		return nil, errors.New("status=404")
	})
	if state := g.State(); state != StateClosed {
		t.Fatalf("non-transient error must not trip breaker, got %s", state)
	}

	_, _ = g.Do(context.Background(), "", func(context.Context) (any, error) {
		return nil, errTransient
	})
	if state := g.State(); state != StateOpen {
		t.Fatalf("expected open after transient error, got %s", state)
	}

	_, err := g.Do(context.Background(), "", func(context.Context) (any, error) {
		t.Fatalf("call must not run while open")
		return nil, nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}
