package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestStore_GetOrLoad_CollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute, nil)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "home", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "page:home", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "home" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := NewStore[int](time.Minute, clock)
	var calls atomic.Int32

	loader := func(context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}

	first, _ := store.GetOrLoad(context.Background(), "k", loader)
	clock.Advance(30 * time.Second)
	second, _ := store.GetOrLoad(context.Background(), "k", loader)
	if first != 1 || second != 1 {
		t.Fatalf("expected cached value inside ttl, got %d and %d", first, second)
	}

	clock.Advance(31 * time.Second)
	third, _ := store.GetOrLoad(context.Background(), "k", loader)
	if third != 2 {
		t.Fatalf("expected reload after ttl, got %d", third)
	}
}

func TestStore_LoaderErrorIsNotCached(t *testing.T) {
	store := NewStore[string](time.Minute, nil)
	boom := errors.New("boom")

	if _, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (string, error) {
		return "", boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store after failed load")
	}

	store.Set(context.Background(), "k", "v")
	store.Delete(context.Background(), "k")
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected key to be deleted")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
