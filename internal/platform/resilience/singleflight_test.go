package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var flight SingleFlight
	var calls atomic.Int32

	const workers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	sharedCount := atomic.Int32{}

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, shared := flight.Do("roster:100", func() (any, error) {
				calls.Add(1)
				time.Sleep(10 * time.Millisecond)
				return "loaded", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if v != "loaded" {
				t.Errorf("unexpected value: %v", v)
			}
			if shared {
				sharedCount.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("fn called %d times, want 1", got)
	}
	if got := sharedCount.Load(); got != workers-1 {
		t.Fatalf("shared reported for %d callers, want %d", got, workers-1)
	}
}

func TestSingleFlight_DistinctKeysDoNotShare(t *testing.T) {
	t.Parallel()

	var flight SingleFlight
	v1, err, _ := flight.Do("a", func() (any, error) { return 1, nil })
	if err != nil || v1 != 1 {
		t.Fatalf("key a: got (%v, %v)", v1, err)
	}
	v2, err, shared := flight.Do("b", func() (any, error) { return 2, nil })
	if err != nil || v2 != 2 || shared {
		t.Fatalf("key b: got (%v, %v, shared=%t)", v2, err, shared)
	}
}

func TestSingleFlight_PropagatesError(t *testing.T) {
	t.Parallel()

	var flight SingleFlight
	wantErr := errors.New("load failed")
	_, err, _ := flight.Do("k", func() (any, error) { return nil, wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected load error, got %v", err)
	}
}
