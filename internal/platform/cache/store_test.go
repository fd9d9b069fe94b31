package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var errUnexpectedValue = errors.New("unexpected value")

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore()
	var calls atomic.Int32

	loader := func(context.Context) (string, bool, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", true, nil
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
			v, found, err := store.GetOrLoad(context.Background(), "same-key", time.Minute, loader)
			if err != nil {
				errCh <- err
				return
			}
			if !found || v != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_SecondCallSkipsLoader(t *testing.T) {
	t.Parallel()

	store := NewStore()
	var calls atomic.Int32
	loader := func(context.Context) (string, bool, error) {
		calls.Add(1)
		return "cached", true, nil
	}

	for i := 0; i < 3; i++ {
		v, found, err := store.GetOrLoad(context.Background(), "k", time.Minute, loader)
		if err != nil {
			t.Fatalf("get or load: %v", err)
		}
		if !found || v != "cached" {
			t.Fatalf("unexpected result: %q found=%t", v, found)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_AbsentResultNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore()
	var calls atomic.Int32
	loader := func(context.Context) (string, bool, error) {
		calls.Add(1)
		return "", false, nil
	}

	for i := 0; i < 3; i++ {
		_, found, err := store.GetOrLoad(context.Background(), "missing", time.Minute, loader)
		if err != nil {
			t.Fatalf("get or load: %v", err)
		}
		if found {
			t.Fatal("expected not found")
		}
	}

	// Every lookup of a nonexistent entity re-queries the source of truth.
	if got := calls.Load(); got != 3 {
		t.Fatalf("loader called %d times, want 3", got)
	}
}

func TestStore_TTLExpiresEntry(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Set(context.Background(), "short", "v", 10*time.Millisecond)

	if _, ok := store.Get(context.Background(), "short"); !ok {
		t.Fatal("expected hit before expiry")
	}

	time.Sleep(25 * time.Millisecond)
	if _, ok := store.Get(context.Background(), "short"); ok {
		t.Fatal("expected miss after expiry")
	}
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Set(context.Background(), "pin", "v", 0)

	time.Sleep(10 * time.Millisecond)
	if _, ok := store.Get(context.Background(), "pin"); !ok {
		t.Fatal("expected entry without ttl to stay")
	}
}

func TestStore_DeleteAndDeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()
	store.Set(ctx, "season:roster:100", "a", 0)
	store.Set(ctx, "season:roster:101", "b", 0)
	store.Set(ctx, "season:name:100", "c", 0)

	// Delete is unconditional, absent keys included.
	store.Delete(ctx, "season:roster:999")
	store.Delete(ctx, "season:roster:100")
	if _, ok := store.Get(ctx, "season:roster:100"); ok {
		t.Fatal("expected deleted key to miss")
	}

	store.DeletePrefix(ctx, "season:roster:")
	if _, ok := store.Get(ctx, "season:roster:101"); ok {
		t.Fatal("expected prefix-deleted key to miss")
	}
	if _, ok := store.Get(ctx, "season:name:100"); !ok {
		t.Fatal("expected unrelated key to survive")
	}
}

type rosterView struct {
	TeamName string   `json:"TeamName"`
	Players  []string `json:"Players"`
}

func TestLookup_TypedRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewStore()
	var calls atomic.Int32
	loader := func(context.Context) (rosterView, bool, error) {
		calls.Add(1)
		return rosterView{TeamName: "Cloud Nine", Players: []string{"alpha", "beta"}}, true, nil
	}

	first, found, err := Lookup(context.Background(), store, "view:1", time.Minute, loader)
	if err != nil || !found {
		t.Fatalf("first lookup: found=%t err=%v", found, err)
	}
	second, found, err := Lookup(context.Background(), store, "view:1", time.Minute, loader)
	if err != nil || !found {
		t.Fatalf("second lookup: found=%t err=%v", found, err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
	if second.TeamName != first.TeamName || len(second.Players) != 2 {
		t.Fatalf("unexpected cached view: %+v", second)
	}

	// Stored form is serialized text, not the structured value.
	raw, ok := store.Get(context.Background(), "view:1")
	if !ok || raw == "" || raw[0] != '{' {
		t.Fatalf("expected serialized JSON text in store, got %q", raw)
	}
}

func TestLookup_LoaderErrorPropagates(t *testing.T) {
	t.Parallel()

	store := NewStore()
	wantErr := errors.New("store unavailable")
	_, _, err := Lookup(context.Background(), store, "bad", time.Minute, func(context.Context) (int, bool, error) {
		return 0, false, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if _, ok := store.Get(context.Background(), "bad"); ok {
		t.Fatal("failed load must not populate cache")
	}
}

func TestNilStore_PassesThrough(t *testing.T) {
	t.Parallel()

	var store *Store
	ctx := context.Background()
	var calls atomic.Int32
	loader := func(context.Context) (string, bool, error) {
		calls.Add(1)
		return "fresh", true, nil
	}

	for i := 0; i < 2; i++ {
		v, found, err := Lookup(ctx, store, "any", time.Minute, loader)
		if err != nil {
			t.Fatalf("lookup via nil store: %v", err)
		}
		if !found || v != "fresh" {
			t.Fatalf("unexpected result: %q found=%t", v, found)
		}
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2", got)
	}

	// Mutators on a nil store are no-ops, not panics.
	store.Set(ctx, "k", "v", time.Minute)
	store.Delete(ctx, "k")
	store.DeletePrefix(ctx, "season:")
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("nil store must never report a hit")
	}
}
