package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/aegisleagues/league-data/internal/platform/resilience"
)

// Store is an in-process cache-aside store. Values are held pre-serialized as
// JSON text and deserialized on read, so loaders always hand over structured
// values and never see the wire form. Absent results are never cached.
// A nil *Store disables caching and every method degrades to a pass-through.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	flight  resilience.SingleFlight
}

type entry struct {
	value     string
	expiresAt time.Time
}

func NewStore() *Store {
	return &Store{entries: make(map[string]entry)}
}

func (s *Store) Get(_ context.Context, key string) (string, bool) {
	if s == nil || key == "" {
		return "", false
	}

	now := time.Now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return "", false
	}
	if !e.expiresAt.IsZero() && !e.expiresAt.After(now) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return "", false
	}

	return e.value, true
}

// Set stores value under key. ttl <= 0 means the entry never expires.
func (s *Store) Set(_ context.Context, key, value string, ttl time.Duration) {
	if s == nil || key == "" {
		return
	}

	expiresAt := time.Time{}
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: expiresAt}
	s.mu.Unlock()
}

// Delete removes key whether or not it is present.
func (s *Store) Delete(_ context.Context, key string) {
	if s == nil || key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if s == nil || prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// GetOrLoad returns the cached text for key, or invokes loader on a miss.
// Concurrent misses for the same key share one loader call. A loader that
// reports found=false leaves the cache untouched, so lookups of nonexistent
// entities keep going back to the source of truth.
func (s *Store) GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader func(context.Context) (string, bool, error)) (string, bool, error) {
	if loader == nil {
		return "", false, fmt.Errorf("loader is required")
	}
	if s == nil || key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, true, nil
	}

	v, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return loaded{value: cached, found: true}, nil
		}

		value, found, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		if !found {
			return loaded{}, nil
		}
		s.Set(ctx, key, value, ttl)
		return loaded{value: value, found: true}, nil
	})
	if err != nil {
		return "", false, err
	}

	result, _ := v.(loaded)
	return result.value, result.found, nil
}

type loaded struct {
	value string
	found bool
}

// Lookup is the typed cache-aside read. On a hit it deserializes the stored
// text into T; on a miss it runs loader, serializes the structured result and
// stores it under key with ttl. A stored entry that no longer deserializes is
// dropped and reloaded.
func Lookup[T any](ctx context.Context, s *Store, key string, ttl time.Duration, loader func(context.Context) (T, bool, error)) (T, bool, error) {
	var zero T
	if s == nil || key == "" {
		return loader(ctx)
	}

	if raw, ok := s.Get(ctx, key); ok {
		var out T
		if err := sonic.UnmarshalString(raw, &out); err == nil {
			return out, true, nil
		}
		s.Delete(ctx, key)
	}

	raw, found, err := s.GetOrLoad(ctx, key, ttl, func(ctx context.Context) (string, bool, error) {
		value, found, err := loader(ctx)
		if err != nil || !found {
			return "", false, err
		}
		text, err := sonic.MarshalString(value)
		if err != nil {
			return "", false, fmt.Errorf("serialize cache value for %q: %w", key, err)
		}
		return text, true, nil
	})
	if err != nil || !found {
		return zero, false, err
	}

	var out T
	if err := sonic.UnmarshalString(raw, &out); err != nil {
		return zero, false, fmt.Errorf("deserialize cache value for %q: %w", key, err)
	}
	return out, true, nil
}
