package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	pkgredis "github.com/brandiaga/storefront-backend/pkg/redis"
)

// ListStore is the durable storage boundary for a per-shopper item list. Both
// the active cart and the saved-for-later list are stored through it, under
// different keys.
type ListStore interface {
	// Load returns the stored list. A missing or unreadable snapshot yields
	// an empty list, not an error; only transport failures are errors.
	Load(ctx context.Context, shopperID string) ([]Item, error)
	// Save replaces the whole stored list.
	Save(ctx context.Context, shopperID string, items []Item) error
	// Clear erases the stored list.
	Clear(ctx context.Context, shopperID string) error
}

type redisCommands interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// RedisStore persists item lists as JSON blobs under namespaced keys, the
// server-side analog of the browser's single local-storage entry.
type RedisStore struct {
	client redisCommands
	keyFn  func(shopperID string) string
	ttl    time.Duration
}

// NewRedisStore builds a store writing under keys produced by keyFn.
func NewRedisStore(client redisCommands, keyFn func(string) string, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if keyFn == nil {
		return nil, fmt.Errorf("key function required")
	}
	return &RedisStore{client: client, keyFn: keyFn, ttl: ttl}, nil
}

func (s *RedisStore) Load(ctx context.Context, shopperID string) ([]Item, error) {
	raw, err := s.client.Get(ctx, s.keyFn(shopperID))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return []Item{}, nil
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		// Corrupt snapshots rehydrate as an empty list rather than blocking
		// the shopper (fail-open).
		return []Item{}, nil
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func (s *RedisStore) Save(ctx context.Context, shopperID string, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.keyFn(shopperID), string(payload), s.ttl); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, shopperID string) error {
	if err := s.client.Del(ctx, s.keyFn(shopperID)); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}

// MemoryStore is an in-process ListStore used by tests and local development.
type MemoryStore struct {
	mu    sync.Mutex
	lists map[string][]Item

	// FailSaves makes every Save return an error, for exercising the
	// swallowed-write-failure path.
	FailSaves bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{lists: map[string][]Item{}}
}

func (s *MemoryStore) Load(_ context.Context, shopperID string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.lists[shopperID]
	items := make([]Item, len(stored))
	copy(items, stored)
	return items, nil
}

func (s *MemoryStore) Save(_ context.Context, shopperID string, items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSaves {
		return fmt.Errorf("simulated storage failure")
	}
	stored := make([]Item, len(items))
	copy(stored, items)
	s.lists[shopperID] = stored
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, shopperID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lists, shopperID)
	return nil
}
