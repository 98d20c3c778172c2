package cart

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	pkgredis "github.com/brandiaga/storefront-backend/pkg/redis"
)

type fakeRedis struct {
	values map[string]string
	getErr error
	setErr error
	delErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	raw, ok := f.values[key]
	if !ok {
		return "", pkgredis.Nil
	}
	return raw, nil
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = fmt.Sprintf("%v", value)
	return nil
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) error {
	if f.delErr != nil {
		return f.delErr
	}
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func cartKey(shopperID string) string {
	return "bg:cart:" + shopperID
}

func TestRedisStoreRoundTrip(t *testing.T) {
	fake := newFakeRedis()
	store, err := NewRedisStore(fake, cartKey, 0)
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	ctx := context.Background()

	want := []Item{
		{ProductID: "p1", Name: "One", Price: decimal.NewFromFloat(9.99), Quantity: 2, Color: "red"},
		{ProductID: "p2", Name: "Two", Price: decimal.NewFromFloat(4.50), Quantity: 1},
	}
	if err := store.Save(ctx, "shopper-1", want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "shopper-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for idx := range want {
		if got[idx].ProductID != want[idx].ProductID {
			t.Fatalf("row %d: expected %s, got %s", idx, want[idx].ProductID, got[idx].ProductID)
		}
		if got[idx].Quantity != want[idx].Quantity {
			t.Fatalf("row %d: expected quantity %d, got %d", idx, want[idx].Quantity, got[idx].Quantity)
		}
		if !got[idx].Price.Equal(want[idx].Price) {
			t.Fatalf("row %d: expected price %s, got %s", idx, want[idx].Price, got[idx].Price)
		}
	}
}

func TestRedisStoreMissingKeyIsEmpty(t *testing.T) {
	store, err := NewRedisStore(newFakeRedis(), cartKey, 0)
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}

	items, err := store.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty list, got %+v", items)
	}
}

func TestRedisStoreCorruptSnapshotIsEmpty(t *testing.T) {
	fake := newFakeRedis()
	fake.values[cartKey("shopper-1")] = "{not json"
	store, err := NewRedisStore(fake, cartKey, 0)
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}

	items, err := store.Load(context.Background(), "shopper-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list from corrupt snapshot, got %+v", items)
	}
}

func TestRedisStoreTransportErrorSurfaces(t *testing.T) {
	fake := newFakeRedis()
	fake.getErr = fmt.Errorf("connection refused")
	store, err := NewRedisStore(fake, cartKey, 0)
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}

	if _, err := store.Load(context.Background(), "shopper-1"); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestRedisStoreClear(t *testing.T) {
	fake := newFakeRedis()
	store, err := NewRedisStore(fake, cartKey, 0)
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	ctx := context.Background()

	if err := store.Save(ctx, "shopper-1", []Item{{ProductID: "p1", Quantity: 1}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(ctx, "shopper-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	items, err := store.Load(ctx, "shopper-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list after clear, got %+v", items)
	}
}

func TestNewRedisStoreValidatesDeps(t *testing.T) {
	if _, err := NewRedisStore(nil, cartKey, 0); err == nil {
		t.Fatal("expected error for nil client")
	}
	if _, err := NewRedisStore(newFakeRedis(), nil, 0); err == nil {
		t.Fatal("expected error for nil key function")
	}
}

func TestMemoryStoreCopiesOnReadAndWrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	original := []Item{{ProductID: "p1", Quantity: 1}}
	if err := store.Save(ctx, "shopper-1", original); err != nil {
		t.Fatalf("save: %v", err)
	}
	original[0].Quantity = 99

	loaded, err := store.Load(ctx, "shopper-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded[0].Quantity != 1 {
		t.Fatalf("stored list aliased caller slice: %+v", loaded)
	}

	loaded[0].Quantity = 42
	reloaded, _ := store.Load(ctx, "shopper-1")
	if reloaded[0].Quantity != 1 {
		t.Fatalf("loaded list aliased stored slice: %+v", reloaded)
	}
}
