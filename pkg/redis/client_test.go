package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/brandiaga/storefront-backend/pkg/config"
)

type fakeCmdable struct {
	values map[string]string
}

func newFakeCmdable() *fakeCmdable {
	return &fakeCmdable{values: map[string]string{}}
}

func (f *fakeCmdable) Ping(ctx context.Context) *goredis.StatusCmd {
	cmd := goredis.NewStatusCmd(ctx)
	cmd.SetVal("PONG")
	return cmd
}

func (f *fakeCmdable) Set(ctx context.Context, key string, value any, _ time.Duration) *goredis.StatusCmd {
	f.values[key] = toString(value)
	cmd := goredis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeCmdable) Get(ctx context.Context, key string) *goredis.StringCmd {
	cmd := goredis.NewStringCmd(ctx)
	if val, ok := f.values[key]; ok {
		cmd.SetVal(val)
	} else {
		cmd.SetErr(goredis.Nil)
	}
	return cmd
}

func (f *fakeCmdable) SetNX(ctx context.Context, key string, value any, _ time.Duration) *goredis.BoolCmd {
	cmd := goredis.NewBoolCmd(ctx)
	if _, exists := f.values[key]; exists {
		cmd.SetVal(false)
		return cmd
	}
	f.values[key] = toString(value)
	cmd.SetVal(true)
	return cmd
}

func (f *fakeCmdable) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	cmd := goredis.NewIntCmd(ctx)
	var removed int64
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			removed++
		}
	}
	cmd.SetVal(removed)
	return cmd
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func TestKeyNamespacing(t *testing.T) {
	client := &Client{store: newFakeCmdable()}

	if got := client.CartKey("shopper-1"); got != "bg:cart:shopper-1" {
		t.Fatalf("unexpected cart key: %s", got)
	}
	if got := client.SavedKey("shopper-1"); got != "bg:saved:shopper-1" {
		t.Fatalf("unexpected saved key: %s", got)
	}
	if got := client.IdempotencyKey("checkout", "abc"); got != "bg:idempotency:checkout:abc" {
		t.Fatalf("unexpected idempotency key: %s", got)
	}
}

func TestSetGetDelRoundTrip(t *testing.T) {
	client := &Client{store: newFakeCmdable()}
	ctx := context.Background()

	if err := client.Set(ctx, "bg:cart:s1", `[{"product_id":"p1"}]`, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	val, err := client.Get(ctx, "bg:cart:s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if val != `[{"product_id":"p1"}]` {
		t.Fatalf("unexpected value: %s", val)
	}

	if err := client.Del(ctx, "bg:cart:s1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, err := client.Get(ctx, "bg:cart:s1"); err != Nil {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}

func TestSetNXOnlyFirstWins(t *testing.T) {
	client := &Client{store: newFakeCmdable()}
	ctx := context.Background()

	ok, err := client.SetNX(ctx, "bg:idempotency:checkout:k1", "pending", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first setnx should win: ok=%v err=%v", ok, err)
	}
	ok, err = client.SetNX(ctx, "bg:idempotency:checkout:k1", "pending", time.Minute)
	if err != nil || ok {
		t.Fatalf("second setnx should lose: ok=%v err=%v", ok, err)
	}
}

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error for empty config")
	}
	opts, err := optionsFromConfig(config.RedisConfig{Address: "localhost:6379", PoolSize: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.PoolSize != 5 {
		t.Fatalf("unexpected options: %+v", opts)
	}
}
