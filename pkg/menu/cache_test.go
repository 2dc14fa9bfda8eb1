package menu

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func newRedisCache(t *testing.T) *RedisCache {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skipf("REDIS_ADDR not set")
	}
	c, err := NewRedisCache(addr, os.Getenv("REDIS_PASSWORD"), 0, time.Minute)
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	t.Cleanup(func() {
		c.Clear(context.Background())
		c.Close()
	})
	return c
}

func TestRedisCache_MissAndRoundTrip(t *testing.T) {
	c := newRedisCache(t)
	ctx := context.Background()

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := c.Get(ctx); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("empty cache: expected ErrCacheMiss, got %v", err)
	}

	form := testForm()
	form.Version = 3
	if err := c.Set(ctx, &form); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Version != 3 || len(got.Sandwiches) != 2 || got.MaxExtras != 1 {
		t.Errorf("unexpected cached form %+v", got)
	}

	ttl, err := c.Client.TTL(ctx, CacheKey).Result()
	if err != nil {
		t.Fatal(err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("expected a TTL up to one minute, got %v", ttl)
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := c.Get(ctx); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("after clear: expected ErrCacheMiss, got %v", err)
	}
}

func TestRedisCache_CorruptEntryIsNotAMiss(t *testing.T) {
	c := newRedisCache(t)
	ctx := context.Background()

	if err := c.Client.Set(ctx, CacheKey, "not json", time.Minute).Err(); err != nil {
		t.Fatal(err)
	}
	_, err := c.Get(ctx)
	if err == nil || errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected a decode error, got %v", err)
	}
}

func TestService_FillsRedisOnRead(t *testing.T) {
	c := newRedisCache(t)
	svc, _ := newTestService(t)
	svc.Cache = c
	ctx := context.Background()

	if err := c.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Publish(ctx, testForm(), time.Now()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if _, err := svc.Current(ctx); err != nil {
		t.Fatalf("Current: %v", err)
	}
	cached, err := c.Get(ctx)
	if err != nil {
		t.Fatalf("expected Current to fill the cache: %v", err)
	}
	if cached.Version != 1 {
		t.Errorf("expected version 1 cached, got %d", cached.Version)
	}
}
