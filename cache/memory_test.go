package cache

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestInMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(time.Hour)

	if err := c.Set(ctx, "key1", "value1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, ok := c.Get(ctx, "key1")
	if !ok {
		t.Error("Get should return true for existing key")
	}
	if val != "value1" {
		t.Errorf("Get returned %q, want %q", val, "value1")
	}

	val, ok = c.Get(ctx, "nonexistent")
	if ok {
		t.Error("Get should return false for missing key")
	}
	if val != "" {
		t.Errorf("Get should return empty string for missing key, got %q", val)
	}
}

func TestInMemoryCache_TTL(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewInMemoryCache(time.Minute)
	c.now = clock.Now

	c.Set(ctx, "key1", "value1")

	if val, ok := c.Get(ctx, "key1"); !ok || val != "value1" {
		t.Error("Value should be available immediately after set")
	}

	clock.Advance(61 * time.Second)

	if _, ok := c.Get(ctx, "key1"); ok {
		t.Error("Value should be expired after TTL")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be removed on read, Len = %d", c.Len())
	}
}

func TestInMemoryCache_NoTTL(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewInMemoryCache(0)
	c.now = clock.Now

	c.Set(ctx, "key1", "value1")
	clock.Advance(365 * 24 * time.Hour)

	if val, ok := c.Get(ctx, "key1"); !ok || val != "value1" {
		t.Error("Value should never expire without a TTL")
	}
}

func TestInMemoryCache_Overwrite(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(time.Hour)

	c.Set(ctx, "key1", "value1")
	c.Set(ctx, "key1", "value2")

	val, _ := c.Get(ctx, "key1")
	if val != "value2" {
		t.Errorf("Expected overwritten value 'value2', got %q", val)
	}
}

func TestInMemoryCache_EntriesSkipExpired(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewInMemoryCache(time.Minute)
	c.now = clock.Now

	c.Set(ctx, "old", "stale")
	clock.Advance(2 * time.Minute)
	c.Set(ctx, "new", "fresh")

	entries, err := c.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 1 || entries["new"] != "fresh" {
		t.Errorf("unexpected entries %v", entries)
	}
	if c.Len() != 2 {
		t.Errorf("Len should count expired entries, got %d", c.Len())
	}
}

func TestInMemoryCache_Clear(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(time.Hour)

	c.Set(ctx, "key1", "value1")
	c.Set(ctx, "key2", "value2")
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Expected 0 entries after clear, got %d", c.Len())
	}
}

func TestInMemoryCache_Concurrent(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(time.Hour)
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := string(rune('a' + n%26))
			c.Set(ctx, key, "value")
			c.Get(ctx, key)
		}(i)
	}

	wg.Wait()

	if c.Len() != 26 {
		t.Errorf("Expected 26 keys, got %d", c.Len())
	}
}
