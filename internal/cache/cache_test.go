package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheBasics(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Error("unexpected hit on empty cache")
	}

	c.Set(ctx, "k", "v", 0)
	if got, ok := c.Get(ctx, "k"); !ok || got != "v" {
		t.Errorf("Get = %q, %v; want v, true", got, ok)
	}

	c.Delete(ctx, "k")
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("key survived Delete")
	}

	c.Set(ctx, "a", "1", 0)
	c.Set(ctx, "b", "2", 0)
	c.Clear(ctx)
	if _, ok := c.Get(ctx, "a"); ok {
		t.Error("key survived Clear")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	c.Set(ctx, "k", "v", 5*time.Millisecond)
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Fatal("fresh entry should be readable")
	}
	time.Sleep(10 * time.Millisecond)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expired entry still readable")
	}
}
