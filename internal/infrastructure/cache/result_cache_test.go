package cache

import (
	"context"
	"testing"
	"time"
)

type payload struct {
	Summary string `json:"summary"`
	Count   int    `json:"count"`
}

func TestResultCacheRoundTrip(t *testing.T) {
	rc := NewResultCache(NewMemoryStore(), time.Minute)
	ctx := context.Background()

	key := DigestKey("transcript text", "context", "remote=true")
	if err := rc.Set(ctx, key, payload{Summary: "done", Count: 3}); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	var got payload
	hit, err := rc.Get(ctx, key, &got)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if got.Summary != "done" || got.Count != 3 {
		t.Errorf("unexpected payload %+v", got)
	}
}

func TestResultCacheMiss(t *testing.T) {
	rc := NewResultCache(NewMemoryStore(), time.Minute)

	var got payload
	hit, err := rc.Get(context.Background(), DigestKey("missing"), &got)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if hit {
		t.Fatal("expected cache miss")
	}
}

func TestResultCacheDelete(t *testing.T) {
	rc := NewResultCache(NewMemoryStore(), time.Minute)
	ctx := context.Background()

	key := DigestKey("a")
	if err := rc.Set(ctx, key, payload{Summary: "x"}); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := rc.Delete(ctx, key); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	var got payload
	hit, _ := rc.Get(ctx, key, &got)
	if hit {
		t.Fatal("expected entry to be gone after delete")
	}
}

func TestDigestKeyStability(t *testing.T) {
	a := DigestKey("one", "two")
	b := DigestKey("one", "two")
	if a != b {
		t.Error("same inputs should produce the same key")
	}

	// Part boundaries matter: "ab"+"c" must differ from "a"+"bc".
	if DigestKey("ab", "c") == DigestKey("a", "bc") {
		t.Error("part boundaries should affect the key")
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	if _, found, _ := store.Get(ctx, "k"); !found {
		t.Fatal("expected value before expiry")
	}

	time.Sleep(20 * time.Millisecond)

	if _, found, _ := store.Get(ctx, "k"); found {
		t.Fatal("expected value to expire")
	}
}
