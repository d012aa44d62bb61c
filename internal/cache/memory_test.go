package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	if err := store.Set(ctx, "verification_sent:a@gym.test", "1", time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, ok, err := store.Get(ctx, "verification_sent:a@gym.test")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("expected key to exist")
	}
	if value != "1" {
		t.Errorf("value = %q, expected %q", value, "1")
	}
}

func TestMemoryStore_MissingKey(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	_, ok, err := store.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("missing key should not exist")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	store.Set(ctx, "short", "1", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, ok, _ := store.Get(ctx, "short")
	if ok {
		t.Error("expired key should not be returned")
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	store.Set(ctx, "key", "1", time.Hour)
	if err := store.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, ok, _ := store.Get(ctx, "key")
	if ok {
		t.Error("deleted key should not exist")
	}

	// Deleting a missing key is not an error
	if err := store.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() of missing key error = %v", err)
	}
}

func TestMemoryStore_Overwrite(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	store.Set(ctx, "key", "first", time.Hour)
	store.Set(ctx, "key", "second", time.Hour)

	value, ok, _ := store.Get(ctx, "key")
	if !ok || value != "second" {
		t.Errorf("value = %q (exists=%v), expected %q", value, ok, "second")
	}
}
