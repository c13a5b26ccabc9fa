package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStore_SaveAndGet(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	ctx := context.Background()
	sess := &Context{Token: "tok-1", SuccessFlash: "hello"}
	sess.SetIdentity(1, "ana@example.com", "Ana")

	if err := store.Save(ctx, sess, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(ctx, "tok-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.User == nil || got.User.Name != "Ana" {
		t.Errorf("expected stored identity, got %+v", got.User)
	}
	if got.SuccessFlash != "hello" {
		t.Errorf("expected stored flash, got %q", got.SuccessFlash)
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	ctx := context.Background()
	if err := store.Save(ctx, &Context{Token: "tok-1", SuccessFlash: "once"}, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, _ := store.Get(ctx, "tok-1")
	first.ConsumeFlash(FlashSuccess)

	// The mutation must not leak into the store without a Save.
	second, _ := store.Get(ctx, "tok-1")
	if second.SuccessFlash != "once" {
		t.Errorf("expected stored flash untouched, got %q", second.SuccessFlash)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	ctx := context.Background()
	if err := store.Save(ctx, &Context{Token: "tok-1"}, 10*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(25 * time.Millisecond)

	if _, err := store.Get(ctx, "tok-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	ctx := context.Background()
	if err := store.Save(ctx, &Context{Token: "tok-1"}, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get(ctx, "tok-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting a missing token is a no-op.
	if err := store.Delete(ctx, "tok-1"); err != nil {
		t.Errorf("unexpected error deleting missing token: %v", err)
	}
}

func TestMemoryStore_CloseIdempotent(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("unexpected error on second close: %v", err)
	}
}
