package session

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	store := NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return NewManager(store, ttl, zerolog.Nop())
}

func TestManager_LoadEmptyTokenIsAnonymous(t *testing.T) {
	m := newTestManager(t, time.Minute)

	sess, err := m.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Token == "" {
		t.Error("expected a fresh token")
	}
	if sess.IsAuthenticated() {
		t.Error("expected anonymous context")
	}
}

func TestManager_LoadUnknownTokenIsAnonymous(t *testing.T) {
	m := newTestManager(t, time.Minute)

	sess, err := m.Load(context.Background(), "never-saved")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Token == "never-saved" {
		t.Error("expected a fresh token, not the unknown one")
	}
	if sess.IsAuthenticated() {
		t.Error("expected anonymous context")
	}
}

func TestManager_SaveLoadRoundTrip(t *testing.T) {
	m := newTestManager(t, time.Minute)
	ctx := context.Background()

	sess, err := m.Load(ctx, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sess.SetIdentity(42, "ana@example.com", "Ana")

	if err := m.Save(ctx, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := m.Load(ctx, sess.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Token != sess.Token {
		t.Errorf("expected same token, got %s", got.Token)
	}
	if got.User == nil || got.User.UserID != 42 {
		t.Errorf("expected identity to survive the round trip, got %+v", got.User)
	}
}

func TestManager_ExpiredSessionLoadsAnonymous(t *testing.T) {
	m := newTestManager(t, 10*time.Millisecond)
	ctx := context.Background()

	sess, _ := m.Load(ctx, "")
	sess.SetIdentity(1, "ana@example.com", "Ana")
	if err := m.Save(ctx, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(25 * time.Millisecond)

	got, err := m.Load(ctx, sess.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsAuthenticated() {
		t.Error("expected expired session to come back anonymous")
	}
	if got.Token == sess.Token {
		t.Error("expected a fresh token after expiry")
	}
}

func TestManager_DestroyIdempotent(t *testing.T) {
	m := newTestManager(t, time.Minute)
	ctx := context.Background()

	sess, _ := m.Load(ctx, "")
	sess.SetIdentity(1, "ana@example.com", "Ana")
	if err := m.Save(ctx, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := m.Destroy(ctx, sess.Token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Destroy(ctx, sess.Token); err != nil {
		t.Errorf("expected second destroy to be a no-op, got %v", err)
	}
	if err := m.Destroy(ctx, ""); err != nil {
		t.Errorf("expected destroy of empty token to be a no-op, got %v", err)
	}

	got, err := m.Load(ctx, sess.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsAuthenticated() {
		t.Error("expected destroyed session to come back anonymous")
	}
}
