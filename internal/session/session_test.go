package session

import (
	"testing"
)

func TestContext_SetIdentity(t *testing.T) {
	sess := &Context{Token: "tok"}

	if sess.IsAuthenticated() {
		t.Error("expected fresh context to be anonymous")
	}

	sess.SetIdentity(7, "ana@example.com", "Ana")

	if !sess.IsAuthenticated() {
		t.Error("expected context to be authenticated after SetIdentity")
	}
	if sess.User.UserID != 7 {
		t.Errorf("expected user id 7, got %d", sess.User.UserID)
	}
	if sess.User.Email != "ana@example.com" {
		t.Errorf("expected email ana@example.com, got %s", sess.User.Email)
	}
	if sess.User.Name != "Ana" {
		t.Errorf("expected name Ana, got %s", sess.User.Name)
	}
}

func TestContext_FlashConsumedOnce(t *testing.T) {
	sess := &Context{Token: "tok"}

	sess.SetFlash(FlashSuccess, "Project added successfully!")

	if !sess.HasPendingFlash() {
		t.Fatal("expected pending flash after SetFlash")
	}

	msg, ok := sess.ConsumeFlash(FlashSuccess)
	if !ok {
		t.Fatal("expected first consume to report a pending message")
	}
	if msg != "Project added successfully!" {
		t.Errorf("unexpected message: %s", msg)
	}

	// Second read finds nothing.
	msg, ok = sess.ConsumeFlash(FlashSuccess)
	if ok || msg != "" {
		t.Errorf("expected empty second consume, got %q (ok=%v)", msg, ok)
	}
	if sess.HasPendingFlash() {
		t.Error("expected no pending flash after consume")
	}
}

func TestContext_FlashSlotsIndependent(t *testing.T) {
	sess := &Context{Token: "tok"}

	sess.SetFlash(FlashSuccess, "saved")
	sess.SetFlash(FlashError, "broken")

	msg, ok := sess.ConsumeFlash(FlashError)
	if !ok || msg != "broken" {
		t.Errorf("expected error flash 'broken', got %q (ok=%v)", msg, ok)
	}

	// Consuming the error slot leaves the success slot pending.
	if !sess.HasPendingFlash() {
		t.Error("expected success flash still pending")
	}

	msg, ok = sess.ConsumeFlash(FlashSuccess)
	if !ok || msg != "saved" {
		t.Errorf("expected success flash 'saved', got %q (ok=%v)", msg, ok)
	}
}

func TestContext_FlashOverwriteSameKind(t *testing.T) {
	sess := &Context{Token: "tok"}

	sess.SetFlash(FlashSuccess, "first")
	sess.SetFlash(FlashSuccess, "second")

	msg, _ := sess.ConsumeFlash(FlashSuccess)
	if msg != "second" {
		t.Errorf("expected the newer message to win, got %q", msg)
	}

	if _, ok := sess.ConsumeFlash(FlashSuccess); ok {
		t.Error("expected slot to hold at most one message")
	}
}
