package memory

import (
	"testing"
	"time"

	"github.com/cantina/adminctl/domain"
)

func TestStore_RoundTrip(t *testing.T) {
	store := New()

	user := &domain.AdminUser{ID: "u1", Email: "admin@example.com", Role: "admin"}
	if err := store.Save("tok", user, time.Hour); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	session := store.Load()
	if session == nil || session.Token != "tok" {
		t.Fatalf("Load = %+v", session)
	}
	if store.IsExpired() {
		t.Error("fresh session must not be expired")
	}
	if store.Token() != "tok" {
		t.Errorf("Token() = %q", store.Token())
	}
}

func TestStore_SaveCopiesUser(t *testing.T) {
	store := New()

	user := &domain.AdminUser{ID: "u1", Email: "admin@example.com"}
	if err := store.Save("tok", user, 0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	user.Email = "mutated@example.com"
	if got := store.Load().User.Email; got != "admin@example.com" {
		t.Errorf("stored user aliased the caller's struct: %q", got)
	}
}

func TestStore_NoExpiry(t *testing.T) {
	store := New()
	if err := store.Save("tok", &domain.AdminUser{ID: "u1"}, 0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if store.IsExpired() {
		t.Error("a session without expiry must not expire")
	}
	if store.Load().ExpiresAt != nil {
		t.Error("ExpiresAt must be nil when no lifetime was given")
	}
}

func TestStore_Expiry(t *testing.T) {
	store := New()
	if err := store.Save("tok", &domain.AdminUser{ID: "u1"}, time.Millisecond); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if !store.IsExpired() {
		t.Error("session past its expiry must report expired")
	}
}

func TestStore_Clear(t *testing.T) {
	store := New()
	if err := store.Save("tok", &domain.AdminUser{ID: "u1"}, time.Hour); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if store.Load() != nil {
		t.Error("Load must return nil after Clear")
	}
	if store.IsExpired() {
		t.Error("cleared store has nothing to expire")
	}
}
