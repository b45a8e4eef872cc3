package authgate

import (
	"context"
	"testing"
	"time"

	"github.com/cantina/adminctl/domain"
	"github.com/cantina/adminctl/repository"
	"github.com/cantina/adminctl/repository/memory"
)

func loggedInStore(t *testing.T, expiresIn time.Duration) repository.SessionStore {
	t.Helper()
	store := memory.New()
	user := &domain.AdminUser{ID: "u1", Email: "admin@example.com", Role: "admin"}
	if err := store.Save("tok", user, expiresIn); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	return store
}

func TestGate_ValidSession(t *testing.T) {
	gate := New(loggedInStore(t, time.Hour), nil)

	verdict := gate.Check("users")
	if !verdict.Authenticated() {
		t.Fatal("expected authenticated verdict")
	}
	if verdict.User == nil || verdict.User.ID != "u1" {
		t.Errorf("User = %+v", verdict.User)
	}
	if verdict.RedirectTo != "" {
		t.Errorf("RedirectTo = %q", verdict.RedirectTo)
	}
}

func TestGate_NoSessionRedirectsProtectedRoute(t *testing.T) {
	gate := New(memory.New(), nil)

	verdict := gate.Check("users")
	if verdict.Authenticated() {
		t.Fatal("expected unauthenticated verdict")
	}
	if verdict.RedirectTo != RouteLogin {
		t.Errorf("RedirectTo = %q, want login", verdict.RedirectTo)
	}
}

func TestGate_PublicRoutesNeedNoRedirect(t *testing.T) {
	gate := New(memory.New(), nil)

	for _, route := range []string{"login", "forgot-password", "privacy-policy"} {
		verdict := gate.Check(route)
		if verdict.Authenticated() {
			t.Errorf("%s: expected unauthenticated verdict", route)
		}
		if verdict.RedirectTo != "" {
			t.Errorf("%s: RedirectTo = %q, public routes render for everyone", route, verdict.RedirectTo)
		}
	}
}

func TestGate_ExpiredSessionCleared(t *testing.T) {
	store := loggedInStore(t, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	gate := New(store, nil)

	verdict := gate.Check("users")
	if verdict.Authenticated() {
		t.Fatal("expired session must not authenticate")
	}
	if verdict.RedirectTo != RouteLogin {
		t.Errorf("RedirectTo = %q", verdict.RedirectTo)
	}
	if store.Load() != nil {
		t.Error("expired session must be cleared by the check")
	}
}

func TestGate_SessionWithoutExpiryStaysValid(t *testing.T) {
	gate := New(loggedInStore(t, 0), nil)

	if !gate.Check("dashboard").Authenticated() {
		t.Error("a session without a recorded expiry must stay valid")
	}
}

func TestGate_ChecksStoreEveryTime(t *testing.T) {
	store := loggedInStore(t, time.Hour)
	gate := New(store, nil)

	if !gate.Check("users").Authenticated() {
		t.Fatal("precondition: first check authenticated")
	}

	// out-of-band logout must be visible on the next check
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if gate.Check("users").Authenticated() {
		t.Error("verdicts must not be cached across checks")
	}
}

func TestGate_Logout(t *testing.T) {
	store := loggedInStore(t, time.Hour)
	gate := New(store, nil)

	verdict := gate.Logout()
	if verdict.Authenticated() {
		t.Error("logout verdict must be unauthenticated")
	}
	if verdict.RedirectTo != RouteLogin {
		t.Errorf("RedirectTo = %q", verdict.RedirectTo)
	}
	if store.Load() != nil {
		t.Error("logout must clear the store")
	}
}

func TestGate_ExtraPublicRoutes(t *testing.T) {
	gate := New(memory.New(), nil, "health")
	if !gate.IsPublic("health") {
		t.Error("extra public route not registered")
	}
	if gate.IsPublic("users") {
		t.Error("users must stay protected")
	}
}

func TestGate_UnavailableStorageDeniesAccess(t *testing.T) {
	gate := New(repository.Unavailable(), nil)
	if gate.Check("users").Authenticated() {
		t.Error("unreadable storage must never authenticate")
	}
}

func TestFromContext_RoundTrip(t *testing.T) {
	gate := New(memory.New(), nil)
	ctx := WithGate(context.Background(), gate)
	if FromContext(ctx) != gate {
		t.Error("FromContext must return the attached gate")
	}
}

func TestFromContext_PanicsWhenUnwired(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FromContext without WithGate must panic")
		}
	}()
	FromContext(context.Background())
}
