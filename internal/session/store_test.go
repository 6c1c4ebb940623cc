package session

import (
	"testing"

	"github.com/sfshop/storefront-client/internal/users"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()

	if s.IsAuthenticated() || s.Token() != "" || s.CurrentUser() != nil {
		t.Fatal("new store must be anonymous")
	}

	s.SetSession("tok-1", &users.User{ID: "u1", Username: "kai"})
	if !s.IsAuthenticated() {
		t.Fatal("expected authenticated state")
	}
	if s.Token() != "tok-1" {
		t.Fatalf("unexpected token %q", s.Token())
	}
	if got := s.CurrentUser(); got == nil || got.Username != "kai" {
		t.Fatalf("unexpected user %+v", got)
	}

	s.Clear()
	if s.IsAuthenticated() || s.Token() != "" {
		t.Fatal("cleared store must be anonymous")
	}
}

func TestTokenWithoutUserIsNotAuthenticated(t *testing.T) {
	s := NewStore()
	s.SetSession("tok-1", nil)

	// A resumed token is not a login until the profile loads.
	if s.IsAuthenticated() {
		t.Fatal("token alone must not count as authenticated")
	}

	s.SetUser(&users.User{ID: "u1"})
	if !s.IsAuthenticated() {
		t.Fatal("expected authenticated after profile arrives")
	}
	if s.Token() != "tok-1" {
		t.Fatal("SetUser must keep the installed token")
	}
}

func TestCurrentUserReturnsCopy(t *testing.T) {
	s := NewStore()
	s.SetSession("tok", &users.User{Username: "kai"})

	got := s.CurrentUser()
	got.Username = "mutated"

	if s.CurrentUser().Username != "kai" {
		t.Fatal("store state must not be mutable through CurrentUser")
	}
}

func TestSubscribe(t *testing.T) {
	s := NewStore()
	count := 0
	cancel := s.Subscribe(func() { count++ })

	s.SetSession("tok", &users.User{})
	s.SetUser(&users.User{})
	s.Clear()
	if count != 3 {
		t.Fatalf("expected 3 notifications, got %d", count)
	}

	cancel()
	s.Clear()
	if count != 3 {
		t.Fatalf("expected no notification after cancel, got %d", count)
	}
}
