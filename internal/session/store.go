package session

import (
	"sync"

	"github.com/sfshop/storefront-client/internal/users"
)

// Store holds the current authentication state: the bearer token and the
// logged-in user. Its lifecycle is independent of the cart; clearing the
// session never touches cart state and vice versa.
type Store struct {
	mu      sync.Mutex
	token   string
	user    *users.User
	subs    map[int]func()
	nextSub int
}

func NewStore() *Store {
	return &Store{subs: make(map[int]func())}
}

// Token returns the current bearer token, empty when anonymous. The store
// satisfies the api client's TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (s *Store) CurrentUser() *users.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

// IsAuthenticated reports whether a user is logged in. Checkout and profile
// views gate on this.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// SetSession installs a token and user, replacing any previous session.
func (s *Store) SetSession(token string, user *users.User) {
	s.mu.Lock()
	s.token = token
	s.user = cloneUser(user)
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs)
}

// SetUser updates the user while keeping the installed token, used when the
// profile arrives after the token (login response without a user payload,
// or a resumed session).
func (s *Store) SetUser(user *users.User) {
	s.mu.Lock()
	s.user = cloneUser(user)
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs)
}

// Clear drops the token and user.
func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs)
}

// Subscribe registers a callback invoked after every session change.
func (s *Store) Subscribe(fn func()) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) snapshotSubs() []func() {
	out := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

func cloneUser(user *users.User) *users.User {
	if user == nil {
		return nil
	}
	copied := *user
	return &copied
}

func notify(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}
