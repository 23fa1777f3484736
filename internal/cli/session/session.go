// Package session holds the currently authenticated user and their bearer token.
//
// A Store starts anonymous. Login moves it to authenticated, Update replaces the
// user record, Logout returns it to anonymous. Only the token is persisted
// (through an auth.TokenStore); the user record lives in memory and is
// re-derived from API responses.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hrdesk-dev/hrdesk/internal/cli/auth"
	"github.com/hrdesk-dev/hrdesk/internal/cli/menu"
)

// ErrStale is returned by UpdateIf when the session changed since it was read
var ErrStale = errors.New("session changed while the request was in flight")

// User is the authenticated user as returned by the API
type User struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
	Position        string `json:"position,omitempty"`
}

// MenuRole returns the parsed role, defaulting to the user role
func (u *User) MenuRole() menu.Role {
	if u == nil {
		return menu.RoleUser
	}
	return menu.ParseRole(u.Role)
}

// Initial returns the upper-cased first character of the name, or "?"
func (u *User) Initial() string {
	if u == nil {
		return "?"
	}
	name := strings.TrimSpace(u.Name)
	if name == "" {
		return "?"
	}
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// Store is the process-wide session. It is safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	server     string
	tokens     auth.TokenStore
	token      string
	user       *User
	generation uint64
}

// New creates an anonymous session for a server.
// tokens may be nil, in which case nothing is persisted.
func New(server string, tokens auth.TokenStore) *Store {
	return &Store{
		server: server,
		tokens: tokens,
	}
}

// Restore loads a persisted token, if any. The user record stays empty until
// the caller fetches the profile.
func (s *Store) Restore() error {
	if s.tokens == nil {
		return nil
	}

	token, err := s.tokens.LoadToken(s.server)
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.generation++
	return nil
}

// Server returns the server this session belongs to
func (s *Store) Server() string {
	return s.server
}

// Token returns the bearer token, or "" when anonymous
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Role returns the current user's role, defaulting to the user role
func (s *Store) Role() menu.Role {
	return s.User().MenuRole()
}

// Authenticated reports whether a token is held
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Generation identifies the current session state. It changes on every
// Login, Update and Logout.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Login persists the token and sets the user
func (s *Store) Login(token string, user *User) error {
	if token == "" {
		return errors.New("empty token")
	}

	if s.tokens != nil {
		if err := s.tokens.SaveToken(s.server, token); err != nil {
			return fmt.Errorf("failed to persist token: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = cloneUser(user)
	s.generation++
	return nil
}

// Update replaces the user record without touching the token
func (s *Store) Update(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = cloneUser(user)
	s.generation++
}

// UpdateIf replaces the user record only if the session is still the one
// observed at generation gen and is still authenticated.
func (s *Store) UpdateIf(gen uint64, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen || s.token == "" {
		return ErrStale
	}
	s.user = cloneUser(user)
	s.generation++
	return nil
}

// Logout clears the persisted token and the in-memory session.
// The in-memory state is cleared even if the token store fails.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.generation++
	s.mu.Unlock()

	if s.tokens != nil {
		if err := s.tokens.DeleteToken(s.server); err != nil {
			return fmt.Errorf("failed to clear token: %w", err)
		}
	}
	return nil
}

func cloneUser(u *User) *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
