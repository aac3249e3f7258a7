package auth

import (
	"sync"
	"time"

	"github.com/slalom/capabilities-management/internal"
)

// UserStore holds user records in process memory for the life of the process.
// It is seeded at startup and guarded with an RWMutex because the HTTP
// runtime serves requests concurrently.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*User)}
}

// Add inserts a user record keyed by email.
func (s *UserStore) Add(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Email] = user
}

// Get returns a copy of the user record so callers cannot mutate store state.
func (s *UserStore) Get(email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email]
	if !ok {
		return nil, internal.ErrInvalidCredentials
	}
	copied := *user
	return &copied, nil
}

// PasswordHash returns the stored hash for the email, if present.
func (s *UserStore) PasswordHash(email string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email]
	if !ok {
		return "", false
	}
	return user.PasswordHash, true
}

// TouchLastLogin records a successful authentication time.
func (s *UserStore) TouchLastLogin(email string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[email]; ok {
		user.LastLogin = &at
	}
}

// Len reports the number of stored users.
func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
