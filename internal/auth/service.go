// Package auth verifies credentials against the injected user store and
// hands out bearer session tokens.
package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/mtse/marketing-engine/internal/store"
)

var ErrBadCredentials = errors.New("wrong username or password")

type Service struct {
	users store.UserStore

	mu       sync.RWMutex
	sessions map[string]string // token -> username
}

func NewService(users store.UserStore) *Service {
	return &Service{users: users, sessions: make(map[string]string)}
}

// Register creates a user with the given role and plan. A duplicate name
// surfaces as store.ErrUserExists.
func (s *Service) Register(ctx context.Context, name, password, role, plan string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	return s.users.CreateUser(ctx, name, hash, role, plan)
}

// Login verifies the credentials and issues a session token. Unknown user
// and wrong password collapse to the same error.
func (s *Service) Login(ctx context.Context, name, password string) (string, error) {
	u, err := s.users.FindUser(ctx, name)
	if err != nil {
		return "", ErrBadCredentials
	}
	if !CheckPassword(u.PasswordHash, password) {
		return "", ErrBadCredentials
	}
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = u.Name
	s.mu.Unlock()
	return token, nil
}

// Verify resolves a session token to its user.
func (s *Service) Verify(ctx context.Context, token string) (*store.User, error) {
	s.mu.RLock()
	name, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrBadCredentials
	}
	return s.users.FindUser(ctx, name)
}

// Logout revokes a session token. Revoking an unknown token is a no-op.
func (s *Service) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}
