package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps users and usage counters in process memory. Default
// backend when no database path is configured; also handy in tests.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*User
	usage map[string]*Usage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*User),
		usage: make(map[string]*Usage),
	}
}

func (s *MemoryStore) FindUser(_ context.Context, name string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[name]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) CreateUser(_ context.Context, name, passwordHash, role, plan string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[name]; ok {
		return ErrUserExists
	}
	s.users[name] = &User{
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		Plan:         plan,
		CreatedAt:    time.Now().UTC(),
	}
	return nil
}

func (s *MemoryStore) ListUsers(_ context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) AddUsage(_ context.Context, name, counter string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.usage[name]
	if !ok {
		u = &Usage{}
		s.usage[name] = u
	}
	switch counter {
	case UsageUploads:
		u.Uploads++
	case UsageAnalyses:
		u.Analyses++
	case UsageReports:
		u.Reports++
	}
	return nil
}

func (s *MemoryStore) GetUsage(_ context.Context, name string) (Usage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.usage[name]; ok {
		return *u, nil
	}
	return Usage{}, nil
}

func (s *MemoryStore) Close() error { return nil }
