package auth

import (
	"context"
	"sync"
	"time"
)

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]VerifiedEmail
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]VerifiedEmail),
	}
}

func (s *MemoryStore) Get(_ context.Context, email string) (*VerifiedEmail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (s *MemoryStore) SetWithExpiry(_ context.Context, entry VerifiedEmail, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[entry.Email] = entry
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, email)
	return nil
}
