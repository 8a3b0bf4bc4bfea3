package store

import (
	"context"
	"sync"

	"projlist/internal/model"
)

// MemStore is an in-process backend. Values are kept encoded, so it goes through
// the same codec as the persistent backends. The Err fields let tests inject
// failures.
type MemStore struct {
	mu   sync.Mutex
	data map[string][]byte

	Sets    int
	Deletes int

	GetErr    error
	SetErr    error
	DeleteErr error
}

func NewMemStore() *MemStore {
	return &MemStore{data: map[string][]byte{}}
}

func (s *MemStore) String() string { return "memory" }

func (s *MemStore) Get(_ context.Context, key string) ([]model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	b, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return decode(key, b)
}

func (s *MemStore) Set(_ context.Context, key string, projects []model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	b, err := encode(projects)
	if err != nil {
		return err
	}
	s.data[key] = b
	s.Sets++
	return nil
}

func (s *MemStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.data, key)
	s.Deletes++
	return nil
}

// Has reports whether key is present, regardless of its value.
func (s *MemStore) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok
}

// PutRaw stores b under key as is, bypassing the encoder.
func (s *MemStore) PutRaw(key string, b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), b...)
}

func (s *MemStore) Close() error { return nil }
