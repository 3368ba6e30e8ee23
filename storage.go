package authclient

import (
	"context"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// ErrKeyNotFound is returned by Storage implementations for missing keys.
var ErrKeyNotFound = goerrors.New("storage key not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound)

// Storage is the durable key-value seam the session persists through.
// Implementations must be safe for concurrent use; Delete on a missing key
// is not an error.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryStorage is an in-process Storage, used as the default backend and
// as the test fake.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: map[string]string{}}
}

func (s *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return val, nil
}

func (s *MemoryStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Len reports how many keys are currently stored.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
