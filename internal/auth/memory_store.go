package auth

import (
	"context"
	"time"

	"github.com/Checker-Finance/alwaseet-adapter/pkg/cache"
)

// MemoryStore is a process-local TokenStore. Tokens live until restart unless a TTL is set.
type MemoryStore struct {
	local *cache.Cache[string]
}

// NewMemoryStore creates an empty in-memory token store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{local: cache.New[string](ttl)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	tok, ok := s.local.Get(key)
	return tok, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, token string) error {
	s.local.Put(key, token)
	return nil
}

// Len reports how many tokens are cached.
func (s *MemoryStore) Len() int { return s.local.Len() }

func (s *MemoryStore) HealthCheck(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

// StartCleaner evicts expired tokens every interval until stop is closed.
func (s *MemoryStore) StartCleaner(interval time.Duration, stop <-chan struct{}) {
	s.local.StartCleaner(interval, stop)
}
