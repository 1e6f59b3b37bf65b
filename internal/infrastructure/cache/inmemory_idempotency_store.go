package cache

import (
	"context"
	"sync"
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
)

type entry struct {
	resp      *CachedResponse
	expiresAt time.Time
}

// InMemoryIdempotencyStore keeps responses in process memory. It is only
// safe for single-instance deployments and tests.
type InMemoryIdempotencyStore struct {
	mu       sync.Mutex
	entries  map[string]entry
	inFlight map[string]time.Time
	now      func() time.Time
}

// NewInMemoryIdempotencyStore creates an empty store
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	return &InMemoryIdempotencyStore{
		entries:  make(map[string]entry),
		inFlight: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Get implements IdempotencyStore
func (s *InMemoryIdempotencyStore) Get(_ context.Context, key string) (*CachedResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return nil, nil
	}
	return e.resp, nil
}

// Acquire implements IdempotencyStore
func (s *InMemoryIdempotencyStore) Acquire(_ context.Context, key string, ttl time.Duration) (Release, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if until, held := s.inFlight[key]; held && s.now().Before(until) {
		return nil, shared.ErrRequestInProgress
	}
	s.inFlight[key] = s.now().Add(ttl)

	return func(context.Context) error {
		s.mu.Lock()
		delete(s.inFlight, key)
		s.mu.Unlock()
		return nil
	}, nil
}

// Put implements IdempotencyStore
func (s *InMemoryIdempotencyStore) Put(_ context.Context, key string, resp *CachedResponse, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{resp: resp, expiresAt: s.now().Add(ttl)}
	return nil
}

// Close drops every entry
func (s *InMemoryIdempotencyStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
	s.inFlight = make(map[string]time.Time)
	return nil
}

var _ IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
