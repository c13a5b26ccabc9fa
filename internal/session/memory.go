package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store using in-process storage.
// This is NOT suitable for multi-node deployments; use the redis store
// there.
type MemoryStore struct {
	mu      sync.RWMutex
	items   map[string]*memoryItem
	stopCh  chan struct{}
	stopped bool
}

// memoryItem holds one stored session and its expiry.
type memoryItem struct {
	sess      Context
	expiresAt time.Time
}

// isExpired checks if the item has expired.
func (i *memoryItem) isExpired() bool {
	return time.Now().After(i.expiresAt)
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		items:  make(map[string]*memoryItem),
		stopCh: make(chan struct{}),
	}

	// Start cleanup goroutine.
	go s.cleanupLoop()

	return s
}

// cleanupLoop periodically removes expired sessions.
func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup removes all expired sessions.
func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, item := range s.items {
		if item.isExpired() {
			delete(s.items, token)
		}
	}
}

// Get retrieves the context for a token.
func (s *MemoryStore) Get(_ context.Context, token string) (*Context, error) {
	s.mu.RLock()
	item, ok := s.items[token]
	s.mu.RUnlock()

	if !ok || item.isExpired() {
		return nil, ErrNotFound
	}

	// Return a copy so callers never mutate stored state directly.
	sess := item.sess
	return &sess, nil
}

// Save persists the context and resets its time-to-live.
func (s *MemoryStore) Save(_ context.Context, sess *Context, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[sess.Token] = &memoryItem{
		sess:      *sess,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes the context. Missing tokens are a no-op.
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, token)
	return nil
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.stopped {
		close(s.stopCh)
		s.stopped = true
	}
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
