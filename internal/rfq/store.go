package rfq

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// SessionStore keeps one cart per visitor session for the session's lifetime
type SessionStore interface {
	// Get returns the session's cart, or a new empty cart if the session has none
	Get(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, cart *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type memoryEntry struct {
	cart     *Cart
	lastSeen time.Time
}

// MemoryStore holds live carts in process memory and forgets sessions idle for longer than ttl
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[sessionID]
	if !ok || s.expired(entry, now) {
		entry = &memoryEntry{cart: NewCart()}
		s.entries[sessionID] = entry
	}
	entry.lastSeen = now

	return entry.cart, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, cart *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sessionID] = &memoryEntry{cart: cart, lastSeen: s.now()}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, sessionID)
	return nil
}

// Sweep drops expired sessions and returns how many were removed
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.entries {
		if s.expired(entry, now) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions until ctx is cancelled
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				log.Debugf("🧹 Evicted %d expired RFQ sessions, %d active", removed, s.Len())
			}
		}
	}
}

// Len returns the number of tracked sessions, expired ones included until the next sweep
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) expired(entry *memoryEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(entry.lastSeen) > s.ttl
}
