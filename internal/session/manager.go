package session

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/rpattn/datamask/internal/datamask"
)

// ErrSessionNotFound is returned for unknown or expired session ids
var ErrSessionNotFound = errors.New("session not found")

const (
	DefaultCapacity = 1024
	DefaultTTL      = 30 * time.Minute
)

// Manager keeps one data mask store per dashboard session in a bounded, expiring cache
type Manager struct {
	mu     sync.Mutex
	stores *expirable.LRU[uuid.UUID, *datamask.Store]
}

// NewManager creates a manager holding at most capacity sessions.
// A session expires once it has not been accessed for ttl.
func NewManager(capacity int, ttl time.Duration) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	onEvict := func(id uuid.UUID, _ *datamask.Store) {
		log.Printf("[SESSION] evicted %s", id)
	}
	return &Manager{stores: expirable.NewLRU[uuid.UUID, *datamask.Store](capacity, onEvict, ttl)}
}

// Create starts a new session with an empty data mask
func (m *Manager) Create() (uuid.UUID, *datamask.Store) {
	id := uuid.New()
	store := datamask.NewStore()
	m.stores.Add(id, store)
	return id, store
}

// Get returns the store of a live session and restarts its ttl
func (m *Manager) Get(id uuid.UUID) (*datamask.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, ok := m.stores.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	// Add on an existing key resets its expiry
	m.stores.Add(id, store)
	return store, nil
}

// Delete ends a session
func (m *Manager) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.stores.Remove(id) {
		return ErrSessionNotFound
	}
	return nil
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	return m.stores.Len()
}
