package datamask

import (
	"reflect"
	"sync"

	"github.com/rpattn/datamask/internal/domain"
)

// Snapshot is an immutable view of a store at one revision
type Snapshot struct {
	Revision int64                     `json:"revision"`
	DataMask domain.DataMaskState      `json:"dataMask"`
	Filters  []domain.FilterDefinition `json:"-"`
}

// Store serializes dispatches against one data mask state.
// Each dispatch replaces the state; a state handed out by Snapshot is never modified.
type Store struct {
	mu       sync.Mutex
	state    domain.DataMaskState
	filters  []domain.FilterDefinition
	revision int64
}

// NewStore creates a store holding an empty state
func NewStore() *Store {
	return &Store{state: domain.DataMaskState{}}
}

// Dispatch applies action and returns the resulting snapshot.
// The revision advances only when the reducer returns a new state.
func (s *Store) Dispatch(action Action) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Reduce(s.state, action)
	switch a := deref(action).(type) {
	case HydrateAction:
		s.filters = a.Data.DashboardInfo.Metadata.NativeFilterConfiguration
	case ClearAction:
		s.filters = nil
	}
	if !sameState(s.state, next) {
		s.state = next
		s.revision++
	}

	return s.snapshotLocked()
}

// Snapshot returns the current state and revision
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// DisplayNames derives names from the filters of the last hydration and the current values
func (s *Store) DisplayNames() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DisplayNames(s.filters, s.state)
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Revision: s.revision,
		DataMask: s.state,
		Filters:  s.filters,
	}
}

// sameState reports whether a and b are the same mapping, not merely equal ones
func sameState(a, b domain.DataMaskState) bool {
	return reflect.ValueOf(a).UnsafePointer() == reflect.ValueOf(b).UnsafePointer()
}
