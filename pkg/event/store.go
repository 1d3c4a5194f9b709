package event

import (
	"sort"
	"sync"

	"github.com/avecilla-games/memoria/pkg/snapshot"
)

// Listener is notified after an event state changes. Set notifies even when
// the stored value is unchanged; gating checks rely on the re-fire.
type Listener func(name string, state bool)

// Store holds the current boolean value of every story event. Events are
// keyed by name; an event never written reads as false. Historical values
// are not retained.
type Store struct {
	mu        sync.RWMutex
	states    map[string]bool
	listeners []Listener
}

func NewStore() *Store {
	return &Store{
		states: make(map[string]bool),
	}
}

// Subscribe registers a listener for event changes. Listeners are invoked
// synchronously, outside the store lock, in registration order.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Get returns the current state of an event. Unknown events are false;
// this is a normal case, not an error.
func (s *Store) Get(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[name]
}

// Set records the state of an event, overwriting any previous value, and
// notifies listeners even if the value did not change.
func (s *Store) Set(name string, state bool) {
	s.mu.Lock()
	s.states[name] = state
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(name, state)
	}
}

// ExportAll returns the full event map as snapshot records, ordered by
// event name for stable output.
func (s *Store) ExportAll() []snapshot.EventRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]snapshot.EventRecord, 0, len(s.states))
	for name, state := range s.states {
		records = append(records, snapshot.EventRecord{Name: name, State: state})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return records
}

// ImportAll replaces the whole event map with the given records. The import
// is silent: no listener is notified. Importing the same records twice
// yields the same state.
func (s *Store) ImportAll(records []snapshot.EventRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states = make(map[string]bool, len(records))
	for _, r := range records {
		s.states[r.Name] = r.State
	}
}

// Reset clears all event states. Like ImportAll, it is silent.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = make(map[string]bool)
}
