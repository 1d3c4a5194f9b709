package level

import (
	"sort"
	"sync"

	"github.com/avecilla-games/memoria/pkg/snapshot"
)

// State is the mutable per-level record. Values returned by the store are
// copies; external readers never observe a partial update.
type State struct {
	CurrentAgeGroup AgeGroup
	ActiveObjectIDs []int
}

// Listener is notified when a level's age group changes, so the orchestrator
// can request a visibility refresh without coupling the store to it.
type Listener func(levelName string, group AgeGroup)

// Store holds the mutable state of every level touched this session. State
// is created on first access with the level's initial age group and persists
// across activations.
type Store struct {
	mu        sync.RWMutex
	states    map[string]*State
	initials  map[string]AgeGroup
	listeners []Listener
}

func NewStore() *Store {
	return &Store{
		states:   make(map[string]*State),
		initials: make(map[string]AgeGroup),
	}
}

// Subscribe registers a listener for age-group changes.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// GetOrInit returns the state for a level, creating it with the level's
// defaults on first access. The returned value is a copy. The catalog's
// initial age group is recorded here, never from a change.
func (s *Store) GetOrInit(lvl *Level) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.getOrInitLocked(lvl.Name, lvl.InitialAgeGroup)
	if _, ok := s.initials[lvl.Name]; !ok {
		s.initials[lvl.Name] = lvl.InitialAgeGroup
	}
	return copyState(st)
}

// ChangeAgeGroup sets the current age group of a level and notifies
// listeners. State is created if the level was never activated; its initial
// age group stays unknown until GetOrInit sees the catalog entry.
func (s *Store) ChangeAgeGroup(levelName string, group AgeGroup) {
	s.mu.Lock()
	st := s.getOrInitLocked(levelName, group)
	st.CurrentAgeGroup = group
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(levelName, group)
	}
}

// CaptureActiveObjects records which showable objects are active for a
// level, for snapshot round-tripping.
func (s *Store) CaptureActiveObjects(levelName string, ids []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[levelName]
	if !ok {
		return
	}
	st.ActiveObjectIDs = append([]int(nil), ids...)
}

// ActiveObjects returns the captured active object ids for a level.
func (s *Store) ActiveObjects(levelName string) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[levelName]
	if !ok {
		return nil
	}
	return append([]int(nil), st.ActiveObjectIDs...)
}

// ExportAll returns every level's state as snapshot records, ordered by
// level name.
func (s *Store) ExportAll() []snapshot.LevelRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]snapshot.LevelRecord, 0, len(s.states))
	for name, st := range s.states {
		records = append(records, snapshot.LevelRecord{
			Name:            name,
			InitialAgeGroup: string(s.initials[name]),
			CurrentAgeGroup: string(st.CurrentAgeGroup),
			ActiveObjectIDs: append([]int(nil), st.ActiveObjectIDs...),
		})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return records
}

// ImportAll replaces all level state with the given records, silently.
func (s *Store) ImportAll(records []snapshot.LevelRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states = make(map[string]*State, len(records))
	s.initials = make(map[string]AgeGroup, len(records))
	for _, r := range records {
		if r.InitialAgeGroup != "" {
			s.initials[r.Name] = AgeGroup(r.InitialAgeGroup)
		}
		s.states[r.Name] = &State{
			CurrentAgeGroup: AgeGroup(r.CurrentAgeGroup),
			ActiveObjectIDs: append([]int(nil), r.ActiveObjectIDs...),
		}
	}
}

// Reset clears all level state, silently.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = make(map[string]*State)
	s.initials = make(map[string]AgeGroup)
}

func (s *Store) getOrInitLocked(name string, initial AgeGroup) *State {
	if st, ok := s.states[name]; ok {
		return st
	}
	st := &State{CurrentAgeGroup: initial}
	s.states[name] = st
	return st
}

func copyState(st *State) State {
	return State{
		CurrentAgeGroup: st.CurrentAgeGroup,
		ActiveObjectIDs: append([]int(nil), st.ActiveObjectIDs...),
	}
}
