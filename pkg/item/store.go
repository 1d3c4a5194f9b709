package item

import (
	"sync"

	"github.com/avecilla-games/memoria/pkg/snapshot"
)

// Verb describes an item lifecycle transition for listeners.
type Verb string

const (
	VerbPicked    Verb = "picked"
	VerbDiscarded Verb = "discarded"
)

// Listener is notified after an item is picked or discarded.
type Listener func(it Item, verb Verb)

// Store holds the lifecycle state of the player's items. An item is in at
// most one of the picked or discarded sets, and the only transition out of
// picked is discard; a discarded item never returns.
type Store struct {
	mu        sync.RWMutex
	catalog   map[string]Item
	picked    []string // pick order
	discarded []string
	listeners []Listener
}

// NewStore creates a store over the given item catalog. Titles not in the
// catalog are ignored by all operations.
func NewStore(catalog []Item) *Store {
	byTitle := make(map[string]Item, len(catalog))
	for _, it := range catalog {
		byTitle[it.Title] = it
	}
	return &Store{catalog: byTitle}
}

// Subscribe registers a listener for pick/discard transitions. Listeners
// are invoked synchronously, outside the store lock.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Pick moves an item into the picked set. Picking an unknown, already
// picked or discarded item is a no-op.
func (s *Store) Pick(title string) {
	s.mu.Lock()
	it, known := s.catalog[title]
	if !known || s.contains(s.picked, title) || s.contains(s.discarded, title) {
		s.mu.Unlock()
		return
	}
	s.picked = append(s.picked, title)
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(it, VerbPicked)
	}
}

// Discard moves a currently picked item into the discarded set. Discarding
// an item that is not picked is a no-op.
func (s *Store) Discard(title string) {
	s.mu.Lock()
	it, known := s.catalog[title]
	if !known || !s.contains(s.picked, title) {
		s.mu.Unlock()
		return
	}
	for i, t := range s.picked {
		if t == title {
			s.picked = append(s.picked[:i], s.picked[i+1:]...)
			break
		}
	}
	s.discarded = append(s.discarded, title)
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(it, VerbDiscarded)
	}
}

// IsPickedOrDiscarded reports whether the item has ever been acquired.
func (s *Store) IsPickedOrDiscarded(title string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contains(s.picked, title) || s.contains(s.discarded, title)
}

// ItemsOfCategory returns the picked items of a category, in pick order.
func (s *Store) ItemsOfCategory(cat Category) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []Item
	for _, title := range s.picked {
		if it := s.catalog[title]; it.Category == cat {
			items = append(items, it)
		}
	}
	return items
}

// PickedItems returns all picked items in pick order.
func (s *Store) PickedItems() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]Item, 0, len(s.picked))
	for _, title := range s.picked {
		items = append(items, s.catalog[title])
	}
	return items
}

// ExportAll returns the picked and discarded sets as snapshot records,
// picked first, both in transition order.
func (s *Store) ExportAll() []snapshot.ItemRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]snapshot.ItemRecord, 0, len(s.picked)+len(s.discarded))
	for _, title := range s.picked {
		records = append(records, snapshot.ItemRecord{Name: title, State: snapshot.ItemPicked})
	}
	for _, title := range s.discarded {
		records = append(records, snapshot.ItemRecord{Name: title, State: snapshot.ItemDiscarded})
	}
	return records
}

// ImportAll replaces both sets with the given records, silently. Records
// naming items missing from the catalog are skipped.
func (s *Store) ImportAll(records []snapshot.ItemRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.picked = nil
	s.discarded = nil
	for _, r := range records {
		if _, known := s.catalog[r.Name]; !known {
			continue
		}
		switch r.State {
		case snapshot.ItemPicked:
			s.picked = append(s.picked, r.Name)
		case snapshot.ItemDiscarded:
			s.discarded = append(s.discarded, r.Name)
		}
	}
}

// Reset clears both sets, silently.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.picked = nil
	s.discarded = nil
}

func (s *Store) contains(titles []string, title string) bool {
	for _, t := range titles {
		if t == title {
			return true
		}
	}
	return false
}
