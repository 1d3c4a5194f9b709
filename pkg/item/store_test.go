package item

import (
	"testing"

	"github.com/avecilla-games/memoria/pkg/snapshot"
)

func testCatalog() []Item {
	return []Item{
		{Title: "key", Description: "A small brass key", Category: CategoryThings},
		{Title: "photo", Description: "A faded photograph", Category: CategoryPeople},
		{Title: "kite", Description: "A paper kite", Category: CategoryThings},
	}
}

func TestStore_PickLifecycle(t *testing.T) {
	s := NewStore(testCatalog())

	if s.IsPickedOrDiscarded("key") {
		t.Error("Expected fresh item to be neither picked nor discarded")
	}

	s.Pick("key")
	if !s.IsPickedOrDiscarded("key") {
		t.Error("Expected key to be picked")
	}

	// Picking again is a no-op
	s.Pick("key")
	if got := len(s.PickedItems()); got != 1 {
		t.Errorf("Expected 1 picked item, got %d", got)
	}
}

func TestStore_DiscardIsAppendOnly(t *testing.T) {
	s := NewStore(testCatalog())

	// Discarding an item that was never picked is a no-op
	s.Discard("key")
	if s.IsPickedOrDiscarded("key") {
		t.Error("Expected discard of unpicked item to be a no-op")
	}

	s.Pick("key")
	s.Discard("key")
	if !s.IsPickedOrDiscarded("key") {
		t.Error("Expected discarded item to remain acquired")
	}
	if got := len(s.PickedItems()); got != 0 {
		t.Errorf("Expected no picked items after discard, got %d", got)
	}

	// Once discarded, an item cannot return to picked
	s.Pick("key")
	if got := len(s.PickedItems()); got != 0 {
		t.Errorf("Expected re-pick of discarded item to be a no-op, got %d picked", got)
	}
}

func TestStore_UnknownItemIsIgnored(t *testing.T) {
	s := NewStore(testCatalog())

	s.Pick("sword")
	if s.IsPickedOrDiscarded("sword") {
		t.Error("Expected unknown item to be ignored")
	}
}

func TestStore_ItemsOfCategoryPickOrder(t *testing.T) {
	s := NewStore(testCatalog())

	s.Pick("kite")
	s.Pick("photo")
	s.Pick("key")

	things := s.ItemsOfCategory(CategoryThings)
	if len(things) != 2 {
		t.Fatalf("Expected 2 things, got %d", len(things))
	}
	if things[0].Title != "kite" || things[1].Title != "key" {
		t.Errorf("Expected pick order [kite key], got [%s %s]", things[0].Title, things[1].Title)
	}
}

func TestStore_Notifications(t *testing.T) {
	s := NewStore(testCatalog())

	type call struct {
		title string
		verb  Verb
	}
	var calls []call
	s.Subscribe(func(it Item, verb Verb) {
		calls = append(calls, call{it.Title, verb})
	})

	s.Pick("key")
	s.Pick("key") // no-op, no notification
	s.Discard("key")

	if len(calls) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(calls))
	}
	if calls[0] != (call{"key", VerbPicked}) {
		t.Errorf("Unexpected first notification: %+v", calls[0])
	}
	if calls[1] != (call{"key", VerbDiscarded}) {
		t.Errorf("Unexpected second notification: %+v", calls[1])
	}
}

func TestStore_ExportImportRoundTrip(t *testing.T) {
	s := NewStore(testCatalog())
	s.Pick("key")
	s.Pick("photo")
	s.Discard("key")

	records := s.ExportAll()

	fresh := NewStore(testCatalog())
	fresh.ImportAll(records)

	if !fresh.IsPickedOrDiscarded("key") {
		t.Error("Expected key to survive round trip")
	}
	if !fresh.IsPickedOrDiscarded("photo") {
		t.Error("Expected photo to survive round trip")
	}

	// key is discarded: picking it again must remain a no-op after reload
	fresh.Pick("key")
	if got := len(fresh.PickedItems()); got != 1 {
		t.Errorf("Expected only photo picked after reload, got %d items", got)
	}
}

func TestStore_ImportSkipsUnknownItems(t *testing.T) {
	s := NewStore(testCatalog())
	s.ImportAll([]snapshot.ItemRecord{
		{Name: "key", State: snapshot.ItemPicked},
		{Name: "removed_from_catalog", State: snapshot.ItemPicked},
	})

	if !s.IsPickedOrDiscarded("key") {
		t.Error("Expected key to be imported")
	}
	if s.IsPickedOrDiscarded("removed_from_catalog") {
		t.Error("Expected unknown item record to be skipped")
	}
}
