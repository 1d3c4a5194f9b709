package level

import (
	"testing"
)

func TestStore_GetOrInitDefaults(t *testing.T) {
	s := NewStore()
	lvl := &Level{Name: "park", InitialAgeGroup: AgeChildhood}

	st := s.GetOrInit(lvl)
	if st.CurrentAgeGroup != AgeChildhood {
		t.Errorf("Expected initial age group %q, got %q", AgeChildhood, st.CurrentAgeGroup)
	}
	if len(st.ActiveObjectIDs) != 0 {
		t.Errorf("Expected no active objects on init, got %v", st.ActiveObjectIDs)
	}
}

func TestStore_StatePersistsAcrossActivations(t *testing.T) {
	s := NewStore()
	lvl := &Level{Name: "park", InitialAgeGroup: AgeChildhood}

	s.GetOrInit(lvl)
	s.ChangeAgeGroup("park", AgeAdulthood)

	st := s.GetOrInit(lvl)
	if st.CurrentAgeGroup != AgeAdulthood {
		t.Errorf("Expected age group to persist, got %q", st.CurrentAgeGroup)
	}
}

func TestStore_ChangeAgeGroupNotifies(t *testing.T) {
	s := NewStore()
	lvl := &Level{Name: "park", InitialAgeGroup: AgeChildhood}
	s.GetOrInit(lvl)

	var gotName string
	var gotGroup AgeGroup
	s.Subscribe(func(name string, group AgeGroup) {
		gotName = name
		gotGroup = group
	})

	s.ChangeAgeGroup("park", AgeOldAge)

	if gotName != "park" || gotGroup != AgeOldAge {
		t.Errorf("Expected notification (park, old_age), got (%s, %s)", gotName, gotGroup)
	}
}

func TestStore_ReturnedStateIsACopy(t *testing.T) {
	s := NewStore()
	lvl := &Level{Name: "park", InitialAgeGroup: AgeChildhood}
	s.GetOrInit(lvl)
	s.CaptureActiveObjects("park", []int{1, 2})

	st := s.GetOrInit(lvl)
	st.ActiveObjectIDs[0] = 99
	st.CurrentAgeGroup = AgeMixed

	again := s.GetOrInit(lvl)
	if again.ActiveObjectIDs[0] != 1 {
		t.Error("Expected store state to be isolated from caller mutation")
	}
	if again.CurrentAgeGroup != AgeChildhood {
		t.Error("Expected age group unchanged by caller mutation")
	}
}

func TestStore_CaptureAndRestoreActiveObjects(t *testing.T) {
	s := NewStore()
	lvl := &Level{Name: "park", InitialAgeGroup: AgeChildhood}
	s.GetOrInit(lvl)

	s.CaptureActiveObjects("park", []int{10, 20, 30})
	got := s.ActiveObjects("park")
	if len(got) != 3 || got[0] != 10 || got[2] != 30 {
		t.Errorf("Unexpected active objects: %v", got)
	}
}

func TestStore_ChangeBeforeActivationKeepsCatalogInitial(t *testing.T) {
	s := NewStore()
	lvl := &Level{Name: "park", InitialAgeGroup: AgeChildhood}

	// The level is aged up before it was ever activated.
	s.ChangeAgeGroup("park", AgeAdulthood)

	records := s.ExportAll()
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].InitialAgeGroup != "" {
		t.Errorf("Expected no initial age group before activation, got %q", records[0].InitialAgeGroup)
	}

	// First activation records the catalog's initial, not the changed group.
	st := s.GetOrInit(lvl)
	if st.CurrentAgeGroup != AgeAdulthood {
		t.Errorf("Expected changed group to persist, got %q", st.CurrentAgeGroup)
	}
	records = s.ExportAll()
	if records[0].InitialAgeGroup != string(AgeChildhood) {
		t.Errorf("Expected initial age group %q, got %q", AgeChildhood, records[0].InitialAgeGroup)
	}
	if records[0].CurrentAgeGroup != string(AgeAdulthood) {
		t.Errorf("Expected current age group %q, got %q", AgeAdulthood, records[0].CurrentAgeGroup)
	}
}

func TestStore_ExportImportRoundTrip(t *testing.T) {
	s := NewStore()
	park := &Level{Name: "park", InitialAgeGroup: AgeChildhood}
	home := &Level{Name: "home", InitialAgeGroup: AgeAdulthood}
	s.GetOrInit(park)
	s.GetOrInit(home)
	s.ChangeAgeGroup("park", AgeAdolescence)
	s.CaptureActiveObjects("home", []int{7})

	records := s.ExportAll()
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	// Ordered by name
	if records[0].Name != "home" || records[1].Name != "park" {
		t.Errorf("Expected name order [home park], got [%s %s]", records[0].Name, records[1].Name)
	}

	fresh := NewStore()
	fresh.ImportAll(records)

	st := fresh.GetOrInit(park)
	if st.CurrentAgeGroup != AgeAdolescence {
		t.Errorf("Expected park age group to survive round trip, got %q", st.CurrentAgeGroup)
	}
	if got := fresh.ActiveObjects("home"); len(got) != 1 || got[0] != 7 {
		t.Errorf("Expected home active objects to survive round trip, got %v", got)
	}
}
