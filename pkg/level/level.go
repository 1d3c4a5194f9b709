package level

import (
	"github.com/avecilla-games/memoria/pkg/action"
)

// AgeGroup selects which content is current for a level. Levels of mixed
// content use AgeMixed; purely functional levels (menus) use AgeNone.
type AgeGroup string

const (
	AgeChildhood   AgeGroup = "childhood"
	AgeAdolescence AgeGroup = "adolescence"
	AgeAdulthood   AgeGroup = "adulthood"
	AgeOldAge      AgeGroup = "old_age"
	AgeNone        AgeGroup = "none"
	AgeMixed       AgeGroup = "mixed"
)

// Valid reports whether the age group is one of the known values.
func (g AgeGroup) Valid() bool {
	switch g {
	case AgeChildhood, AgeAdolescence, AgeAdulthood, AgeOldAge, AgeNone, AgeMixed:
		return true
	}
	return false
}

// Showable is a presentation-layer object whose visibility is derived from
// event states and the level's current age group. The ID is an opaque handle
// used for fade requests and snapshot round-tripping.
type Showable struct {
	ID         int        `json:"id" yaml:"id"`
	ShowEvents []string   `json:"show_events,omitempty" yaml:"show_events,omitempty"`
	HideEvents []string   `json:"hide_events,omitempty" yaml:"hide_events,omitempty"`
	AgeGroups  []AgeGroup `json:"age_groups,omitempty" yaml:"age_groups,omitempty"`
}

// TriggeredSequence binds an action sequence to a level activation gate.
// The sequence is eligible when the trigger event (if any) is set and the
// completion event (if any) is not.
type TriggeredSequence struct {
	TriggerEvent    string
	CompletionEvent string
	Sequence        *action.Sequence
}

// Level is a named unit of content. Everything here is authored offline and
// read-only at runtime; mutable state lives in LevelState.
type Level struct {
	Name            string
	Scene           string // opaque scene/asset reference for the presenter
	InitialAgeGroup AgeGroup
	PauseAllowed    bool
	Sequences       []TriggeredSequence
	Showables       []Showable
}
