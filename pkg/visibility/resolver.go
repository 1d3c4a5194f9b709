// Package visibility derives show/hide decisions for showable objects from
// event states and the level's current age group. It is pure: no state, no
// side effects; the orchestrator applies the resulting transitions.
package visibility

import (
	"github.com/avecilla-games/memoria/pkg/level"
)

// EventGetter is the slice of the event store the resolver needs.
type EventGetter interface {
	Get(name string) bool
}

// ShouldShow reports whether a showable object should be visible: all show
// events set (or none declared), all hide events unset (or none declared),
// and the current age group among the object's available groups.
func ShouldShow(s level.Showable, events EventGetter, current level.AgeGroup) bool {
	for _, name := range s.ShowEvents {
		if !events.Get(name) {
			return false
		}
	}
	for _, name := range s.HideEvents {
		if events.Get(name) {
			return false
		}
	}
	for _, g := range s.AgeGroups {
		if g == current {
			return true
		}
	}
	return false
}

// Transition is the desired presentation state for one object. Animate marks
// a genuine reveal or hide; transitions with Animate false only assert the
// desired state (objects already active before this session must not replay
// their reveal after a reload).
type Transition struct {
	ID      int
	Show    bool
	Animate bool
}

// Diff resolves every showable against the current facts and returns the
// transitions to apply. wasActive holds the ids active before this pass,
// including ids restored from a snapshot.
func Diff(showables []level.Showable, events EventGetter, current level.AgeGroup, wasActive map[int]bool) []Transition {
	transitions := make([]Transition, 0, len(showables))
	for _, s := range showables {
		show := ShouldShow(s, events, current)
		active := wasActive[s.ID]
		transitions = append(transitions, Transition{
			ID:      s.ID,
			Show:    show,
			Animate: show != active,
		})
	}
	return transitions
}

// ActiveIDs returns the ids left visible by a set of transitions.
func ActiveIDs(transitions []Transition) []int {
	var ids []int
	for _, tr := range transitions {
		if tr.Show {
			ids = append(ids, tr.ID)
		}
	}
	return ids
}
