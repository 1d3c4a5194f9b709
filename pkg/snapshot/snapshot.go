package snapshot

import (
	"time"

	"github.com/google/uuid"
)

// Version is the current save schema version. Snapshots written by this
// build carry it; loads of unknown versions are treated as absent saves.
const Version = 1

// ItemState is the lifecycle state of an inventory item.
type ItemState string

const (
	ItemPicked    ItemState = "picked"
	ItemDiscarded ItemState = "discarded"
)

// EventRecord is the persisted state of a single story event.
type EventRecord struct {
	Name  string `json:"event_name"`
	State bool   `json:"event_state"`
}

// ItemRecord is the persisted state of a single inventory item.
type ItemRecord struct {
	Name  string    `json:"item_name"`
	State ItemState `json:"item_state"`
}

// LevelRecord is the persisted mutable state of a level.
type LevelRecord struct {
	Name            string `json:"level_name"`
	InitialAgeGroup string `json:"initial_age_group"`
	CurrentAgeGroup string `json:"current_age_group"`
	ActiveObjectIDs []int  `json:"active_object_ids,omitempty"`
}

// GameSnapshot is the complete persisted state of a play session: the
// current level plus the contents of the event, level and item stores.
// It is the only artifact the persistence layer reads or writes.
type GameSnapshot struct {
	Version      int           `json:"version"`
	SessionID    uuid.UUID     `json:"session_id"`
	CurrentLevel string        `json:"current_level"`
	Events       []EventRecord `json:"events,omitempty"`
	Levels       []LevelRecord `json:"levels,omitempty"`
	Items        []ItemRecord  `json:"items,omitempty"`
	SavedAt      time.Time     `json:"saved_at"`
}

// New creates an empty snapshot for a fresh session.
func New() *GameSnapshot {
	return &GameSnapshot{
		Version:   Version,
		SessionID: uuid.New(),
	}
}
