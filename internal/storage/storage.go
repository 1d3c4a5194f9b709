package storage

import (
	"context"

	"github.com/avecilla-games/memoria/pkg/snapshot"
)

// Storage is the persistence façade for game snapshots. The whole snapshot
// is written on every save; there is no append log.
type Storage interface {
	// Ping tests the backend connection.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error

	// SaveSnapshot overwrites the stored snapshot.
	SaveSnapshot(ctx context.Context, snap *snapshot.GameSnapshot) error

	// LoadSnapshot retrieves the stored snapshot. An absent save is a
	// normal condition, returned as (nil, nil).
	LoadSnapshot(ctx context.Context) (*snapshot.GameSnapshot, error)

	// DeleteSnapshot removes the stored snapshot. Deleting an absent
	// snapshot is not an error.
	DeleteSnapshot(ctx context.Context) error

	// HasSnapshot reports whether a snapshot exists.
	HasSnapshot(ctx context.Context) (bool, error)
}
