package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/avecilla-games/memoria/pkg/snapshot"
)

const saveFilename = "savegame.json"

// FileStorage persists the snapshot as a single JSON document under the
// user's config directory (or an explicit directory). This is the default
// backend for local play.
type FileStorage struct {
	path   string
	logger *slog.Logger
}

// Ensure FileStorage implements Storage interface
var _ Storage = (*FileStorage)(nil)

// NewFileStorage creates a file storage. An empty dir resolves to
// <user config dir>/memoria.
func NewFileStorage(dir string, logger *slog.Logger) (*FileStorage, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user config dir: %w", err)
		}
		dir = filepath.Join(base, "memoria")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save dir: %w", err)
	}

	return &FileStorage{
		path:   filepath.Join(dir, saveFilename),
		logger: logger,
	}, nil
}

func (f *FileStorage) Ping(ctx context.Context) error {
	if _, err := os.Stat(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("save dir not accessible: %w", err)
	}
	return nil
}

func (f *FileStorage) Close() error {
	return nil
}

// SaveSnapshot overwrites the save file. The write goes through a temp file
// and rename so a crash mid-write cannot corrupt an existing save.
func (f *FileStorage) SaveSnapshot(ctx context.Context, snap *snapshot.GameSnapshot) error {
	snap.SavedAt = time.Now()

	data, err := json.Marshal(snap)
	if err != nil {
		f.logger.Error("Failed to marshal snapshot", "error", err)
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		f.logger.Error("Failed to write snapshot", "path", tmp, "error", err)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		f.logger.Error("Failed to replace snapshot", "path", f.path, "error", err)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	return nil
}

// LoadSnapshot reads the save file. A missing file is a fresh state, not an
// error; malformed or unknown-version content degrades to fresh state with
// a warning rather than crashing the session.
func (f *FileStorage) LoadSnapshot(ctx context.Context) (*snapshot.GameSnapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		f.logger.Error("Failed to read snapshot", "path", f.path, "error", err)
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap snapshot.GameSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		f.logger.Warn("Save file is unreadable, starting fresh", "path", f.path, "error", err)
		return nil, nil
	}
	if snap.Version != snapshot.Version {
		f.logger.Warn("Save file has unknown version, starting fresh",
			"path", f.path, "version", snap.Version, "supported", snapshot.Version)
		return nil, nil
	}

	return &snap, nil
}

func (f *FileStorage) DeleteSnapshot(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		f.logger.Error("Failed to delete snapshot", "path", f.path, "error", err)
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

func (f *FileStorage) HasSnapshot(ctx context.Context) (bool, error) {
	if _, err := os.Stat(f.path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat snapshot: %w", err)
	}
	return true, nil
}
