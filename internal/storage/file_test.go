package storage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/avecilla-games/memoria/pkg/snapshot"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestFileStorage_SaveAndLoad(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("Failed to create file storage: %v", err)
	}
	ctx := context.Background()

	snap := snapshot.New()
	snap.CurrentLevel = "park"
	snap.Events = []snapshot.EventRecord{{Name: "met_actor", State: true}}
	snap.Items = []snapshot.ItemRecord{{Name: "key", State: snapshot.ItemDiscarded}}

	if err := fs.SaveSnapshot(ctx, snap); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	loaded, err := fs.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected a snapshot")
	}
	if loaded.SessionID != snap.SessionID {
		t.Errorf("Expected session %v, got %v", snap.SessionID, loaded.SessionID)
	}
	if loaded.CurrentLevel != "park" {
		t.Errorf("Expected current level park, got %q", loaded.CurrentLevel)
	}
	if len(loaded.Events) != 1 || !loaded.Events[0].State {
		t.Errorf("Unexpected events: %+v", loaded.Events)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].State != snapshot.ItemDiscarded {
		t.Errorf("Unexpected items: %+v", loaded.Items)
	}
}

func TestFileStorage_AbsentSaveIsFreshState(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("Failed to create file storage: %v", err)
	}

	loaded, err := fs.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("Expected no error for absent save, got %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil snapshot for absent save")
	}

	has, err := fs.HasSnapshot(context.Background())
	if err != nil {
		t.Fatalf("HasSnapshot failed: %v", err)
	}
	if has {
		t.Error("Expected HasSnapshot false for absent save")
	}
}

func TestFileStorage_MalformedSaveDegradesToFresh(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStorage(dir, testLogger())
	if err != nil {
		t.Fatalf("Failed to create file storage: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, saveFilename), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Failed to plant malformed save: %v", err)
	}

	loaded, err := fs.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("Expected malformed save to be recoverable, got %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil snapshot for malformed save")
	}
}

func TestFileStorage_UnknownVersionDegradesToFresh(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStorage(dir, testLogger())
	if err != nil {
		t.Fatalf("Failed to create file storage: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, saveFilename), []byte(`{"version": 99}`), 0o644); err != nil {
		t.Fatalf("Failed to plant future-version save: %v", err)
	}

	loaded, err := fs.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("Expected unknown version to be recoverable, got %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil snapshot for unknown version")
	}
}

func TestFileStorage_DeleteSnapshot(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("Failed to create file storage: %v", err)
	}
	ctx := context.Background()

	if err := fs.DeleteSnapshot(ctx); err != nil {
		t.Errorf("Deleting an absent snapshot should not error: %v", err)
	}

	if err := fs.SaveSnapshot(ctx, snapshot.New()); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	if err := fs.DeleteSnapshot(ctx); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}

	has, _ := fs.HasSnapshot(ctx)
	if has {
		t.Error("Expected snapshot gone after delete")
	}
}
