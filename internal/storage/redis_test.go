package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/avecilla-games/memoria/pkg/snapshot"
)

func setupTestRedis(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	rs := NewRedisStorage(mr.Addr(), "test-slot", testLogger())
	return rs, mr
}

func TestRedisStorage_SaveAndLoad(t *testing.T) {
	rs, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = rs.Close() }()

	ctx := context.Background()

	snap := snapshot.New()
	snap.CurrentLevel = "home"
	snap.Levels = []snapshot.LevelRecord{
		{Name: "home", InitialAgeGroup: "adulthood", CurrentAgeGroup: "old_age", ActiveObjectIDs: []int{3, 5}},
	}

	if err := rs.SaveSnapshot(ctx, snap); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	loaded, err := rs.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected a snapshot")
	}
	if loaded.CurrentLevel != "home" {
		t.Errorf("Expected current level home, got %q", loaded.CurrentLevel)
	}
	if len(loaded.Levels) != 1 || loaded.Levels[0].CurrentAgeGroup != "old_age" {
		t.Errorf("Unexpected levels: %+v", loaded.Levels)
	}
}

func TestRedisStorage_AbsentSlotIsFreshState(t *testing.T) {
	rs, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = rs.Close() }()

	loaded, err := rs.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("Expected no error for absent slot, got %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil snapshot for absent slot")
	}
}

func TestRedisStorage_DeleteAndHas(t *testing.T) {
	rs, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = rs.Close() }()

	ctx := context.Background()

	has, err := rs.HasSnapshot(ctx)
	if err != nil {
		t.Fatalf("HasSnapshot failed: %v", err)
	}
	if has {
		t.Error("Expected no snapshot initially")
	}

	if err := rs.SaveSnapshot(ctx, snapshot.New()); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	has, _ = rs.HasSnapshot(ctx)
	if !has {
		t.Error("Expected snapshot after save")
	}

	if err := rs.DeleteSnapshot(ctx); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}

	has, _ = rs.HasSnapshot(ctx)
	if has {
		t.Error("Expected snapshot gone after delete")
	}
}

func TestRedisStorage_MalformedValueDegradesToFresh(t *testing.T) {
	rs, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = rs.Close() }()

	mr.Set("snapshot:test-slot", "{corrupt")

	loaded, err := rs.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("Expected malformed value to be recoverable, got %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil snapshot for malformed value")
	}
}
