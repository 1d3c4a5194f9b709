package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avecilla-games/memoria/pkg/snapshot"
)

// RedisStorage persists snapshots in Redis, keyed by save slot. Used for
// hosted sessions where the save outlives any one machine.
type RedisStorage struct {
	client *redis.Client
	slot   string
	logger *slog.Logger
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a Redis storage instance for the given save slot.
func NewRedisStorage(redisURL string, slot string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	if slot == "" {
		slot = "default"
	}

	return &RedisStorage{
		client: rdb,
		slot:   slot,
		logger: logger,
	}
}

func (r *RedisStorage) key() string {
	return "snapshot:" + r.slot
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	const maxRetries = 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func (r *RedisStorage) SaveSnapshot(ctx context.Context, snap *snapshot.GameSnapshot) error {
	snap.SavedAt = time.Now()

	data, err := json.Marshal(snap)
	if err != nil {
		r.logger.Error("Failed to marshal snapshot", "slot", r.slot, "error", err)
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := r.client.Set(ctx, r.key(), string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to save snapshot", "slot", r.slot, "error", err)
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

func (r *RedisStorage) LoadSnapshot(ctx context.Context) (*snapshot.GameSnapshot, error) {
	cmd := r.client.Get(ctx, r.key())
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		r.logger.Error("Failed to load snapshot", "slot", r.slot, "error", err)
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap snapshot.GameSnapshot
	if err := json.Unmarshal([]byte(cmd.Val()), &snap); err != nil {
		r.logger.Warn("Stored snapshot is unreadable, starting fresh", "slot", r.slot, "error", err)
		return nil, nil
	}
	if snap.Version != snapshot.Version {
		r.logger.Warn("Stored snapshot has unknown version, starting fresh",
			"slot", r.slot, "version", snap.Version, "supported", snapshot.Version)
		return nil, nil
	}

	return &snap, nil
}

func (r *RedisStorage) DeleteSnapshot(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key()).Err(); err != nil {
		r.logger.Error("Failed to delete snapshot", "slot", r.slot, "error", err)
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

func (r *RedisStorage) HasSnapshot(ctx context.Context) (bool, error) {
	n, err := r.client.Exists(ctx, r.key()).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check snapshot existence: %w", err)
	}
	return n > 0, nil
}
