package storage

import (
	"context"
	"sync"

	"github.com/avecilla-games/memoria/pkg/snapshot"
)

// MockStorage is an in-memory Storage for tests.
type MockStorage struct {
	mu   sync.Mutex
	snap *snapshot.GameSnapshot

	// Error injection
	SaveError   error
	LoadError   error
	DeleteError error

	SaveCount int
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

func (m *MockStorage) Ping(ctx context.Context) error { return nil }

func (m *MockStorage) Close() error { return nil }

func (m *MockStorage) SaveSnapshot(ctx context.Context, snap *snapshot.GameSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return m.SaveError
	}
	// Store a deep copy so later mutations don't leak in
	cp := *snap
	cp.Events = append([]snapshot.EventRecord(nil), snap.Events...)
	cp.Levels = append([]snapshot.LevelRecord(nil), snap.Levels...)
	cp.Items = append([]snapshot.ItemRecord(nil), snap.Items...)
	m.snap = &cp
	m.SaveCount++
	return nil
}

func (m *MockStorage) LoadSnapshot(ctx context.Context) (*snapshot.GameSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	if m.snap == nil {
		return nil, nil
	}
	cp := *m.snap
	return &cp, nil
}

func (m *MockStorage) DeleteSnapshot(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.snap = nil
	return nil
}

func (m *MockStorage) HasSnapshot(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap != nil, nil
}

// Saves returns how many times SaveSnapshot succeeded.
func (m *MockStorage) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SaveCount
}
