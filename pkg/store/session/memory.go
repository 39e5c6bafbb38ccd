package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/store"
)

type memoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]store.SessionSnapshot
}

// NewMemoryStore builds the in-process store used by the web server.
func NewMemoryStore() Store {
	return &memoryStore{snapshots: make(map[string]store.SessionSnapshot)}
}

func (m *memoryStore) Get(_ context.Context, id string) (store.SessionSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snapshot, ok := m.snapshots[id]
	if !ok {
		return store.SessionSnapshot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return snapshot, nil
}

func (m *memoryStore) Put(_ context.Context, snapshot store.SessionSnapshot) error {
	if snapshot.ID == "" {
		return fmt.Errorf("snapshot id cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[snapshot.ID] = snapshot
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, id)
	return nil
}

func (m *memoryStore) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.snapshots))
	for id := range m.snapshots {
		ids = append(ids, id)
	}
	return ids, nil
}
