package session

import (
	"context"
	"fmt"
	"sync"
)

// #region store

// Store persists session snapshots between turns. Implementations must be
// safe for concurrent use.
type Store interface {
	Save(ctx context.Context, snap *Snapshot) error
	Load(ctx context.Context, id string) (*Snapshot, error)
	Delete(ctx context.Context, id string) error
}

// NotFoundError reports a missing snapshot.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session %s: snapshot not found", e.ID)
}

// #endregion store

// #region memory-store

// MemoryStore keeps snapshots in process memory. Suitable for tests and
// single-instance deployments.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string]*Snapshot
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]*Snapshot)}
}

func (m *MemoryStore) Save(_ context.Context, snap *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *snap
	m.snaps[snap.ID] = &cp
	return nil
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.snaps[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	cp := *snap
	return &cp, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snaps, id)
	return nil
}

// #endregion memory-store
