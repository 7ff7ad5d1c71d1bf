package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// ErrNoSnapshot is returned by a Persister that holds no state yet.
var ErrNoSnapshot = errors.New("no persisted snapshot")

// Persister durably stores whole snapshots. Write must be atomic: a failed
// Write leaves the previously stored snapshot intact.
type Persister interface {
	Read(ctx context.Context) (*Snapshot, error)
	Write(ctx context.Context, snap *Snapshot) error
}

type memoryPersister struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryPersister keeps the encoded snapshot in process memory.
func NewMemoryPersister() Persister {
	return &memoryPersister{}
}

func (m *memoryPersister) Read(ctx context.Context) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return nil, ErrNoSnapshot
	}
	var snap Snapshot
	if err := json.Unmarshal(m.data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (m *memoryPersister) Write(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}
