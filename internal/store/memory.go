// internal/store/memory.go
//
// In-memory leaderboard store. Used in tests and when no database path
// is configured; state is lost on restart.

package store

import (
	"context"
	"sync"

	"katakilat/internal/leaderboard"
)

// Memory is a map-backed leaderboard.Store.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]leaderboard.Entry
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]leaderboard.Entry)}
}

// Load returns a copy of the stored mapping.
func (m *Memory) Load(ctx context.Context) (map[string]leaderboard.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]leaderboard.Entry, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out, nil
}

// Save replaces the stored mapping with a copy of entries.
func (m *Memory) Save(ctx context.Context, entries map[string]leaderboard.Entry) error {
	cp := make(map[string]leaderboard.Entry, len(entries))
	for k, v := range entries {
		cp[k] = v
	}
	m.mu.Lock()
	m.entries = cp
	m.mu.Unlock()
	return nil
}
