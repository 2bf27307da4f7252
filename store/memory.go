package store

import (
	"context"
	"sync"
)

// MemoryStore 进程内实现：无持久化，用于本地试跑与测试
type MemoryStore struct {
	mu     sync.RWMutex
	scores map[string]int
	worlds map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		scores: make(map[string]int),
		worlds: make(map[string][]byte),
	}
}

func (m *MemoryStore) GetScore(_ context.Context, playerID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	score, ok := m.scores[playerID]
	if !ok {
		return 0, ErrNotFound
	}
	return score, nil
}

func (m *MemoryStore) SetScore(_ context.Context, playerID string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[playerID] = score
	return nil
}

func (m *MemoryStore) LoadWorld(_ context.Context, worldID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	blob, ok := m.worlds[worldID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(blob))
	copy(cp, blob)
	return cp, nil
}

func (m *MemoryStore) SaveWorld(_ context.Context, worldID string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(blob))
	copy(cp, blob)
	m.worlds[worldID] = cp
	return nil
}

func (m *MemoryStore) Close() error { return nil }
