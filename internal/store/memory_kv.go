package store

import (
	"sync"

	"zetra/internal/domain"
)

// MemoryKV keeps values in a map. Nothing survives the process.
type MemoryKV struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryKV() *MemoryKV { return &MemoryKV{items: make(map[string]string)} }

var _ domain.KeyValueStore = (*MemoryKV)(nil)

func (s *MemoryKV) GetItem(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *MemoryKV) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *MemoryKV) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}
