// Package prefstore 提供个性化偏好的存储实现
package prefstore

import (
	"context"
	"sync"
)

// MemoryStore 进程内偏好存储
type MemoryStore struct {
	values map[string]bool
	mu     sync.RWMutex
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]bool),
	}
}

// Get 读取偏好
func (s *MemoryStore) Get(_ context.Context, key string) (bool, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok, nil
}

// Set 保存偏好
func (s *MemoryStore) Set(_ context.Context, key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}
