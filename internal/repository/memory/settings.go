package memory

import (
	"context"
	"sync"
)

type SettingsStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{values: make(map[string]string)}
}

// GetAll implements settings.SettingsRepository.
func (s *SettingsStore) GetAll(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make(map[string]string, len(s.values))
	for k, v := range s.values {
		copied[k] = v
	}
	return copied, nil
}

// UpsertAll implements settings.SettingsRepository.
func (s *SettingsStore) UpsertAll(ctx context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range values {
		s.values[k] = v
	}
	return nil
}
