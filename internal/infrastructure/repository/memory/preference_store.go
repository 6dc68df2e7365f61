package memory

import (
	"context"
	"sync"
)

// PreferenceStore keeps visitor preferences for the life of the process.
type PreferenceStore struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{values: make(map[string]map[string]string)}
}

func (s *PreferenceStore) Get(_ context.Context, visitorID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[visitorID][key]
	return v, ok, nil
}

func (s *PreferenceStore) Set(_ context.Context, visitorID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byKey, ok := s.values[visitorID]
	if !ok {
		byKey = make(map[string]string)
		s.values[visitorID] = byKey
	}
	byKey[key] = value
	return nil
}

func (s *PreferenceStore) Remove(_ context.Context, visitorID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byKey, ok := s.values[visitorID]
	if !ok {
		return nil
	}
	delete(byKey, key)
	if len(byKey) == 0 {
		delete(s.values, visitorID)
	}
	return nil
}
