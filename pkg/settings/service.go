// Package settings is the facade over the flat key/value settings table.
package settings

import "github.com/voyena/voyena-core/internal/store"

// Service reads and writes settings.
type Service struct {
	store store.Storer
}

// New creates a settings service.
func New(s store.Storer) *Service {
	return &Service{store: s}
}

// Get returns the value for a key, nil when unset.
func (s *Service) Get(key string) (*string, error) {
	return s.store.GetSetting(key)
}

// Set writes a key/value pair, replacing any existing value.
func (s *Service) Set(key, value string) error {
	return s.store.SetSetting(key, value)
}
