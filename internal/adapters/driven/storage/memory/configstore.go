package memory

import (
	"sync"

	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/config/coerce"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a map and never touches disk. It backs the
// settings service in tests.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore returns an empty store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *ConfigStore) value(key string) any {
	v, _ := s.Get(key)
	return v
}

func (s *ConfigStore) GetString(key string) string        { return coerce.String(s.value(key)) }
func (s *ConfigStore) GetInt(key string) int              { return coerce.Int(s.value(key)) }
func (s *ConfigStore) GetBool(key string) bool            { return coerce.Bool(s.value(key)) }
func (s *ConfigStore) GetStringSlice(key string) []string { return coerce.Strings(s.value(key)) }

func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

// Save and Load have nothing to persist.
func (s *ConfigStore) Save() error { return nil }
func (s *ConfigStore) Load() error { return nil }

func (s *ConfigStore) Path() string { return ":memory:" }
