package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockPreferences is a mock implementation of models.Preferences.
type MockPreferences struct {
	mock.Mock
}

// Get mocks the Get method
func (m *MockPreferences) Get(key, def string) (string, error) {
	args := m.Called(key, def)
	return args.String(0), args.Error(1)
}

// Put mocks the Put method
func (m *MockPreferences) Put(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}

// MemoryPreferences is a map-backed models.Preferences for tests that only
// care about the stored values.
type MemoryPreferences struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryPreferences returns preferences pre-populated with values.
func NewMemoryPreferences(values map[string]string) *MemoryPreferences {
	m := &MemoryPreferences{values: make(map[string]string)}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *MemoryPreferences) Get(key, def string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return def, nil
}

func (m *MemoryPreferences) Put(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
