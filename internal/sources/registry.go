// Package sources keeps track of the source instances available to the host.
package sources

import (
	"fmt"
	"sync"

	"github.com/vrsandeep/mango-easyyomi/internal/models"
)

var (
	mu       sync.RWMutex
	registry = make(map[int64]models.Source)
	order    []int64
)

// Register adds a new source to the registry. It's called at startup.
func Register(s models.Source) {
	mu.Lock()
	defer mu.Unlock()

	info := s.Info()
	if _, exists := registry[info.ID]; exists {
		// Panic is appropriate here as it's a developer error during setup.
		panic(fmt.Sprintf("source with ID '%d' is already registered", info.ID))
	}
	registry[info.ID] = s
	order = append(order, info.ID)
}

// Get returns a source by its ID.
func Get(id int64) (models.Source, bool) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := registry[id]
	return s, ok
}

// GetAll returns information for all registered sources in registration order.
func GetAll() []models.SourceInfo {
	mu.RLock()
	defer mu.RUnlock()
	infos := make([]models.SourceInfo, 0, len(order))
	for _, id := range order {
		infos = append(infos, registry[id].Info())
	}
	return infos
}

// UnregisterAll empties the registry. Used by tests.
func UnregisterAll() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[int64]models.Source)
	order = nil
}
