package ripple

import (
	"fmt"
	"maps"
	"sync"
)

// MetadataManager holds metadata attached to every event the client sends.
type MetadataManager struct {
	metadata map[string]any
	mu       sync.RWMutex
}

// NewMetadataManager creates a new metadata manager
func NewMetadataManager() *MetadataManager {
	return &MetadataManager{
		metadata: make(map[string]any),
	}
}

// Set stores value under key. Keys must be 1 to 255 bytes long.
func (m *MetadataManager) Set(key string, value any) error {
	if len(key) == 0 || len(key) > MaxMetadataKeyLen {
		return fmt.Errorf("%w: %q must be between 1 and %d bytes", ErrInvalidMetadataKey, key, MaxMetadataKeyLen)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.metadata[key] = value
	return nil
}

// Get returns the value stored under key, or nil.
func (m *MetadataManager) Get(key string) any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.metadata[key]
}

// Delete removes key.
func (m *MetadataManager) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.metadata, key)
}

// GetAll returns a copy of all metadata, or nil when none is set.
func (m *MetadataManager) GetAll() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.metadata) == 0 {
		return nil
	}
	return maps.Clone(m.metadata)
}

// Clear removes all metadata
func (m *MetadataManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.metadata)
}
