package database

import (
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/photoclass/photoclassbackend/models"
)

// KV is the whole-value get/set medium backing the record store. There are
// no partial updates and no indexes: callers load an entire collection,
// transform it in memory, and store it back.
type KV interface {
	// Get returns the stored value and whether the key exists
	Get(key string) ([]byte, bool, error)
	// Set stores value under key, replacing any previous value
	Set(key string, value []byte) error
	// Delete removes key; deleting a missing key is a no-op
	Delete(key string) error
}

// GormKV persists keys as rows of the kv_entries table
type GormKV struct {
	DB *gorm.DB
}

func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{DB: db}
}

func (g *GormKV) Get(key string) ([]byte, bool, error) {
	var entry models.KVEntry
	err := g.DB.First(&entry, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return entry.Value, true, nil
}

func (g *GormKV) Set(key string, value []byte) error {
	entry := models.KVEntry{Key: key, Value: value}
	err := g.DB.Save(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (g *GormKV) Delete(key string) error {
	err := g.DB.Delete(&models.KVEntry{}, "key = ?", key).Error
	if err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// MemoryKV is a map-backed KV used by tests and ephemeral sessions
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string][]byte)}
}

func (m *MemoryKV) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.values[key] = cp
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
