package injector

import (
	"reflect"
	"sync"
)

// typeMap is a thread-safe map keyed by reflect.Type. It backs the binding
// table, the shared registry, the singleton cache and the constructor registry.
type typeMap[V any] struct {
	entries map[reflect.Type]V
	mu      sync.RWMutex
}

// newTypeMap creates an empty typeMap
func newTypeMap[V any]() *typeMap[V] {
	return &typeMap[V]{
		entries: make(map[reflect.Type]V),
	}
}

// get retrieves an entry
func (m *typeMap[V]) get(key reflect.Type) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

// has reports whether an entry exists
func (m *typeMap[V]) has(key reflect.Type) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[key]
	return ok
}

// set stores an entry, replacing any previous one
func (m *typeMap[V]) set(key reflect.Type, v V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = v
}

// loadOrStore returns the existing entry for key if present. Otherwise it
// stores v and returns it. loaded reports whether an entry already existed.
func (m *typeMap[V]) loadOrStore(key reflect.Type, v V) (actual V, loaded bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.entries[key]; ok {
		return existing, true
	}
	m.entries[key] = v
	return v, false
}

// delete removes an entry
func (m *typeMap[V]) delete(key reflect.Type) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// keys returns a snapshot of all keys
func (m *typeMap[V]) keys() []reflect.Type {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]reflect.Type, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys
}

// len returns the number of entries
func (m *typeMap[V]) len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
