package collection

import "sync"

// SyncMap is a mutex guarded map that also remembers insertion order
type SyncMap[K comparable, V any] struct {
	m    map[K]V
	keys []K
	mux  sync.RWMutex
}

func (m *SyncMap[K, V]) Get(k K) (V, bool) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	v, ok := m.m[k]
	return v, ok
}

func (m *SyncMap[K, V]) Put(k K, v V) {
	m.mux.Lock()
	defer m.mux.Unlock()
	if _, ok := m.m[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.m[k] = v
}

func (m *SyncMap[K, V]) Delete(k K) {
	m.mux.Lock()
	defer m.mux.Unlock()
	if _, ok := m.m[k]; !ok {
		return
	}
	delete(m.m, k)
	for i, candidate := range m.keys {
		if candidate == k {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Range iterates entries in insertion order over a snapshot
func (m *SyncMap[K, V]) Range(f func(key K, value V) bool) {
	m.mux.RLock()
	keys := make([]K, len(m.keys))
	copy(keys, m.keys)
	values := make([]V, len(keys))
	for i, k := range keys {
		values[i] = m.m[k]
	}
	m.mux.RUnlock()
	for i, k := range keys {
		if !f(k, values[i]) {
			return
		}
	}
}

// Len returns number of entries
func (m *SyncMap[K, V]) Len() int {
	m.mux.RLock()
	defer m.mux.RUnlock()
	return len(m.m)
}

func NewSyncMap[K comparable, V any]() *SyncMap[K, V] {
	return &SyncMap[K, V]{m: make(map[K]V)}
}
