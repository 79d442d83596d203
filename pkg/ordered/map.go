// Package ordered provides a map that iterates in insertion order.
package ordered

// Map is not safe for concurrent use.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{values: make(map[K]V)}
}

func (m *Map[K, V]) Len() int {
	return len(m.values)
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	value, ok := m.values[key]
	return value, ok
}

// Set keeps the original position of an existing key.
func (m *Map[K, V]) Set(key K, value V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *Map[K, V]) Delete(key K) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

func (m *Map[K, V]) Clear() {
	m.keys = nil
	m.values = make(map[K]V)
}

// Filter drops every entry for which keep returns false and reports how many were dropped.
func (m *Map[K, V]) Filter(keep func(V) bool) int {
	kept := m.keys[:0]
	dropped := 0
	for _, key := range m.keys {
		if keep(m.values[key]) {
			kept = append(kept, key)
			continue
		}
		delete(m.values, key)
		dropped++
	}
	for i := len(kept); i < len(m.keys); i++ {
		var zero K
		m.keys[i] = zero
	}
	m.keys = kept
	return dropped
}

// Values returns a fresh slice in insertion order.
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0, len(m.keys))
	for _, key := range m.keys {
		values = append(values, m.values[key])
	}
	return values
}
