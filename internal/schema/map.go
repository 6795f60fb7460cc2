package schema

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Map is a string-keyed map that remembers insertion order.
//
// The zero value is ready to use. Read methods are safe on a nil *Map and
// behave like an empty map.
type Map[V any] struct {
	om *orderedmap.OrderedMap[string, V]
}

// NewMap returns an empty Map.
func NewMap[V any]() *Map[V] {
	return &Map[V]{om: orderedmap.New[string, V]()}
}

// Set stores v under key. A new key is appended to the iteration order;
// an existing key keeps its position.
func (m *Map[V]) Set(key string, v V) {
	if m.om == nil {
		m.om = orderedmap.New[string, V]()
	}

	m.om.Set(key, v)
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	if m == nil || m.om == nil {
		var zero V
		return zero, false
	}

	return m.om.Get(key)
}

// Has reports whether key is present.
func (m *Map[V]) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key. It is a no-op when key is absent.
func (m *Map[V]) Delete(key string) {
	if m == nil || m.om == nil {
		return
	}

	m.om.Delete(key)
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	if m == nil || m.om == nil {
		return 0
	}

	return m.om.Len()
}

// Keys returns the keys in insertion order.
func (m *Map[V]) Keys() []string {
	if m == nil {
		return nil
	}

	keys := make([]string, 0, m.Len())
	for k := range m.All() {
		keys = append(keys, k)
	}

	return keys
}

// All iterates over the entries in insertion order.
func (m *Map[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil || m.om == nil {
			return
		}

		for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Clone returns a shallow copy of m. Clone of nil is nil.
func (m *Map[V]) Clone() *Map[V] {
	if m == nil {
		return nil
	}

	out := NewMap[V]()
	for k, v := range m.All() {
		out.Set(k, v)
	}

	return out
}

// MarshalJSON encodes m as a JSON object, keeping insertion order.
func (m *Map[V]) MarshalJSON() ([]byte, error) {
	if m == nil || m.om == nil {
		return []byte("{}"), nil
	}

	return m.om.MarshalJSON()
}

// MarshalYAML encodes m as a YAML mapping, keeping insertion order.
func (m *Map[V]) MarshalYAML() (any, error) {
	if m == nil || m.om == nil {
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}, nil
	}

	return m.om.MarshalYAML()
}
