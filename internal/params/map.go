// Package params builds the named parameters and configuration maps sent to the
// graph data science engine.
package params

import (
	"bytes"
	"encoding/json"
)

// Arg is a single named argument, the Go counterpart of a keyword argument.
type Arg struct {
	Name  string
	Value any
}

// KV is shorthand for constructing an Arg.
func KV(name string, value any) Arg {
	return Arg{Name: name, Value: value}
}

// Ptr returns a pointer to v. Optional settings are expressed as pointers so that
// "unset" and "zero" stay distinguishable.
func Ptr[T any](v T) *T {
	return &v
}

// Map is a string-keyed map that remembers insertion order.
// The zero value is an empty map ready to use.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap builds a Map from args in the given order.
func NewMap(args ...Arg) *Map {
	m := &Map{}
	for _, arg := range args {
		m.Set(arg.Name, arg.Value)
	}
	return m
}

// Set stores value under key. Re-setting an existing key keeps its position.
func (m *Map) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key if present.
func (m *Map) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Len reports the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Merge copies every entry of other into m, in other's order.
func (m *Map) Merge(other *Map) {
	for _, k := range other.Keys() {
		v, _ := other.Get(k)
		m.Set(k, v)
	}
}

// ToMap converts m, and any nested Map, into plain maps the drivers understand.
func (m *Map) ToMap() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m.keys))
	for _, k := range m.keys {
		out[k] = plain(m.values[k])
	}
	return out
}

func plain(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.ToMap()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = plain(inner)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = plain(inner)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON encodes the map as a JSON object with keys in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
