package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
)

// Mapping is an ordered string map. Keys iterate in insertion order; setting
// an existing key replaces its value but keeps its position.
type Mapping struct {
	data     map[string]string
	keyOrder []string
}

// NewMapping creates an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{
		data:     make(map[string]string),
		keyOrder: make([]string, 0),
	}
}

// MappingOf builds a mapping from alternating key/value arguments.
// A trailing key without a value is ignored.
func MappingOf(pairs ...string) *Mapping {
	m := NewMapping()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

func (m *Mapping) Set(key, value string) {
	if m.data == nil {
		m.data = make(map[string]string)
	}
	if _, exists := m.data[key]; !exists {
		m.keyOrder = append(m.keyOrder, key)
	}
	m.data[key] = value
}

func (m *Mapping) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.data[key]
	return v, ok
}

func (m *Mapping) Delete(key string) {
	if _, exists := m.data[key]; !exists {
		return
	}
	delete(m.data, key)
	for i, k := range m.keyOrder {
		if k == key {
			m.keyOrder = append(m.keyOrder[:i], m.keyOrder[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries. A nil mapping is empty.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keyOrder)
}

func (m *Mapping) Keys() []string {
	if m == nil {
		return []string{}
	}
	result := make([]string, len(m.keyOrder))
	copy(result, m.keyOrder)
	return result
}

// All iterates over the entries in order.
func (m *Mapping) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keyOrder {
			if !yield(k, m.data[k]) {
				return
			}
		}
	}
}

func (m *Mapping) Clone() *Mapping {
	clone := NewMapping()
	for k, v := range m.All() {
		clone.Set(k, v)
	}
	return clone
}

// Equal reports whether both mappings hold the same pairs in the same order.
func (m *Mapping) Equal(other *Mapping) bool {
	if m.Len() != other.Len() {
		return false
	}
	otherKeys := other.Keys()
	for i, k := range m.Keys() {
		if otherKeys[i] != k {
			return false
		}
		a, _ := m.Get(k)
		b, _ := other.Get(k)
		if a != b {
			return false
		}
	}
	return true
}

// EqualUnordered reports whether both mappings hold the same pairs.
func (m *Mapping) EqualUnordered(other *Mapping) bool {
	if m.Len() != other.Len() {
		return false
	}
	for k, v := range m.All() {
		ov, ok := other.Get(k)
		if !ok || ov != v {
			return false
		}
	}
	return true
}

func (m *Mapping) ToMap() map[string]string {
	result := make(map[string]string, m.Len())
	for k, v := range m.All() {
		result[k] = v
	}
	return result
}

// MarshalJSON encodes the mapping as a JSON object with keys in order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	i := 0
	for k, v := range m.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
		i++
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of strings, keeping document order.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("mapping: expected JSON object, got %v", tok)
	}

	m.data = make(map[string]string)
	m.keyOrder = m.keyOrder[:0]
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("mapping: expected string key, got %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("mapping: value for %q: %w", key, err)
		}
		m.Set(key, value)
	}
	_, err = dec.Token()
	return err
}
