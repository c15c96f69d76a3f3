package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// List is an immutable, ordered collection of fields. Order is the render
// and tab order. Callers share *List values freely; nothing mutates a list
// once built, so pointer identity doubles as change detection.
type List struct {
	fields []Field
}

// NewList returns a list holding copies of fields.
func NewList(fields ...Field) *List {
	out := make([]Field, len(fields))
	for i, field := range fields {
		out[i] = field.Clone()
	}
	return &List{fields: out}
}

// Len returns the number of fields. A nil list is empty.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.fields)
}

// At returns a copy of the field at index i.
func (l *List) At(i int) Field {
	return l.fields[i].Clone()
}

// Fields returns copies of every field in order.
func (l *List) Fields() []Field {
	if l == nil {
		return nil
	}
	out := make([]Field, len(l.fields))
	for i, field := range l.fields {
		out[i] = field.Clone()
	}
	return out
}

// Index returns the position of the field with id, or -1.
func (l *List) Index(id string) int {
	if l == nil || id == "" {
		return -1
	}
	for i, field := range l.fields {
		if field.ID == id {
			return i
		}
	}
	return -1
}

// Get returns a copy of the field with id.
func (l *List) Get(id string) (Field, bool) {
	idx := l.Index(id)
	if idx < 0 {
		return Field{}, false
	}
	return l.fields[idx].Clone(), true
}

// IDs returns the field ids in order.
func (l *List) IDs() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.fields))
	for i, field := range l.fields {
		out[i] = field.ID
	}
	return out
}

// Configs returns the id-less configuration of every field in order.
func (l *List) Configs() []FieldConfig {
	if l == nil {
		return nil
	}
	out := make([]FieldConfig, len(l.fields))
	for i, field := range l.fields {
		out[i] = field.Config()
	}
	return out
}

// HasUniqueIDs reports whether every field has a non-empty id that no other
// field in the list shares.
func (l *List) HasUniqueIDs() bool {
	seen := make(map[string]struct{}, l.Len())
	for _, id := range l.IDs() {
		if id == "" {
			return false
		}
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}

// Rows groups the list into render rows; see Rows.
func (l *List) Rows() []Row {
	if l == nil {
		return nil
	}
	return Rows(l.fields)
}

// MarshalJSON encodes the list as a JSON array of field records.
func (l *List) MarshalJSON() ([]byte, error) {
	if l == nil || l.fields == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.fields)
}

// UnmarshalJSON decodes a JSON array of field records. Any other JSON shape
// is rejected.
func (l *List) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return errors.New("model: field list must be a JSON array")
	}
	var fields []Field
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return fmt.Errorf("model: field list: %w", err)
	}
	if fields == nil {
		fields = []Field{}
	}
	l.fields = fields
	return nil
}
