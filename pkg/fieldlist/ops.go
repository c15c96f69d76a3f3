package fieldlist

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ErrEmptyType is returned when a configuration omits the field type.
var ErrEmptyType = errors.New("fieldlist: field type is required")

// Expand turns one palette or template configuration into the fields it
// creates. A half-width name entry stands for a first/last name pair and
// yields two half-width name fields; everything else yields one field.
func Expand(cfg model.FieldConfig) []model.FieldConfig {
	if cfg.Type == model.FieldTypeName && cfg.Width == model.WidthHalf {
		first, last := cfg, cfg
		first.Value, last.Value = model.Value{}, model.Value{}
		return []model.FieldConfig{first, last}
	}
	return []model.FieldConfig{cfg}
}

// AddField appends the fields cfg expands into.
func AddField(list *model.List, cfg model.FieldConfig, ids model.IDGenerator) (*model.List, error) {
	return InsertFieldAt(list, cfg, list.Len(), ids)
}

// InsertFieldAt inserts the fields cfg expands into before index. An index
// outside [0, len] appends.
func InsertFieldAt(list *model.List, cfg model.FieldConfig, index int, ids model.IDGenerator) (*model.List, error) {
	created, err := build(Expand(cfg), ids)
	if err != nil {
		return list, err
	}
	current := list.Fields()
	if index < 0 || index > len(current) {
		index = len(current)
	}
	out := make([]model.Field, 0, len(current)+len(created))
	out = append(out, current[:index]...)
	out = append(out, created...)
	out = append(out, current[index:]...)
	return model.NewList(out...), nil
}

// MoveField removes the source field and re-inserts it at the target's
// original index. Moving onto itself or naming a missing id returns list.
func MoveField(list *model.List, sourceID, targetID string) *model.List {
	from, to := list.Index(sourceID), list.Index(targetID)
	if from < 0 || to < 0 || from == to {
		return list
	}
	fields := list.Fields()
	moved := fields[from]
	fields = append(fields[:from], fields[from+1:]...)
	out := make([]model.Field, 0, len(fields)+1)
	out = append(out, fields[:to]...)
	out = append(out, moved)
	out = append(out, fields[to:]...)
	return model.NewList(out...)
}

// SwapFields exchanges the positions of two fields.
func SwapFields(list *model.List, idA, idB string) *model.List {
	a, b := list.Index(idA), list.Index(idB)
	if a < 0 || b < 0 || a == b {
		return list
	}
	fields := list.Fields()
	fields[a], fields[b] = fields[b], fields[a]
	return model.NewList(fields...)
}

// PatchField merges patch into the field with id. A missing id, or a patch
// that leaves the field as it was, returns list.
func PatchField(list *model.List, id string, patch model.Patch) *model.List {
	idx := list.Index(id)
	if idx < 0 || patch.IsEmpty() {
		return list
	}
	fields := list.Fields()
	patched := fields[idx].Apply(patch)
	if patched.Equal(fields[idx]) {
		return list
	}
	fields[idx] = patched
	return model.NewList(fields...)
}

// RemoveField drops the field with id.
func RemoveField(list *model.List, id string) *model.List {
	idx := list.Index(id)
	if idx < 0 {
		return list
	}
	fields := list.Fields()
	return model.NewList(append(fields[:idx], fields[idx+1:]...)...)
}

// ReplaceAll builds a new list from configs, assigning every field a fresh
// id. Incoming ids are never trusted.
func ReplaceAll(configs []model.FieldConfig, ids model.IDGenerator) (*model.List, error) {
	fields, err := build(configs, ids)
	if err != nil {
		return nil, err
	}
	return model.NewList(fields...), nil
}

func build(configs []model.FieldConfig, ids model.IDGenerator) ([]model.Field, error) {
	if ids == nil {
		ids = model.NewIDGenerator()
	}
	out := make([]model.Field, 0, len(configs))
	for i, cfg := range configs {
		if cfg.Type == "" {
			return nil, fmt.Errorf("fieldlist: field %d: %w", i, ErrEmptyType)
		}
		t, err := model.ParseFieldType(string(cfg.Type))
		if err != nil {
			return nil, fmt.Errorf("fieldlist: field %d: %w", i, err)
		}
		cfg.Type = t
		field, err := model.NewField(ids.NewID(t, i), cfg)
		if err != nil {
			return nil, fmt.Errorf("fieldlist: field %d: %w", i, err)
		}
		out = append(out, field)
	}
	return out, nil
}
