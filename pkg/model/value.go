package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// FileRef describes an uploaded file by its metadata; contents never enter
// the field list.
type FileRef struct {
	Name        string `json:"name,omitempty"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"type,omitempty"`
}

// Value is the current input of a field. Exactly one shape is meaningful:
// File for file uploads, Selected for multi-select radio groups, Text for
// everything else.
type Value struct {
	Text     string
	Selected []string
	File     *FileRef
}

// TextValue wraps a plain string.
func TextValue(text string) Value {
	return Value{Text: text}
}

// SelectedValue wraps a multi-select answer. A nil or empty selection is
// kept as an empty, non-nil slice so it still encodes as an array.
func SelectedValue(selected ...string) Value {
	out := make([]string, len(selected))
	copy(out, selected)
	return Value{Selected: out}
}

// FileValue wraps a file reference.
func FileValue(ref FileRef) Value {
	return Value{File: &ref}
}

// IsZero reports whether the value carries no answer.
func (v Value) IsZero() bool {
	return v.Text == "" && len(v.Selected) == 0 && v.File == nil
}

// Equal compares two values by content.
func (v Value) Equal(other Value) bool {
	if v.Text != other.Text {
		return false
	}
	if (v.Selected == nil) != (other.Selected == nil) || len(v.Selected) != len(other.Selected) {
		return false
	}
	for i := range v.Selected {
		if v.Selected[i] != other.Selected[i] {
			return false
		}
	}
	if (v.File == nil) != (other.File == nil) {
		return false
	}
	return v.File == nil || *v.File == *other.File
}

// Any returns the value in the shape encoding/json would decode it into,
// which is what schema validators expect.
func (v Value) Any() any {
	switch {
	case v.File != nil:
		return map[string]any{
			"name": v.File.Name,
			"size": float64(v.File.Size),
			"type": v.File.ContentType,
		}
	case v.Selected != nil:
		out := make([]any, len(v.Selected))
		for i, s := range v.Selected {
			out[i] = s
		}
		return out
	default:
		return v.Text
	}
}

func (v Value) clone() Value {
	out := Value{Text: v.Text}
	if v.Selected != nil {
		out.Selected = append([]string{}, v.Selected...)
	}
	if v.File != nil {
		ref := *v.File
		out.File = &ref
	}
	return out
}

// MarshalJSON encodes the value as a string, an array of strings, or a file
// object.
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.File != nil:
		return json.Marshal(v.File)
	case v.Selected != nil:
		return json.Marshal(v.Selected)
	default:
		return json.Marshal(v.Text)
	}
}

// UnmarshalJSON accepts null, a string, an array of strings, or an object.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errors.New("model: empty value")
	}
	*v = Value{}
	switch trimmed[0] {
	case 'n':
		return nil
	case '"':
		return json.Unmarshal(trimmed, &v.Text)
	case '[':
		selected := []string{}
		if err := json.Unmarshal(trimmed, &selected); err != nil {
			return fmt.Errorf("model: value array: %w", err)
		}
		v.Selected = selected
		return nil
	case '{':
		var ref FileRef
		if err := json.Unmarshal(trimmed, &ref); err != nil {
			return fmt.Errorf("model: file value: %w", err)
		}
		v.File = &ref
		return nil
	default:
		return fmt.Errorf("model: unsupported value %s", trimmed)
	}
}
