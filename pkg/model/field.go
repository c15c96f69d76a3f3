package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// FieldConfig describes a field before it has an id. Palette entries,
// template items and the flat wire records of persisted or shared forms all
// share this shape.
type FieldConfig struct {
	Type        FieldType `json:"type" yaml:"type"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Width       Width     `json:"width,omitempty" yaml:"width,omitempty"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty"`
	Multi       bool      `json:"multi,omitempty" yaml:"multi,omitempty"`
	Text        string    `json:"text,omitempty" yaml:"text,omitempty"`
	FontSize    int       `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	Align       Align     `json:"align,omitempty" yaml:"align,omitempty"`
	Margin      int       `json:"margin,omitempty" yaml:"margin,omitempty"`
	Bold        bool      `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic      bool      `json:"italic,omitempty" yaml:"italic,omitempty"`
	Thickness   int       `json:"thickness,omitempty" yaml:"thickness,omitempty"`
	Style       LineStyle `json:"style,omitempty" yaml:"style,omitempty"`
	Value       Value     `json:"value" yaml:"-"`
}

// Field is one element of a form. ID and Type never change after creation.
type Field struct {
	ID    string
	Type  FieldType
	Width Width
	Value Value
	Attrs Attrs
}

// NewField builds a field from cfg, normalising width and type-specific
// attributes. Unknown types are rejected.
func NewField(id string, cfg FieldConfig) (Field, error) {
	t, err := ParseFieldType(string(cfg.Type))
	if err != nil {
		return Field{}, err
	}
	cfg.Type = t
	return Field{
		ID:    id,
		Type:  t,
		Width: NormalizeWidth(cfg.Width),
		Value: cfg.Value.clone(),
		Attrs: attrsFromConfig(cfg),
	}, nil
}

// Config flattens the field back into its record form, without the id.
func (f Field) Config() FieldConfig {
	cfg := FieldConfig{
		Type:  f.Type,
		Width: NormalizeWidth(f.Width),
		Value: f.Value.clone(),
	}
	switch a := f.Attrs.(type) {
	case InputAttrs:
		cfg.Label = a.Label
		cfg.Placeholder = a.Placeholder
		cfg.Required = a.Required
	case ChoiceAttrs:
		cfg.Label = a.Label
		cfg.Required = a.Required
		cfg.Options = append([]string(nil), a.Options...)
		cfg.Multi = a.Multi
	case ParagraphAttrs:
		cfg.Text = a.Text
		cfg.FontSize = a.FontSize
		cfg.Align = a.Align
		cfg.Margin = a.Margin
		cfg.Bold = a.Bold
		cfg.Italic = a.Italic
	case SeparatorAttrs:
		cfg.Thickness = a.Thickness
		cfg.Style = a.Style
		cfg.Bold = a.Bold
	case SubmitAttrs:
		cfg.Label = a.Label
	}
	return cfg
}

// Label returns the display label, or "" for decorative fields.
func (f Field) Label() string {
	switch a := f.Attrs.(type) {
	case InputAttrs:
		return a.Label
	case ChoiceAttrs:
		return a.Label
	case SubmitAttrs:
		return a.Label
	default:
		return ""
	}
}

// Required reports whether an answer must be supplied on submission.
func (f Field) Required() bool {
	switch a := f.Attrs.(type) {
	case InputAttrs:
		return a.Required
	case ChoiceAttrs:
		return a.Required
	default:
		return false
	}
}

// Options returns a copy of the choice options, or nil for non-choice fields.
func (f Field) Options() []string {
	if a, ok := f.Attrs.(ChoiceAttrs); ok {
		return append([]string(nil), a.Options...)
	}
	return nil
}

// Multi reports whether a radio field accepts several answers.
func (f Field) Multi() bool {
	a, ok := f.Attrs.(ChoiceAttrs)
	return ok && a.Multi
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	out.Value = f.Value.clone()
	if f.Attrs != nil {
		out.Attrs = f.Attrs.clone()
	}
	return out
}

// Equal compares two fields by id and content.
func (f Field) Equal(other Field) bool {
	if f.ID != other.ID || f.Type != other.Type || f.Width != other.Width || !f.Value.Equal(other.Value) {
		return false
	}
	return attrsEqual(f.Attrs, other.Attrs)
}

func attrsEqual(a, b Attrs) bool {
	ca, ok := a.(ChoiceAttrs)
	if !ok {
		_, otherChoice := b.(ChoiceAttrs)
		return !otherChoice && a == b
	}
	cb, ok := b.(ChoiceAttrs)
	return ok && ca.Label == cb.Label && ca.Required == cb.Required &&
		ca.Multi == cb.Multi && slices.Equal(ca.Options, cb.Options)
}

type fieldRecord struct {
	ID string `json:"id"`
	FieldConfig
}

// MarshalJSON encodes the field as a flat record.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(fieldRecord{ID: f.ID, FieldConfig: f.Config()})
}

// UnmarshalJSON decodes a flat record, rejecting anything that is not an
// object with a supported type.
func (f *Field) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errors.New("model: field record must be an object")
	}
	var rec fieldRecord
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return fmt.Errorf("model: field record: %w", err)
	}
	field, err := NewField(rec.ID, rec.FieldConfig)
	if err != nil {
		return err
	}
	*f = field
	return nil
}
