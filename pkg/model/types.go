package model

import (
	"errors"
	"fmt"
	"strings"
)

// FieldType enumerates the closed set of field kinds the builder supports.
type FieldType string

const (
	FieldTypeName      FieldType = "name"
	FieldTypeEmail     FieldType = "email"
	FieldTypePhone     FieldType = "phone"
	FieldTypeAddress   FieldType = "address"
	FieldTypeDate      FieldType = "date"
	FieldTypeDropdown  FieldType = "dropdown"
	FieldTypeRadio     FieldType = "radio"
	FieldTypeTextarea  FieldType = "textarea"
	FieldTypeParagraph FieldType = "paragraph"
	FieldTypeSeparator FieldType = "separator"
	FieldTypeFile      FieldType = "file"
	FieldTypeSubmit    FieldType = "submit"
)

// ErrUnknownFieldType is returned when a record names a type outside the
// supported set.
var ErrUnknownFieldType = errors.New("model: unknown field type")

// FieldTypes lists every supported type in palette order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeName,
		FieldTypeEmail,
		FieldTypePhone,
		FieldTypeAddress,
		FieldTypeDate,
		FieldTypeDropdown,
		FieldTypeRadio,
		FieldTypeTextarea,
		FieldTypeParagraph,
		FieldTypeSeparator,
		FieldTypeFile,
		FieldTypeSubmit,
	}
}

// typeAliases maps the short names used by older saved forms.
var typeAliases = map[string]FieldType{
	"p":  FieldTypeParagraph,
	"hr": FieldTypeSeparator,
}

// ParseFieldType resolves a raw type name, accepting the legacy `p` and `hr`
// aliases. Matching is case-insensitive.
func ParseFieldType(raw string) (FieldType, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := typeAliases[name]; ok {
		return alias, nil
	}
	t := FieldType(name)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFieldType, raw)
	}
	return t, nil
}

// Valid reports whether t is one of the supported field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeName, FieldTypeEmail, FieldTypePhone, FieldTypeAddress,
		FieldTypeDate, FieldTypeDropdown, FieldTypeRadio, FieldTypeTextarea,
		FieldTypeParagraph, FieldTypeSeparator, FieldTypeFile, FieldTypeSubmit:
		return true
	default:
		return false
	}
}

// IsChoice reports whether the type carries options.
func (t FieldType) IsChoice() bool {
	return t == FieldTypeDropdown || t == FieldTypeRadio
}

// IsDecorative reports whether the type is static content without a label or
// input value.
func (t FieldType) IsDecorative() bool {
	return t == FieldTypeParagraph || t == FieldTypeSeparator
}

// AcceptsInput reports whether the rendered field collects a value.
func (t FieldType) AcceptsInput() bool {
	return t.Valid() && !t.IsDecorative() && t != FieldTypeSubmit
}

// Width is a field's share of the row, in percent.
type Width int

const (
	WidthHalf Width = 50
	WidthFull Width = 100
)

// NormalizeWidth maps any value other than 50 onto full width.
func NormalizeWidth(w Width) Width {
	if w == WidthHalf {
		return WidthHalf
	}
	return WidthFull
}

// Align is the text alignment of a paragraph.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

func normalizeAlign(a Align) Align {
	switch Align(strings.ToLower(string(a))) {
	case AlignCenter:
		return AlignCenter
	case AlignRight:
		return AlignRight
	default:
		return AlignLeft
	}
}

// LineStyle is the border style of a separator.
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
	LineDotted LineStyle = "dotted"
)

func normalizeLineStyle(s LineStyle) LineStyle {
	switch LineStyle(strings.ToLower(string(s))) {
	case LineDashed:
		return LineDashed
	case LineDotted:
		return LineDotted
	default:
		return LineSolid
	}
}

const (
	DefaultFontSize  = 18
	MinFontSize      = 10
	MaxFontSize      = 50
	DefaultThickness = 1
	// DefaultOption seeds choice fields that arrive without options.
	DefaultOption = "Option 1"
)

func clampFontSize(size int) int {
	switch {
	case size == 0:
		return DefaultFontSize
	case size < MinFontSize:
		return MinFontSize
	case size > MaxFontSize:
		return MaxFontSize
	default:
		return size
	}
}
