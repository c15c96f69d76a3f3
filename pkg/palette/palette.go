// Package palette holds the fixed catalogue of field types offered to the
// builder, along with the configuration a fresh field of each type gets.
package palette

import (
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Entry is one palette item.
type Entry struct {
	Type  model.FieldType `json:"type"`
	Title string          `json:"title"`
}

// Config returns the configuration of a field dropped from this entry: full
// width, an empty value, the entry title as label and a single default
// option for choice types.
func (e Entry) Config() model.FieldConfig {
	cfg := model.FieldConfig{
		Type:  e.Type,
		Width: model.WidthFull,
		Value: model.TextValue(""),
	}
	if !e.Type.IsDecorative() {
		cfg.Label = e.Title
	}
	if e.Type.IsChoice() {
		cfg.Options = []string{model.DefaultOption}
	}
	return cfg
}

var entries = []Entry{
	{Type: model.FieldTypeName, Title: "Name"},
	{Type: model.FieldTypeEmail, Title: "Email"},
	{Type: model.FieldTypePhone, Title: "Phone"},
	{Type: model.FieldTypeAddress, Title: "Address"},
	{Type: model.FieldTypeDate, Title: "Date"},
	{Type: model.FieldTypeDropdown, Title: "Dropdown"},
	{Type: model.FieldTypeRadio, Title: "Radio"},
	{Type: model.FieldTypeTextarea, Title: "Textarea"},
	{Type: model.FieldTypeParagraph, Title: "Add Text"},
	{Type: model.FieldTypeSeparator, Title: "Separator Line"},
	{Type: model.FieldTypeFile, Title: "File Upload"},
	{Type: model.FieldTypeSubmit, Title: "Submit Button"},
}

// Entries returns the catalogue in display order.
func Entries() []Entry {
	return append([]Entry(nil), entries...)
}

// Lookup finds the entry for a type name. Legacy aliases resolve too.
func Lookup(name string) (Entry, bool) {
	t, err := model.ParseFieldType(name)
	if err != nil {
		return Entry{}, false
	}
	for _, entry := range entries {
		if entry.Type == t {
			return entry, true
		}
	}
	return Entry{}, false
}

// ConfigFor returns the drop configuration for a type name.
func ConfigFor(name string) (model.FieldConfig, error) {
	entry, ok := Lookup(name)
	if !ok {
		return model.FieldConfig{}, fmt.Errorf("palette: %w: %q", model.ErrUnknownFieldType, name)
	}
	return entry.Config(), nil
}
