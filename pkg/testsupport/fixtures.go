package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// SampleConfigs returns one configuration of every field family, including a
// half-width pair, a multi-select radio and a file value.
func SampleConfigs() []model.FieldConfig {
	return []model.FieldConfig{
		{Type: model.FieldTypeName, Label: "First Name", Width: model.WidthHalf, Required: true, Placeholder: "Ada"},
		{Type: model.FieldTypeName, Label: "Last Name", Width: model.WidthHalf, Required: true},
		{Type: model.FieldTypeEmail, Label: "Email", Required: true, Value: model.TextValue("ada@example.com")},
		{Type: model.FieldTypeDropdown, Label: "Ticket", Options: []string{"Standard", "VIP"}},
		{Type: model.FieldTypeRadio, Label: "Sessions", Options: []string{"Morning", "Afternoon"}, Multi: true, Value: model.SelectedValue("Morning")},
		{Type: model.FieldTypeParagraph, Text: "Thanks for registering & welcome!", FontSize: 20, Align: model.AlignCenter, Bold: true},
		{Type: model.FieldTypeSeparator, Thickness: 2, Style: model.LineDashed},
		{Type: model.FieldTypeFile, Label: "Resume", Value: model.FileValue(model.FileRef{Name: "cv.pdf", Size: 2048, ContentType: "application/pdf"})},
		{Type: model.FieldTypeSubmit, Label: "Register"},
	}
}

// SampleList builds SampleConfigs with stable ids of the form <type>-<index>.
func SampleList(t testing.TB) *model.List {
	t.Helper()

	configs := SampleConfigs()
	fields := make([]model.Field, len(configs))
	for i, cfg := range configs {
		field, err := model.NewField(fmt.Sprintf("%s-%d", cfg.Type, i), cfg)
		if err != nil {
			t.Fatalf("sample field %d: %v", i, err)
		}
		fields[i] = field
	}
	return model.NewList(fields...)
}

// SequentialIDs returns a generator issuing <type>-<n> with n counting from
// one, so tests can predict ids.
func SequentialIDs() model.IDGenerator {
	n := 0
	return model.IDGeneratorFunc(func(t model.FieldType, _ int) string {
		n++
		return fmt.Sprintf("%s-%d", t, n)
	})
}

// LoadList reads a JSON field-list fixture.
func LoadList(path string) (*model.List, error) {
	if path == "" {
		return nil, errors.New("testsupport: list path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read list: %w", err)
	}
	var list model.List
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal list: %w", err)
	}
	return &list, nil
}

// MustLoadList is LoadList for tests.
func MustLoadList(t testing.TB, path string) *model.List {
	t.Helper()

	list, err := LoadList(path)
	if err != nil {
		t.Fatalf("load list: %v", err)
	}
	return list
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t testing.TB, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t testing.TB, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
