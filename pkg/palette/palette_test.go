package palette_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/palette"
)

func TestEntriesCoverEveryType(t *testing.T) {
	var got []model.FieldType
	for _, entry := range palette.Entries() {
		got = append(got, entry.Type)
	}
	if diff := cmp.Diff(model.FieldTypes(), got); diff != "" {
		t.Fatalf("palette order mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigDefaults(t *testing.T) {
	radio, err := palette.ConfigFor("radio")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	want := model.FieldConfig{
		Type:    model.FieldTypeRadio,
		Label:   "Radio",
		Width:   model.WidthFull,
		Options: []string{"Option 1"},
		Value:   model.TextValue(""),
	}
	if diff := cmp.Diff(want, radio); diff != "" {
		t.Fatalf("radio config mismatch (-want +got):\n%s", diff)
	}

	paragraph, err := palette.ConfigFor("p")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if paragraph.Type != model.FieldTypeParagraph || paragraph.Label != "" {
		t.Fatalf("unexpected paragraph config %+v", paragraph)
	}

	if _, err := palette.ConfigFor("slider"); !errors.Is(err, model.ErrUnknownFieldType) {
		t.Fatalf("expected ErrUnknownFieldType, got %v", err)
	}
}
