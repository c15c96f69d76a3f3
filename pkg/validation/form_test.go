package validation_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

func TestSubmissionFromForm(t *testing.T) {
	list := model.NewList(
		field(t, "email", model.FieldConfig{Type: model.FieldTypeEmail, Label: "Email"}),
		field(t, "days", model.FieldConfig{Type: model.FieldTypeRadio, Label: "Days", Options: []string{"Mon", "Tue"}, Multi: true}),
		field(t, "cv", model.FieldConfig{Type: model.FieldTypeFile, Label: "CV"}),
		field(t, "note", model.FieldConfig{Type: model.FieldTypeParagraph, Text: "Hi"}),
	)
	values := url.Values{
		"email":  {"ada@example.com"},
		"days[]": {"Mon", "Tue"},
		"note":   {"ignored"},
	}

	want := validation.Submission{
		"email": model.TextValue("ada@example.com"),
		"days":  model.SelectedValue("Mon", "Tue"),
		"cv":    {},
	}
	if diff := cmp.Diff(want, validation.SubmissionFromForm(list, values)); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}

	values.Set("cv", "resume.pdf")
	got := validation.SubmissionFromForm(list, values)
	if got["cv"].File == nil || got["cv"].File.Name != "resume.pdf" {
		t.Fatalf("expected file name, got %+v", got["cv"])
	}
}
