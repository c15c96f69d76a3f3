package templates_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/fieldlist"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/templates"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := templates.Default()
	want := []string{"Contact Form", "Job Application", "Event Registration"}
	if diff := cmp.Diff(want, catalog.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	tpl, err := catalog.Get("event  registration")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	session := tpl.Fields[2]
	if session.Type != model.FieldTypeDropdown {
		t.Fatalf("expected dropdown, got %s", session.Type)
	}
	if diff := cmp.Diff([]string{"Morning", "Afternoon"}, session.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	if _, err := catalog.Get("Survey"); !errors.Is(err, templates.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApplyTemplateGivesFreshIDs(t *testing.T) {
	tpl, err := templates.Default().Get("Contact Form")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	editor := fieldlist.NewEditor(nil, fieldlist.WithIDGenerator(testsupport.SequentialIDs()))
	if err := editor.ReplaceAll(tpl.Configs()); err != nil {
		t.Fatalf("replace: %v", err)
	}
	want := []string{"name-1", "email-2", "textarea-3", "submit-4"}
	if diff := cmp.Diff(want, editor.List().IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFSJSONAndYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"a/feedback.json": &fstest.MapFile{Data: []byte(`{
  "name": "Feedback",
  "fields": [
    {"type": "radio", "label": "<b>Rating</b>", "options": ["Good", "Bad"]},
    {"type": "p", "text": "Thanks"}
  ]
}`)},
		"b/more.yml": &fstest.MapFile{Data: []byte(`
templates:
  - name: Newsletter
    fields:
      - type: email
        label: Email
        width: 50
      - type: dropdown
        label: Topic
`)},
		"notes.txt": &fstest.MapFile{Data: []byte("ignored")},
	}

	catalog, err := templates.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"Feedback", "Newsletter"}, catalog.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	feedback, _ := catalog.Get("feedback")
	if feedback.Fields[0].Label != "Rating" {
		t.Fatalf("labels must be sanitised, got %q", feedback.Fields[0].Label)
	}
	if feedback.Fields[1].Type != model.FieldTypeParagraph {
		t.Fatalf("alias not resolved: %s", feedback.Fields[1].Type)
	}
	newsletter, _ := catalog.Get("Newsletter")
	if diff := cmp.Diff([]string{model.DefaultOption}, newsletter.Fields[1].Options); diff != "" {
		t.Fatalf("default option mismatch (-want +got):\n%s", diff)
	}

	merged := templates.Default().Merge(catalog)
	if len(merged.Names()) != 5 {
		t.Fatalf("expected 5 templates, got %v", merged.Names())
	}
}

func TestLoadFSErrors(t *testing.T) {
	cases := map[string]string{
		"empty.json":   ``,
		"bad.yaml":     "templates: [",
		"type.json":    `{"name":"X","fields":[{"type":"slider"}]}`,
		"nofield.json": `{"name":"X","fields":[]}`,
	}
	for name, body := range cases {
		fsys := fstest.MapFS{name: &fstest.MapFile{Data: []byte(body)}}
		if _, err := templates.LoadFS(fsys); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	dup := fstest.MapFS{
		"a.json": &fstest.MapFile{Data: []byte(`{"name":"X","fields":[{"type":"email"}]}`)},
		"b.json": &fstest.MapFile{Data: []byte(`{"name":"x","fields":[{"type":"email"}]}`)},
	}
	if _, err := templates.LoadFS(dup); err == nil {
		t.Fatalf("expected duplicate error")
	}
}
