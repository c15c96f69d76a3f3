package model_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func mustField(t *testing.T, id string, cfg model.FieldConfig) model.Field {
	t.Helper()
	field, err := model.NewField(id, cfg)
	if err != nil {
		t.Fatalf("new field %s: %v", id, err)
	}
	return field
}

func TestParseFieldType(t *testing.T) {
	cases := []struct {
		raw  string
		want model.FieldType
	}{
		{raw: "email", want: model.FieldTypeEmail},
		{raw: " Radio ", want: model.FieldTypeRadio},
		{raw: "p", want: model.FieldTypeParagraph},
		{raw: "hr", want: model.FieldTypeSeparator},
	}
	for _, tc := range cases {
		got, err := model.ParseFieldType(tc.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: want %s, got %s", tc.raw, tc.want, got)
		}
	}

	if _, err := model.ParseFieldType("slider"); !errors.Is(err, model.ErrUnknownFieldType) {
		t.Fatalf("expected ErrUnknownFieldType, got %v", err)
	}
}

func TestNewFieldNormalisesAttributes(t *testing.T) {
	dropdown := mustField(t, "d1", model.FieldConfig{Type: model.FieldTypeDropdown, Width: 75})
	if dropdown.Width != model.WidthFull {
		t.Fatalf("expected width 100, got %d", dropdown.Width)
	}
	if diff := cmp.Diff([]string{model.DefaultOption}, dropdown.Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if dropdown.Multi() {
		t.Fatalf("dropdown must never be multi")
	}

	paragraph := mustField(t, "p1", model.FieldConfig{Type: "p", FontSize: 99, Align: "CENTER", Margin: -4})
	want := model.ParagraphAttrs{FontSize: model.MaxFontSize, Align: model.AlignCenter}
	if diff := cmp.Diff(want, paragraph.Attrs); diff != "" {
		t.Fatalf("paragraph attrs mismatch (-want +got):\n%s", diff)
	}

	separator := mustField(t, "s1", model.FieldConfig{Type: "hr", Style: "wavy"})
	if diff := cmp.Diff(model.SeparatorAttrs{Thickness: 1, Style: model.LineSolid}, separator.Attrs); diff != "" {
		t.Fatalf("separator attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultLabel(t *testing.T) {
	cases := map[model.FieldType]string{
		model.FieldTypeName:      "Name",
		model.FieldTypeTextarea:  "Textarea",
		model.FieldTypeFile:      "File Upload",
		model.FieldTypeSubmit:    "Submit",
		model.FieldTypeParagraph: "",
	}
	for ft, want := range cases {
		if got := model.DefaultLabel(ft); got != want {
			t.Fatalf("default label %s: want %q, got %q", ft, want, got)
		}
	}
	if got := model.Humanize("contact_emailAddress"); got != "Contact Email Address" {
		t.Fatalf("unexpected humanized label %q", got)
	}
}

func TestFieldJSONRoundTrip(t *testing.T) {
	fields := []model.Field{
		mustField(t, "name-1", model.FieldConfig{Type: model.FieldTypeName, Label: "First", Width: 50, Required: true, Value: model.TextValue("Ada")}),
		mustField(t, "radio-1", model.FieldConfig{Type: model.FieldTypeRadio, Label: "Pick", Options: []string{"A", "B"}, Multi: true, Value: model.SelectedValue("A")}),
		mustField(t, "file-1", model.FieldConfig{Type: model.FieldTypeFile, Value: model.FileValue(model.FileRef{Name: "cv.pdf", Size: 12, ContentType: "application/pdf"})}),
		mustField(t, "p-1", model.FieldConfig{Type: model.FieldTypeParagraph, Text: "Hello", Bold: true}),
	}
	list := model.NewList(fields...)

	data, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded model.List
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(list.Fields(), decoded.Fields()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestListUnmarshalRejectsNonArrays(t *testing.T) {
	inputs := []string{`{"id":"x"}`, `"text"`, `[1,2]`, `[{"id":"a","type":"slider"}]`}
	for _, input := range inputs {
		var list model.List
		if err := json.Unmarshal([]byte(input), &list); err == nil {
			t.Fatalf("expected error decoding %s", input)
		}
	}
}

func TestNilListIsEmpty(t *testing.T) {
	var list *model.List
	if list.Len() != 0 || list.Index("x") != -1 || list.Fields() != nil {
		t.Fatalf("nil list should behave as empty")
	}
	data, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("marshal nil list: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected [], got %s", data)
	}
}

func TestRowsPairsConsecutiveHalfWidthFields(t *testing.T) {
	widths := []model.Width{50, 50, 50, 100, 50, 50}
	fields := make([]model.Field, len(widths))
	for i, w := range widths {
		fields[i] = mustField(t, string(rune('a'+i)), model.FieldConfig{Type: model.FieldTypeName, Width: w})
	}

	var got [][]string
	for _, row := range model.Rows(fields) {
		var ids []string
		for _, f := range row.Fields {
			ids = append(ids, f.ID)
		}
		got = append(got, ids)
	}
	want := [][]string{{"a", "b"}, {"c"}, {"d"}, {"e", "f"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestPatchKeysAndValueOnly(t *testing.T) {
	if !model.SetValue(model.TextValue("x")).ValueOnly() {
		t.Fatalf("value patch should be value-only")
	}
	mixed := model.Patch{}.WithValue(model.TextValue("x")).WithLabel("L")
	if mixed.ValueOnly() {
		t.Fatalf("value plus label must not be value-only")
	}
	if diff := cmp.Diff([]string{model.KeyLabel, model.KeyValue}, mixed.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if !(model.Patch{}).WithOptions().IsEmpty() {
		t.Fatalf("empty options should not count as a key")
	}
}

func TestApplyIgnoresForeignAttributes(t *testing.T) {
	date := mustField(t, "d", model.FieldConfig{Type: model.FieldTypeDate, Label: "When"})
	patched := date.Apply(model.Patch{}.WithOptions("A").WithLabel("Day").WithWidth(50))

	if patched.Options() != nil {
		t.Fatalf("date field must not gain options")
	}
	if patched.Label() != "Day" || patched.Width != model.WidthHalf {
		t.Fatalf("unexpected patched field %+v", patched)
	}
	if date.Label() != "When" {
		t.Fatalf("apply must not mutate the receiver")
	}

	radio := mustField(t, "r", model.FieldConfig{Type: model.FieldTypeRadio})
	if !radio.Apply(model.Patch{}.WithMulti(true)).Multi() {
		t.Fatalf("radio should accept multi")
	}
	dropdown := mustField(t, "dd", model.FieldConfig{Type: model.FieldTypeDropdown})
	if dropdown.Apply(model.Patch{}.WithMulti(true)).Multi() {
		t.Fatalf("dropdown must ignore multi")
	}
}

func TestSettingsPatchRestoresConfig(t *testing.T) {
	original := mustField(t, "s", model.FieldConfig{Type: model.FieldTypeSeparator})
	edited := model.FieldConfig{Type: model.FieldTypeSeparator, Thickness: 4, Style: model.LineDotted, Bold: true, Width: 50}
	got := original.Apply(model.SettingsPatch(edited)).Config()
	want := edited
	want.Value = model.Value{}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestParagraphItalic(t *testing.T) {
	var field model.Field
	record := `{"id":"p-1","type":"p","text":"Note","italic":true,"value":""}`
	if err := json.Unmarshal([]byte(record), &field); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !field.Config().Italic {
		t.Fatalf("italic lost on decode: %+v", field.Attrs)
	}

	data, err := json.Marshal(field)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(data), `"italic":true`) {
		t.Fatalf("italic lost on encode: %s", data)
	}

	plain := field.Apply(model.Patch{}.WithItalic(false))
	if plain.Config().Italic {
		t.Fatalf("patch did not clear italic")
	}
	if diff := cmp.Diff([]string{model.KeyItalic}, model.Patch{}.WithItalic(true).Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	restored := plain.Apply(model.SettingsPatch(field.Config()))
	if !restored.Equal(field) {
		t.Fatalf("settings patch did not restore italic: %+v", restored.Attrs)
	}
}

func TestFieldEqual(t *testing.T) {
	base := mustField(t, "d", model.FieldConfig{Type: model.FieldTypeDropdown, Label: "Pick", Options: []string{"A", "B"}})
	tests := []struct {
		name  string
		other model.Field
		want  bool
	}{
		{name: "clone", other: base.Clone(), want: true},
		{name: "options", other: base.Apply(model.Patch{}.WithOptions("A", "C")), want: false},
		{name: "label", other: base.Apply(model.Patch{}.WithLabel("Choose")), want: false},
		{name: "value", other: base.Apply(model.SetValue(model.TextValue("A"))), want: false},
		{name: "type", other: mustField(t, "d", model.FieldConfig{Type: model.FieldTypeName, Label: "Pick"}), want: false},
		{name: "ignored attribute", other: base.Apply(model.Patch{}.WithThickness(3)), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Fatalf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimestampIDs(t *testing.T) {
	clock := func() time.Time { return time.UnixMilli(1700000000000) }
	gen := model.NewIDGenerator(model.WithClock(clock), model.WithEntropy(func() string { return "abc" }))
	if got := gen.NewID(model.FieldTypeEmail, 2); got != "email-1700000000000-abc-2" {
		t.Fatalf("unexpected id %q", got)
	}

	random := model.NewIDGenerator(model.WithClock(clock))
	a, b := random.NewID(model.FieldTypeName, 0), random.NewID(model.FieldTypeName, 0)
	if a == b {
		t.Fatalf("ids should differ, both %q", a)
	}
	if !strings.HasPrefix(a, "name-1700000000000-") {
		t.Fatalf("unexpected id layout %q", a)
	}
}

func TestOptionHelpers(t *testing.T) {
	options := model.AddOption([]string{"A"}, "B")
	options, err := model.RenameOption(options, 1, "C")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "C"}, options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	options, err = model.RemoveOption(options, 0)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := model.RemoveOption(options, 0); !errors.Is(err, model.ErrLastOption) {
		t.Fatalf("expected ErrLastOption, got %v", err)
	}
}

func TestValueJSONShapes(t *testing.T) {
	cases := []struct {
		raw  string
		want model.Value
	}{
		{raw: `null`, want: model.Value{}},
		{raw: `"hi"`, want: model.TextValue("hi")},
		{raw: `[]`, want: model.SelectedValue()},
		{raw: `{"name":"a.txt","size":3}`, want: model.FileValue(model.FileRef{Name: "a.txt", Size: 3})},
	}
	for _, tc := range cases {
		var got model.Value
		if err := json.Unmarshal([]byte(tc.raw), &got); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.raw, err)
		}
		if !tc.want.Equal(got) {
			t.Fatalf("unmarshal %s: want %+v, got %+v", tc.raw, tc.want, got)
		}
	}
	var bad model.Value
	if err := json.Unmarshal([]byte(`42`), &bad); err == nil {
		t.Fatalf("expected error for numeric value")
	}
}
