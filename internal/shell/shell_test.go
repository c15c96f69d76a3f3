package shell_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/internal/shell"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

type stubDriver struct {
	inputs    []string
	selects   []int
	confirms  []bool
	textAreas []string
	infos     []string
	abort     bool
}

func (s *stubDriver) Input(_ context.Context, _ tui.InputConfig) (string, error) {
	if len(s.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[0]
	s.inputs = s.inputs[1:]
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ tui.ConfirmConfig) (bool, error) {
	if len(s.confirms) == 0 {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirms[0]
	s.confirms = s.confirms[1:]
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ tui.SelectConfig) (int, error) {
	if len(s.selects) == 0 {
		if s.abort {
			return -1, tui.ErrAborted
		}
		return -1, errors.New("no select scripted")
	}
	val := s.selects[0]
	s.selects = s.selects[1:]
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ tui.SelectConfig) ([]int, error) {
	return nil, errors.New("no multiselect scripted")
}

func (s *stubDriver) TextArea(_ context.Context, _ tui.TextAreaConfig) (string, error) {
	if len(s.textAreas) == 0 {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[0]
	s.textAreas = s.textAreas[1:]
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func openSession(t *testing.T, types ...model.FieldType) *session.Session {
	t.Helper()
	s, err := session.Open(context.Background(), session.WithIDGenerator(testsupport.SequentialIDs()))
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	t.Cleanup(s.Close)
	for _, ft := range types {
		if err := s.Editor().Add(model.FieldConfig{Type: ft}); err != nil {
			t.Fatalf("seed %s: %v", ft, err)
		}
	}
	return s
}

func TestRun_AddsFromPaletteAndQuits(t *testing.T) {
	s := openSession(t)
	driver := &stubDriver{selects: []int{0, 1, 13}}

	if err := shell.New(s, driver).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]string{"email-1"}, s.List().IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if driver.infos[0] != "(empty form)" {
		t.Fatalf("expected empty summary first, got %q", driver.infos[0])
	}
	if got := driver.infos[len(driver.infos)-1]; got != "1. Email [email]" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestDo_AddInsertsBeforeTarget(t *testing.T) {
	s := openSession(t, model.FieldTypeEmail)
	driver := &stubDriver{selects: []int{2, 1}}

	if err := shell.New(s, driver).Do(context.Background(), shell.ActionAdd); err != nil {
		t.Fatalf("add: %v", err)
	}
	if diff := cmp.Diff([]string{"phone-2", "email-1"}, s.List().IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestDo_MoveAndSwap(t *testing.T) {
	s := openSession(t, model.FieldTypeEmail, model.FieldTypePhone, model.FieldTypeDate)
	sh := shell.New(s, &stubDriver{selects: []int{2, 0}})
	if err := sh.Do(context.Background(), shell.ActionMove); err != nil {
		t.Fatalf("move: %v", err)
	}
	if diff := cmp.Diff([]string{"date-3", "email-1", "phone-2"}, s.List().IDs()); diff != "" {
		t.Fatalf("move mismatch (-want +got):\n%s", diff)
	}

	sh = shell.New(s, &stubDriver{selects: []int{0, 2}, confirms: []bool{true}})
	if err := sh.Do(context.Background(), shell.ActionSwap); err != nil {
		t.Fatalf("swap: %v", err)
	}
	if diff := cmp.Diff([]string{"phone-2", "email-1", "date-3"}, s.List().IDs()); diff != "" {
		t.Fatalf("swap mismatch (-want +got):\n%s", diff)
	}

	before := s.List()
	sh = shell.New(s, &stubDriver{selects: []int{0, 1}, confirms: []bool{false}})
	if err := sh.Do(context.Background(), shell.ActionSwap); err != nil {
		t.Fatalf("swap: %v", err)
	}
	if s.List() != before {
		t.Fatalf("declined switch must not change the list")
	}
}

func TestDo_EditIsOneUndoStep(t *testing.T) {
	s := openSession(t, model.FieldTypeEmail)
	original := s.List()
	driver := &stubDriver{
		inputs:   []string{"Work email", "you@example.com"},
		confirms: []bool{true},
		selects:  []int{0, 1},
	}

	if err := shell.New(s, driver).Do(context.Background(), shell.ActionEdit); err != nil {
		t.Fatalf("edit: %v", err)
	}
	field := s.List().At(0)
	want := model.FieldConfig{
		Type:        model.FieldTypeEmail,
		Label:       "Work email",
		Placeholder: "you@example.com",
		Required:    true,
		Width:       model.WidthHalf,
	}
	if diff := cmp.Diff(want, field.Config()); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	s.Undo()
	if s.List() != original {
		t.Fatalf("a single undo should revert the whole edit")
	}
}

func TestDo_EditChoiceOptions(t *testing.T) {
	s := openSession(t, model.FieldTypeRadio)
	driver := &stubDriver{
		inputs:    []string{"Size"},
		confirms:  []bool{false, true},
		selects:   []int{0, 0},
		textAreas: []string{"Small\n\n Large \n"},
	}

	if err := shell.New(s, driver).Do(context.Background(), shell.ActionEdit); err != nil {
		t.Fatalf("edit: %v", err)
	}
	field := s.List().At(0)
	if diff := cmp.Diff([]string{"Small", "Large"}, field.Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if !field.Multi() {
		t.Fatalf("expected multi-select radio group")
	}
}

func TestDo_EditParagraphStyle(t *testing.T) {
	s := openSession(t, model.FieldTypeParagraph)
	driver := &stubDriver{
		textAreas: []string{"Welcome"},
		inputs:    []string{"24"},
		selects:   []int{0, 2},
		confirms:  []bool{false, true},
	}

	if err := shell.New(s, driver).Do(context.Background(), shell.ActionEdit); err != nil {
		t.Fatalf("edit: %v", err)
	}
	attrs, ok := s.List().At(0).Attrs.(model.ParagraphAttrs)
	if !ok {
		t.Fatalf("expected paragraph attrs, got %T", s.List().At(0).Attrs)
	}
	want := model.ParagraphAttrs{Text: "Welcome", FontSize: 24, Align: model.AlignRight, Italic: true}
	if diff := cmp.Diff(want, attrs); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestDo_EditRefusesEmptyOptions(t *testing.T) {
	s := openSession(t, model.FieldTypeDropdown)
	driver := &stubDriver{
		inputs:    []string{"Pick"},
		confirms:  []bool{false},
		selects:   []int{0, 0},
		textAreas: []string{"  \n"},
	}

	if err := shell.New(s, driver).Do(context.Background(), shell.ActionEdit); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if diff := cmp.Diff([]string{model.DefaultOption}, s.List().At(0).Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infos) != 1 || !strings.Contains(driver.infos[0], "at least one option") {
		t.Fatalf("expected a refusal message, got %v", driver.infos)
	}
}

func TestRun_ClearAsksFirstAndReportsNotices(t *testing.T) {
	s := openSession(t, model.FieldTypeEmail)
	driver := &stubDriver{selects: []int{12, 12, 13}, confirms: []bool{false, true}}

	if err := shell.New(s, driver).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if s.List().Len() != 0 {
		t.Fatalf("expected cleared list")
	}
	notices := 0
	for _, info := range driver.infos {
		if info == "* Clear all used" {
			notices++
		}
	}
	if notices != 1 {
		t.Fatalf("expected one clear notice, got %v", driver.infos)
	}
}

func TestRun_InvalidLinkShowsNotice(t *testing.T) {
	s := openSession(t, model.FieldTypeEmail)
	driver := &stubDriver{selects: []int{9}, inputs: []string{"https://forms.example.com/?form=%%%"}, abort: true}

	if err := shell.New(s, driver).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	found := false
	for _, info := range driver.infos {
		found = found || info == "* Invalid form link!"
	}
	if !found {
		t.Fatalf("expected invalid link notice, got %v", driver.infos)
	}
	if diff := cmp.Diff([]string{"email-1"}, s.List().IDs()); diff != "" {
		t.Fatalf("list should be untouched (-want +got):\n%s", diff)
	}
}

func TestDo_PreviewHook(t *testing.T) {
	s := openSession(t)
	called := false
	sh := shell.New(s, &stubDriver{}, shell.WithPreview(func(_ context.Context, got *session.Session) error {
		called = got == s
		return nil
	}))
	if err := sh.Do(context.Background(), shell.ActionPreview); err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !called {
		t.Fatalf("expected preview hook to receive the session")
	}
}

func TestSummaryPairsHalfWidthFields(t *testing.T) {
	s := openSession(t)
	if err := s.Editor().Add(model.FieldConfig{Type: model.FieldTypeName, Label: "Name", Width: model.WidthHalf}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Editor().Add(model.FieldConfig{Type: model.FieldTypeEmail, Label: "Email", Required: true}); err != nil {
		t.Fatalf("add: %v", err)
	}

	want := "1. Name [name] | Name [name]\n2. Email [email] *"
	if got := shell.Summary(s.List()); got != want {
		t.Fatalf("summary mismatch:\nwant %q\ngot  %q", want, got)
	}
}
