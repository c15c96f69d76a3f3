package fieldlist_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/goliatone/go-formbuilder/pkg/fieldlist"
	"github.com/goliatone/go-formbuilder/pkg/history"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// sequentialIDs hands out predictable ids for assertions.
func sequentialIDs() model.IDGenerator {
	n := 0
	return model.IDGeneratorFunc(func(t model.FieldType, _ int) string {
		n++
		return fmt.Sprintf("%s-%d", t, n)
	})
}

func listOf(t *testing.T, ids ...string) *model.List {
	t.Helper()
	fields := make([]model.Field, len(ids))
	for i, id := range ids {
		field, err := model.NewField(id, model.FieldConfig{Type: model.FieldTypeName, Label: id})
		if err != nil {
			t.Fatalf("new field: %v", err)
		}
		fields[i] = field
	}
	return model.NewList(fields...)
}

func TestAddHalfWidthNameCreatesPair(t *testing.T) {
	editor := fieldlist.NewEditor(nil)
	if err := editor.Add(model.FieldConfig{Type: model.FieldTypeName, Width: model.WidthHalf}); err != nil {
		t.Fatalf("add: %v", err)
	}
	fields := editor.Fields()
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	for _, f := range fields {
		if f.Type != model.FieldTypeName || f.Width != model.WidthHalf {
			t.Fatalf("unexpected field %+v", f)
		}
	}
	if fields[0].ID == fields[1].ID {
		t.Fatalf("ids must differ, both %q", fields[0].ID)
	}
	if len(editor.Rows()) != 1 {
		t.Fatalf("name halves should share a row")
	}
	if editor.Store().UndoDepth() != 1 {
		t.Fatalf("the pair should be a single undo step")
	}
}

func TestInsertClampsIndex(t *testing.T) {
	list := listOf(t, "a", "b")
	cases := []struct {
		index int
		want  []string
	}{
		{index: 0, want: []string{"email-1", "a", "b"}},
		{index: 1, want: []string{"a", "email-1", "b"}},
		{index: 2, want: []string{"a", "b", "email-1"}},
		{index: 9, want: []string{"a", "b", "email-1"}},
		{index: -1, want: []string{"a", "b", "email-1"}},
	}
	for _, tc := range cases {
		next, err := fieldlist.InsertFieldAt(list, model.FieldConfig{Type: model.FieldTypeEmail}, tc.index, sequentialIDs())
		if err != nil {
			t.Fatalf("insert at %d: %v", tc.index, err)
		}
		if diff := cmp.Diff(tc.want, next.IDs()); diff != "" {
			t.Fatalf("insert at %d mismatch (-want +got):\n%s", tc.index, diff)
		}
	}
}

func TestMoveVersusSwap(t *testing.T) {
	list := listOf(t, "A", "B", "C", "D")

	moved := fieldlist.MoveField(list, "A", "C")
	if diff := cmp.Diff([]string{"B", "C", "A", "D"}, moved.IDs()); diff != "" {
		t.Fatalf("move mismatch (-want +got):\n%s", diff)
	}
	backwards := fieldlist.MoveField(list, "D", "B")
	if diff := cmp.Diff([]string{"A", "D", "B", "C"}, backwards.IDs()); diff != "" {
		t.Fatalf("backward move mismatch (-want +got):\n%s", diff)
	}
	swapped := fieldlist.SwapFields(list, "A", "C")
	if diff := cmp.Diff([]string{"C", "B", "A", "D"}, swapped.IDs()); diff != "" {
		t.Fatalf("swap mismatch (-want +got):\n%s", diff)
	}
}

func TestNoopsReturnSameList(t *testing.T) {
	list := listOf(t, "A", "B")
	checks := map[string]*model.List{
		"move self":     fieldlist.MoveField(list, "A", "A"),
		"move missing":  fieldlist.MoveField(list, "A", "Z"),
		"swap missing":  fieldlist.SwapFields(list, "Z", "A"),
		"patch missing": fieldlist.PatchField(list, "Z", model.Patch{}.WithLabel("x")),
		"patch empty":   fieldlist.PatchField(list, "A", model.Patch{}),
		"remove":        fieldlist.RemoveField(list, "Z"),
	}
	for name, got := range checks {
		if got != list {
			t.Fatalf("%s: expected the same list pointer", name)
		}
	}

	editor := fieldlist.NewEditor(list)
	if editor.Remove("Z") || editor.Move("A", "A") {
		t.Fatalf("no-op edits must not commit")
	}
	if editor.CanUndo() {
		t.Fatalf("no-op edits must not reach the undo stack")
	}
}

func TestPatchWithoutEffectSkipsHistory(t *testing.T) {
	rule, err := model.NewField("hr", model.FieldConfig{Type: model.FieldTypeSeparator})
	if err != nil {
		t.Fatalf("new field: %v", err)
	}
	pick, err := model.NewField("pick", model.FieldConfig{Type: model.FieldTypeDropdown, Label: "Pick", Options: []string{"A", "B"}})
	if err != nil {
		t.Fatalf("new field: %v", err)
	}
	list := model.NewList(rule, pick)

	cases := map[string]struct {
		id    string
		patch model.Patch
	}{
		"label on separator":   {id: "hr", patch: model.Patch{}.WithLabel("ignored")},
		"options on separator": {id: "hr", patch: model.Patch{}.WithOptions("x")},
		"same label":           {id: "pick", patch: model.Patch{}.WithLabel("Pick")},
		"same options":         {id: "pick", patch: model.Patch{}.WithOptions("A", "B")},
		"multi on dropdown":    {id: "pick", patch: model.Patch{}.WithMulti(true)},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := fieldlist.PatchField(list, tc.id, tc.patch); got != list {
				t.Fatalf("expected the same list pointer")
			}
		})
	}

	editor := fieldlist.NewEditor(list)
	for i := 0; i <= history.DefaultLimit; i++ {
		editor.Patch("pick", model.Patch{}.WithLabel(fmt.Sprintf("Pick %d", i)))
	}
	if editor.Patch("hr", model.Patch{}.WithLabel("ignored")) {
		t.Fatalf("a patch that changes nothing must not commit")
	}
	undone := 0
	for editor.Undo() {
		undone++
	}
	if undone != history.DefaultLimit {
		t.Fatalf("expected %d real undo steps, got %d", history.DefaultLimit, undone)
	}
	if got, _ := editor.List().Get("pick"); got.Label() != "Pick 0" {
		t.Fatalf("oldest kept snapshot should carry the first edit, got %q", got.Label())
	}
}

func TestValueOnlyPatchBypassesHistory(t *testing.T) {
	editor := fieldlist.NewEditor(listOf(t, "A"))
	editor.Patch("A", model.Patch{}.WithLabel("First"))
	editor.SetValue("A", model.TextValue("Ada"))
	editor.SetValue("A", model.TextValue("Ada L"))

	if got := editor.Store().UndoDepth(); got != 1 {
		t.Fatalf("expected one undo entry, got %d", got)
	}
	field, _ := editor.List().Get("A")
	if field.Value.Text != "Ada L" {
		t.Fatalf("value not applied: %+v", field.Value)
	}

	editor.Patch("A", model.Patch{}.WithValue(model.TextValue("x")).WithRequired(true))
	if got := editor.Store().UndoDepth(); got != 2 {
		t.Fatalf("mixed patch should commit, undo depth %d", got)
	}
}

func TestRedoInvalidatedByCommit(t *testing.T) {
	editor := fieldlist.NewEditor(nil, fieldlist.WithIDGenerator(sequentialIDs()))
	_ = editor.Add(model.FieldConfig{Type: model.FieldTypeEmail})
	_ = editor.Add(model.FieldConfig{Type: model.FieldTypePhone})
	editor.Undo()
	if !editor.CanRedo() {
		t.Fatalf("expected redo")
	}
	editor.SetValue("email-1", model.TextValue("a@b.co"))
	if !editor.CanRedo() {
		t.Fatalf("silent update must keep redo")
	}
	_ = editor.Add(model.FieldConfig{Type: model.FieldTypeDate})
	if editor.CanRedo() {
		t.Fatalf("commit must clear redo")
	}
}

func TestReplaceAllAssignsFreshIDs(t *testing.T) {
	editor := fieldlist.NewEditor(listOf(t, "A"), fieldlist.WithIDGenerator(sequentialIDs()))
	incoming := listOf(t, "A", "B").Configs()
	if err := editor.ReplaceAll(incoming); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if diff := cmp.Diff([]string{"name-1", "name-2"}, editor.List().IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(incoming, editor.List().Configs()); diff != "" {
		t.Fatalf("configs mismatch (-want +got):\n%s", diff)
	}
	editor.Undo()
	if diff := cmp.Diff([]string{"A"}, editor.List().IDs()); diff != "" {
		t.Fatalf("undo mismatch (-want +got):\n%s", diff)
	}
}

func TestReplaceAllRejectsUnknownType(t *testing.T) {
	editor := fieldlist.NewEditor(nil)
	err := editor.ReplaceAll([]model.FieldConfig{{Type: "slider"}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if editor.List().Len() != 0 || editor.CanUndo() {
		t.Fatalf("failed replace must leave the editor untouched")
	}
}

func TestConcreteScenario(t *testing.T) {
	editor := fieldlist.NewEditor(nil)
	_ = editor.Add(model.FieldConfig{Type: model.FieldTypeName, Width: 50})
	if editor.List().Len() != 2 {
		t.Fatalf("expected 2 fields")
	}
	_ = editor.Add(model.FieldConfig{Type: model.FieldTypeEmail})
	if editor.List().Len() != 3 {
		t.Fatalf("expected 3 fields")
	}
	emailID := editor.Fields()[2].ID
	editor.Remove(emailID)
	for _, f := range editor.Fields() {
		if f.Type != model.FieldTypeName {
			t.Fatalf("expected only name halves, got %s", f.Type)
		}
	}
	editor.Undo()
	if editor.List().Len() != 3 || editor.List().Index(emailID) != 2 {
		t.Fatalf("email should be restored")
	}
	editor.Clear()
	if editor.List().Len() != 0 {
		t.Fatalf("clear should empty the list")
	}
	if editor.Undo() {
		t.Fatalf("undo after clear must be a no-op")
	}
}

func TestIDsStayUnique(t *testing.T) {
	types := model.FieldTypes()
	rapid.Check(t, func(rt *rapid.T) {
		editor := fieldlist.NewEditor(nil)
		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			ids := editor.List().IDs()
			switch rapid.IntRange(0, 5).Draw(rt, "op") {
			case 0:
				ft := rapid.SampledFrom(types).Draw(rt, "type")
				width := rapid.SampledFrom([]model.Width{50, 100}).Draw(rt, "width")
				_ = editor.Add(model.FieldConfig{Type: ft, Width: width})
			case 1:
				ft := rapid.SampledFrom(types).Draw(rt, "type")
				_ = editor.Insert(model.FieldConfig{Type: ft}, rapid.IntRange(-2, 10).Draw(rt, "index"))
			case 2:
				if len(ids) > 1 {
					editor.Move(rapid.SampledFrom(ids).Draw(rt, "src"), rapid.SampledFrom(ids).Draw(rt, "dst"))
				}
			case 3:
				if len(ids) > 0 {
					editor.Remove(rapid.SampledFrom(ids).Draw(rt, "id"))
				}
			case 4:
				editor.Undo()
			case 5:
				_ = editor.ReplaceAll(editor.List().Configs())
			}
			if !editor.List().HasUniqueIDs() {
				rt.Fatalf("duplicate ids after step %d: %v", i, editor.List().IDs())
			}
		}
	})
}
