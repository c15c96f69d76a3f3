package fieldlist

import (
	"github.com/goliatone/go-formbuilder/pkg/history"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Option configures an Editor.
type Option func(*Editor)

// WithIDGenerator overrides the id generator used for new fields.
func WithIDGenerator(ids model.IDGenerator) Option {
	return func(e *Editor) {
		if ids != nil {
			e.ids = ids
		}
	}
}

// WithHistoryLimit sets the undo depth of the editor's store.
func WithHistoryLimit(limit int) Option {
	return func(e *Editor) {
		e.limit = limit
	}
}

// Editor applies field-list operations through an undo/redo store.
type Editor struct {
	store *history.Store[*model.List]
	ids   model.IDGenerator
	limit int
}

// NewEditor returns an editor whose present list is seed. A nil seed starts
// from an empty list.
func NewEditor(seed *model.List, options ...Option) *Editor {
	e := &Editor{
		ids:   model.NewIDGenerator(),
		limit: history.DefaultLimit,
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if seed == nil {
		seed = model.NewList()
	}
	e.store = history.New(seed, history.WithLimit[*model.List](e.limit))
	return e
}

// Store exposes the underlying history store, mainly for subscriptions.
func (e *Editor) Store() *history.Store[*model.List] {
	return e.store
}

// List returns the present list.
func (e *Editor) List() *model.List {
	return e.store.Present()
}

// Fields returns copies of the present fields.
func (e *Editor) Fields() []model.Field {
	return e.List().Fields()
}

// Rows returns the present fields grouped into render rows.
func (e *Editor) Rows() []model.Row {
	return e.List().Rows()
}

// Add appends the fields cfg expands into and commits.
func (e *Editor) Add(cfg model.FieldConfig) error {
	next, err := AddField(e.List(), cfg, e.ids)
	if err != nil {
		return err
	}
	e.store.Commit(next)
	return nil
}

// Insert places the fields cfg expands into before index and commits.
func (e *Editor) Insert(cfg model.FieldConfig, index int) error {
	next, err := InsertFieldAt(e.List(), cfg, index, e.ids)
	if err != nil {
		return err
	}
	e.store.Commit(next)
	return nil
}

// Move performs an array move of sourceID to targetID's position.
func (e *Editor) Move(sourceID, targetID string) bool {
	return e.store.Commit(MoveField(e.List(), sourceID, targetID))
}

// Swap exchanges two fields.
func (e *Editor) Swap(idA, idB string) bool {
	return e.store.Commit(SwapFields(e.List(), idA, idB))
}

// Patch merges patch into the field with id. A patch that only sets the
// value is committed silently so typing never lands on the undo stack.
func (e *Editor) Patch(id string, patch model.Patch) bool {
	next := PatchField(e.List(), id, patch)
	if patch.ValueOnly() {
		return e.store.CommitSilent(next)
	}
	return e.store.Commit(next)
}

// SetValue records live input for the field with id.
func (e *Editor) SetValue(id string, value model.Value) bool {
	return e.Patch(id, model.SetValue(value))
}

// Remove drops the field with id.
func (e *Editor) Remove(id string) bool {
	return e.store.Commit(RemoveField(e.List(), id))
}

// ReplaceAll swaps the whole list for configs with fresh ids and commits.
func (e *Editor) ReplaceAll(configs []model.FieldConfig) error {
	next, err := ReplaceAll(configs, e.ids)
	if err != nil {
		return err
	}
	e.store.Commit(next)
	return nil
}

// Clear empties the list and wipes the undo and redo stacks.
func (e *Editor) Clear() {
	e.store.Reset(model.NewList())
}

// Undo steps back one committed change.
func (e *Editor) Undo() bool {
	return e.store.Undo()
}

// Redo re-applies the last undone change.
func (e *Editor) Redo() bool {
	return e.store.Redo()
}

// CanUndo reports whether there is anything to undo.
func (e *Editor) CanUndo() bool {
	return e.store.CanUndo()
}

// CanRedo reports whether there is anything to redo.
func (e *Editor) CanRedo() bool {
	return e.store.CanRedo()
}
