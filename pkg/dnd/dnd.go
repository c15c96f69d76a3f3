// Package dnd interprets drag gestures over the builder. A Controller turns
// a start/over/end sequence into an insert (palette source) or a move (list
// source) on the editor; SwitchController drives the tap-based swap flow used
// on touch screens.
package dnd

import (
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/palette"
)

var (
	// ErrNotDragging is returned by Over, End and Cancel outside a drag.
	ErrNotDragging = errors.New("dnd: no drag in progress")
	// ErrDragInProgress is returned by Start while a drag is active.
	ErrDragInProgress = errors.New("dnd: drag already in progress")
	// ErrInvalidSource is returned for sources that name nothing.
	ErrInvalidSource = errors.New("dnd: invalid drag source")
)

// Editor is the slice of the field-list editor the controllers drive.
type Editor interface {
	List() *model.List
	Insert(cfg model.FieldConfig, index int) error
	Move(sourceID, targetID string) bool
	Swap(idA, idB string) bool
}

// State is the controller state.
type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// SourceKind tells palette drags from list drags.
type SourceKind int

const (
	FromPalette SourceKind = iota + 1
	FromList
)

// Source is the item picked up at the start of a drag.
type Source struct {
	Kind    SourceKind
	Type    model.FieldType
	FieldID string
}

// PaletteSource picks up a palette entry.
func PaletteSource(t model.FieldType) Source {
	return Source{Kind: FromPalette, Type: t}
}

// ListSource picks up an existing field.
func ListSource(id string) Source {
	return Source{Kind: FromList, FieldID: id}
}

// Target is a drop candidate: a field, the empty space after the last field,
// or nothing.
type Target struct {
	FieldID string
	End     bool
}

// NoTarget is the zero Target.
var NoTarget = Target{}

// EndOfList targets the space after the last field.
var EndOfList = Target{End: true}

// OnField targets the field with id.
func OnField(id string) Target {
	return Target{FieldID: id}
}

// IsZero reports whether the target names nothing.
func (t Target) IsZero() bool {
	return t.FieldID == "" && !t.End
}

// Action summarises what a drop did.
type Action int

const (
	ActionNone Action = iota
	ActionInsert
	ActionMove
)

func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionMove:
		return "move"
	default:
		return "none"
	}
}

// Result describes a completed drop.
type Result struct {
	Action Action
	Index  int
}

// Controller is the drag state machine. It serialises its own events but
// expects gestures to arrive one at a time.
type Controller struct {
	mu       sync.Mutex
	editor   Editor
	state    State
	source   Source
	target   Target
	defaults func(model.FieldType) (model.FieldConfig, error)
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithDefaults overrides how palette drops build their configuration.
func WithDefaults(fn func(model.FieldType) (model.FieldConfig, error)) ControllerOption {
	return func(c *Controller) {
		if fn != nil {
			c.defaults = fn
		}
	}
}

// NewController binds a controller to editor.
func NewController(editor Editor, options ...ControllerOption) *Controller {
	c := &Controller{
		editor: editor,
		defaults: func(t model.FieldType) (model.FieldConfig, error) {
			return palette.ConfigFor(string(t))
		},
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Source returns the active drag source.
func (c *Controller) Source() (Source, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.source, c.state == StateDragging
}

// Hover returns the index the dragged item would land at, which is where the
// drop placeholder is drawn. It reports false when nothing is hovered.
func (c *Controller) Hover() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateDragging || c.target.IsZero() {
		return 0, false
	}
	return c.targetIndex(), true
}

// Start begins a drag.
func (c *Controller) Start(source Source) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateDragging {
		return ErrDragInProgress
	}
	switch source.Kind {
	case FromPalette:
		if !source.Type.Valid() {
			return fmt.Errorf("%w: %w", ErrInvalidSource, model.ErrUnknownFieldType)
		}
	case FromList:
		if c.editor.List().Index(source.FieldID) < 0 {
			return fmt.Errorf("%w: unknown field %q", ErrInvalidSource, source.FieldID)
		}
	default:
		return ErrInvalidSource
	}
	c.state = StateDragging
	c.source = source
	c.target = NoTarget
	return nil
}

// Over records the current drop candidate. Hovering a field id that is not
// in the list clears the candidate.
func (c *Controller) Over(target Target) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateDragging {
		return ErrNotDragging
	}
	if target.FieldID != "" && c.editor.List().Index(target.FieldID) < 0 {
		target = NoTarget
	}
	c.target = target
	return nil
}

// End drops the dragged item on target, or on the last hovered candidate
// when target is zero, and returns to idle.
func (c *Controller) End(target Target) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateDragging {
		return Result{}, ErrNotDragging
	}
	if !target.IsZero() {
		c.target = target
	}
	defer c.reset()

	switch c.source.Kind {
	case FromPalette:
		cfg, err := c.defaults(c.source.Type)
		if err != nil {
			return Result{}, err
		}
		index := c.targetIndex()
		if err := c.editor.Insert(cfg, index); err != nil {
			return Result{}, err
		}
		return Result{Action: ActionInsert, Index: index}, nil
	case FromList:
		if c.target.FieldID == "" || c.target.FieldID == c.source.FieldID {
			return Result{}, nil
		}
		index := c.editor.List().Index(c.target.FieldID)
		if !c.editor.Move(c.source.FieldID, c.target.FieldID) {
			return Result{}, nil
		}
		return Result{Action: ActionMove, Index: index}, nil
	}
	return Result{}, nil
}

// Cancel abandons the drag without touching the list.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateDragging {
		return ErrNotDragging
	}
	c.reset()
	return nil
}

// targetIndex resolves the current target to a list index: the hovered
// field's index, or the list length for end-of-list and no target.
func (c *Controller) targetIndex() int {
	list := c.editor.List()
	if c.target.FieldID != "" {
		if idx := list.Index(c.target.FieldID); idx >= 0 {
			return idx
		}
	}
	return list.Len()
}

func (c *Controller) reset() {
	c.state = StateIdle
	c.source = Source{}
	c.target = NoTarget
}
