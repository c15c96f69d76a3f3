package dnd

import (
	"errors"
	"sync"
)

// ErrNoSwitch is returned when a switch step runs out of order.
var ErrNoSwitch = errors.New("dnd: no switch in progress")

// SwitchController runs the touch reordering flow: pick a field, pick a
// second field, then confirm the swap or abort.
type SwitchController struct {
	mu     sync.Mutex
	editor Editor
	active bool
	source string
	target string
}

// NewSwitchController binds a switch flow to editor.
func NewSwitchController(editor Editor) *SwitchController {
	return &SwitchController{editor: editor}
}

// Begin enters switch mode with id as the field to move.
func (s *SwitchController) Begin(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editor.List().Index(id) < 0 {
		return ErrInvalidSource
	}
	s.active, s.source, s.target = true, id, ""
	return nil
}

// Active reports whether switch mode is on.
func (s *SwitchController) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Pending returns the chosen source and target ids.
func (s *SwitchController) Pending() (source, target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source, s.target
}

// Select marks id as the swap partner. Selecting the source itself clears
// the partner.
func (s *SwitchController) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return ErrNoSwitch
	}
	if id == s.source || s.editor.List().Index(id) < 0 {
		s.target = ""
		return nil
	}
	s.target = id
	return nil
}

// Confirm swaps the pending pair and leaves switch mode. It reports whether
// the list changed.
func (s *SwitchController) Confirm() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return false, ErrNoSwitch
	}
	source, target := s.source, s.target
	s.active, s.source, s.target = false, "", ""
	if target == "" {
		return false, nil
	}
	return s.editor.Swap(source, target), nil
}

// Abort leaves switch mode without changes.
func (s *SwitchController) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active, s.source, s.target = false, "", ""
}
