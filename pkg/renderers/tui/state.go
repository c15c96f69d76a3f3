package tui

import (
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// State tracks collected answers and pending error messages keyed by field
// id.
type State struct {
	values validation.Submission
	errors map[string][]string
}

// NewState seeds the state with prefilled values and errors.
func NewState(prefill map[string]model.Value, errs map[string][]string) *State {
	s := &State{
		values: make(validation.Submission, len(prefill)),
		errors: make(map[string][]string, len(errs)),
	}
	for id, value := range prefill {
		s.values[id] = value
	}
	for id, messages := range errs {
		s.errors[id] = append([]string(nil), messages...)
	}
	return s
}

// Submission returns the collected answers.
func (s *State) Submission() validation.Submission {
	if s == nil {
		return nil
	}
	return s.values
}

// Value returns the answer recorded for id.
func (s *State) Value(id string) (model.Value, bool) {
	if s == nil {
		return model.Value{}, false
	}
	v, ok := s.values[id]
	return v, ok
}

// Set records an answer and clears the errors pending for id.
func (s *State) Set(id string, value model.Value) {
	if s == nil {
		return
	}
	s.values[id] = value
	delete(s.errors, id)
}

// ErrorsFor returns the errors pending for id.
func (s *State) ErrorsFor(id string) []string {
	if s == nil || len(s.errors) == 0 {
		return nil
	}
	return s.errors[id]
}

// Fail replaces the errors pending for id.
func (s *State) Fail(id string, messages ...string) {
	if s == nil {
		return
	}
	s.errors[id] = append([]string(nil), messages...)
}
