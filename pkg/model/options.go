package model

import (
	"errors"
	"fmt"
)

// ErrLastOption is returned when an edit would leave a choice field without
// options.
var ErrLastOption = errors.New("model: a choice field needs at least one option")

// AddOption appends an option, returning a new slice.
func AddOption(options []string, option string) []string {
	out := make([]string, 0, len(options)+1)
	out = append(out, options...)
	return append(out, option)
}

// RenameOption replaces the option at idx, returning a new slice.
func RenameOption(options []string, idx int, option string) ([]string, error) {
	if idx < 0 || idx >= len(options) {
		return nil, fmt.Errorf("model: option index %d out of range", idx)
	}
	out := append([]string(nil), options...)
	out[idx] = option
	return out, nil
}

// RemoveOption drops the option at idx. Removing the last remaining option is
// refused with ErrLastOption.
func RemoveOption(options []string, idx int) ([]string, error) {
	if idx < 0 || idx >= len(options) {
		return nil, fmt.Errorf("model: option index %d out of range", idx)
	}
	if len(options) <= 1 {
		return nil, ErrLastOption
	}
	out := make([]string, 0, len(options)-1)
	out = append(out, options[:idx]...)
	return append(out, options[idx+1:]...), nil
}
