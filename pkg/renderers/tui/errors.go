package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrInvalidSubmission is returned when the collected answers still fail
	// validation after prompting, e.g. because a transformer changed them.
	ErrInvalidSubmission = errors.New("tui: submission failed validation")
)
