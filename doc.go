// Package formbuilder is the top-level entry point of the form builder. The
// working pieces live under pkg/: model holds fields and lists, fieldlist
// and history edit them with undo, dnd drives reordering, share encodes
// lists into links, and session ties editing to storage, templates and
// themes. This package re-exports the entry points most callers need.
package formbuilder
