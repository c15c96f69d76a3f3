// Package fieldlist implements the field-list operations of the builder.
//
// The package-level functions are pure: each takes a *model.List and returns
// the resulting list, handing back the very same pointer when the operation
// does not apply (unknown id, moving a field onto itself, an empty patch).
// Editor binds those functions to a history.Store so every mutation becomes
// an undoable commit, except value-only patches which are committed silently.
package fieldlist
