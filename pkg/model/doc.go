// Package model defines the field records a form is built from. A Field pairs
// the attributes every field shares (id, type, width, value) with a per-type
// Attrs variant, so choice options only exist on dropdown/radio fields and
// paragraph styling only on paragraph fields. Lists of fields are immutable
// values held behind a pointer: operations that change a list return a new
// *List, and operations that change nothing return the same pointer, which
// lets history stores detect no-ops by identity. The JSON wire format is the
// flat record used by persisted state and share links (`id`, `type`, `label`,
// `width`, `required`, `options`, `value`, plus styling keys such as
// `fontSize`, `align`, `thickness`).
package model
