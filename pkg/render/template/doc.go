// Package template wraps a pongo2 template set behind a small rendering
// contract so renderers can load their templates from embedded or on-disk
// filesystems and callers can override individual partials.
package template
