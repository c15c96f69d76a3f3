package formbuilder

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/html"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/share"
	"github.com/goliatone/go-formbuilder/pkg/theme"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Session aliases session.Session so callers can hold one without importing
// the subpackage.
type Session = session.Session

// FieldConfig aliases model.FieldConfig, the shape of palette entries,
// template items and shared records.
type FieldConfig = model.FieldConfig

// NewSession exposes the session constructor from the top-level module.
func NewSession(ctx context.Context, options ...session.Option) (*Session, error) {
	return session.Open(ctx, options...)
}

// RenderHTML renders list as a standalone preview page using the bundled
// templates. An empty theme name or variant picks the default.
func RenderHTML(ctx context.Context, list *model.List, themeName, variant string, options RenderOptions) ([]byte, error) {
	if options.Theme == nil {
		selector, err := theme.NewSelector(nil)
		if err != nil {
			return nil, err
		}
		if options.Theme, err = selector.Resolve(themeName, variant); err != nil {
			return nil, err
		}
	}
	renderer, err := html.New()
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, list, options)
}

// ShareURL builds a link carrying list under base.
func ShareURL(base string, list *model.List) (string, error) {
	return share.BuildURL(base, list)
}

// DecodeLink reads the form carried by a link or bare token.
func DecodeLink(raw string) (*model.List, error) {
	return share.DecodeURL(raw)
}

// EmbeddedTemplates exposes the built-in HTML renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// AssetsFS exposes the preview stylesheet bundled with the HTML renderer so
// Go applications can serve it under the theme asset prefix.
//
// Typical mount:
//
//	mux.Handle("/assets/formbuilder/",
//	  http.StripPrefix("/assets/formbuilder/",
//	    http.FileServerFS(formbuilder.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}
