// Package html renders a field list as a standalone HTML preview page using
// pongo2 templates. The page honours the selected device frame and theme.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
)

// Name identifies the renderer in a render.Registry.
const Name = "html"

type Option func(*config)

type config struct {
	templateFS       []fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       *string
}

// WithTemplatesFS layers an alternate template bundle over the embedded one.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = append(cfg.templateFS, files)
		}
	}
}

// WithTemplatesDir loads template overrides from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet replaces the inlined stylesheet. An empty string disables
// it, which is useful when the theme links its own asset.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = &css
	}
}

type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	stylesheet string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	var cfg config
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engineOptions := make([]rendertemplate.Option, 0, len(cfg.templateFS)+2)
		if cfg.templateDir != "" {
			if _, err := os.Stat(cfg.templateDir); err != nil {
				return nil, fmt.Errorf("html renderer: templates dir: %w", err)
			}
			engineOptions = append(engineOptions, rendertemplate.WithBaseDir(cfg.templateDir))
		}
		for i := len(cfg.templateFS) - 1; i >= 0; i-- {
			engineOptions = append(engineOptions, rendertemplate.WithFS(cfg.templateFS[i]))
		}
		engineOptions = append(engineOptions, rendertemplate.WithFS(TemplatesFS()))

		engine, err := rendertemplate.New(engineOptions...)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	stylesheet := defaultStylesheet()
	if cfg.stylesheet != nil {
		stylesheet = *cfg.stylesheet
	}

	return &Renderer{templates: renderer, stylesheet: stylesheet}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the preview page. Field values come from options.Values
// when present and from the fields themselves otherwise.
func (r *Renderer) Render(ctx context.Context, list *model.List, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	view := buildPage(list, options, r.stylesheet)
	result, err := r.templates.RenderTemplate(pageTemplate(options), view)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func pageTemplate(options render.RenderOptions) string {
	if options.Theme != nil {
		if name := strings.TrimSpace(options.Theme.Partials["page"]); name != "" {
			return name
		}
	}
	return PageTemplate
}
