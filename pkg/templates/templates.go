// Package templates provides named starter forms. A bundled catalogue ships
// with the module and more templates can be loaded from JSON or YAML files.
package templates

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/sanitize"
)

// ErrNotFound is returned when no template matches a name.
var ErrNotFound = errors.New("templates: template not found")

//go:embed defaults/*
var embeddedDefaults embed.FS

// Template is a named list of field configurations.
type Template struct {
	Name        string              `json:"name" yaml:"name"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []model.FieldConfig `json:"fields" yaml:"fields"`
}

// Configs returns copies of the template fields.
func (t Template) Configs() []model.FieldConfig {
	out := make([]model.FieldConfig, len(t.Fields))
	for i, cfg := range t.Fields {
		cfg.Options = append([]string(nil), cfg.Options...)
		out[i] = cfg
	}
	return out
}

// Catalog is an ordered, name-indexed set of templates.
type Catalog struct {
	templates []Template
	index     map[string]int
}

// NewCatalog validates and indexes templates. Names are matched
// case-insensitively and must be unique.
func NewCatalog(templates ...Template) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(templates))}
	for _, tpl := range templates {
		if err := c.add(tpl, "catalog"); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(tpl Template, source string) error {
	normalised, err := normaliseTemplate(tpl, source)
	if err != nil {
		return err
	}
	key := Key(normalised.Name)
	if _, exists := c.index[key]; exists {
		return fmt.Errorf("templates: duplicate template %q (%s)", normalised.Name, source)
	}
	c.index[key] = len(c.templates)
	c.templates = append(c.templates, normalised)
	return nil
}

// Key normalises a template name for lookups.
func Key(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// List returns every template in catalogue order.
func (c *Catalog) List() []Template {
	if c == nil {
		return nil
	}
	out := make([]Template, len(c.templates))
	for i, tpl := range c.templates {
		out[i] = tpl
		out[i].Fields = tpl.Configs()
	}
	return out
}

// Names returns the template names in catalogue order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.templates))
	for i, tpl := range c.templates {
		out[i] = tpl.Name
	}
	return out
}

// Get looks a template up by name.
func (c *Catalog) Get(name string) (Template, error) {
	if c != nil {
		if idx, ok := c.index[Key(name)]; ok {
			tpl := c.templates[idx]
			tpl.Fields = tpl.Configs()
			return tpl, nil
		}
	}
	return Template{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Merge returns a catalogue holding c's templates followed by other's.
// Templates in other replace same-named templates of c in place.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	out := &Catalog{index: make(map[string]int)}
	for _, src := range []*Catalog{c, other} {
		if src == nil {
			continue
		}
		for _, tpl := range src.templates {
			key := Key(tpl.Name)
			if idx, ok := out.index[key]; ok {
				out.templates[idx] = tpl
				continue
			}
			out.index[key] = len(out.templates)
			out.templates = append(out.templates, tpl)
		}
	}
	return out
}

// Default returns the bundled catalogue.
func Default() *Catalog {
	sub, err := fs.Sub(embeddedDefaults, "defaults")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	catalog, err := LoadFS(sub)
	if err != nil {
		panic(fmt.Sprintf("templates: bundled defaults: %v", err))
	}
	return catalog
}

// LoadFS walks fsys and loads every .json, .yaml and .yml file. A file holds
// either a single template or a document with a `templates` list. Files are
// visited in lexical order. A nil fsys yields an empty catalogue.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog := &Catalog{index: make(map[string]int)}
	if fsys == nil {
		return catalog, nil
	}

	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isTemplateFile(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("templates: walk: %w", err)
	}
	sort.Strings(paths)

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("templates: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return nil, err
		}
		for _, tpl := range doc {
			if err := catalog.add(tpl, path); err != nil {
				return nil, err
			}
		}
	}
	return catalog, nil
}

type documentFile struct {
	Templates []Template `json:"templates" yaml:"templates"`
}

func parseDocument(data []byte, source string) ([]Template, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("templates: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err == nil && len(doc.Templates) > 0 {
		return doc.Templates, nil
	}
	var single Template
	if err := json.Unmarshal(data, &single); err == nil && single.Name != "" {
		return []Template{single}, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Templates) > 0 {
		return doc.Templates, nil
	}
	single = Template{}
	if err := yaml.Unmarshal(data, &single); err == nil && single.Name != "" {
		return []Template{single}, nil
	}

	return nil, fmt.Errorf("templates: parse %s: invalid JSON or YAML template", source)
}

func normaliseTemplate(tpl Template, source string) (Template, error) {
	name := strings.TrimSpace(sanitize.Text(tpl.Name))
	if name == "" {
		return Template{}, fmt.Errorf("templates: %s defines a template without a name", source)
	}
	if len(tpl.Fields) == 0 {
		return Template{}, fmt.Errorf("templates: template %q (%s) has no fields", name, source)
	}
	out := Template{
		Name:        name,
		Description: sanitize.Text(strings.TrimSpace(tpl.Description)),
		Fields:      make([]model.FieldConfig, len(tpl.Fields)),
	}
	for i, cfg := range sanitize.Configs(tpl.Fields) {
		t, err := model.ParseFieldType(string(cfg.Type))
		if err != nil {
			return Template{}, fmt.Errorf("templates: template %q (%s) field %d: %w", name, source, i, err)
		}
		cfg.Type = t
		cfg.Width = model.NormalizeWidth(cfg.Width)
		if t.IsChoice() && len(cfg.Options) == 0 {
			cfg.Options = []string{model.DefaultOption}
		}
		cfg.Value = model.Value{}
		out.Fields[i] = cfg
	}
	return out, nil
}

func isTemplateFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
