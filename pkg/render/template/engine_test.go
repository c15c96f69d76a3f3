package template_test

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/render/template"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

//go:embed testdata/templates/*.tmpl
var embeddedTemplates embed.FS

func newEngine(t *testing.T, options ...template.Option) *template.Engine {
	t.Helper()
	sub, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := template.New(append([]template.Option{template.WithFS(sub)}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	var out strings.Builder
	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &out)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if out.String() != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, out.String())
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, template.WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "STAGING\n" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!\n" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_StructDataUsesJSONNames(t *testing.T) {
	type item struct {
		Label string `json:"label"`
	}
	engine := newEngine(t)

	result, err := engine.RenderTemplate("list.tmpl", struct {
		Items []item `json:"items"`
	}{Items: []item{{Label: "One"}, {Label: "<Two>"}}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "<ul><li>One</li><li>&lt;Two&gt;</li></ul>\n"; result != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, result)
	}
}

func TestEngine_RenderString(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.Render("{{ greeting|trim }} world", map[string]any{"greeting": "  hi "})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "hi world" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_BaseDirShadowsFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "item.tmpl"), []byte("<li>* {{ item.label }}</li>"), 0o600); err != nil {
		t.Fatalf("write override: %v", err)
	}
	sub, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := template.New(template.WithBaseDir(dir), template.WithFS(sub))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.RenderTemplate("list", map[string]any{
		"items": []any{map[string]any{"label": "One"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "<ul><li>* One</li></ul>\n"; result != want {
		t.Fatalf("override not used\nwant: %q\n got: %q", want, result)
	}
}

func TestEngine_RequiresSource(t *testing.T) {
	if _, err := template.New(); err == nil {
		t.Fatalf("expected error without template sources")
	}
	if _, err := template.New(template.WithBaseDir(filepath.Join(t.TempDir(), "missing"))); err == nil {
		t.Fatalf("expected error for missing base dir")
	}
}
