// Package theme ships the builder's light and dark themes as go-theme
// manifests and resolves a theme/variant choice into renderer configuration.
package theme

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

const (
	// DefaultName is the bundled theme.
	DefaultName = "formbuilder"
	// VariantLight is the manifest's base tokens.
	VariantLight = "light"
	// VariantDark is the bundled dark variant.
	VariantDark = "dark"
	// StylesheetAsset is the asset key of the preview stylesheet.
	StylesheetAsset = "stylesheet"
)

// ErrUnknownTheme is returned when a theme or variant is not registered.
var ErrUnknownTheme = errors.New("theme: unknown theme")

// DefaultManifest returns the bundled manifest. Light is the base token set
// and dark is a variant overriding it.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"surface":    "#ffffff",
			"surface-2":  "#f3f4f6",
			"text":       "#111827",
			"muted":      "#6b7280",
			"border":     "#d1d5db",
			"accent":     "#2563eb",
			"accent-ink": "#ffffff",
			"error":      "#dc2626",
		},
		Templates: map[string]string{
			"page":  "page.tmpl",
			"field": "field.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/formbuilder",
			Files: map[string]string{
				StylesheetAsset: "preview.css",
			},
		},
		Variants: map[string]theme.Variant{
			VariantDark: {
				Tokens: map[string]string{
					"surface":   "#1f2937",
					"surface-2": "#111827",
					"text":      "#f9fafb",
					"muted":     "#9ca3af",
					"border":    "#374151",
					"accent":    "#3b82f6",
					"error":     "#f87171",
				},
			},
		},
	}
}

type manifestRegistry interface {
	Register(*theme.Manifest) error
}

// Selector resolves theme selections from registered manifests.
type Selector struct {
	mu             sync.RWMutex
	registry       manifestRegistry
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

// Ensure the selector satisfies the go-theme contract.
var _ theme.ThemeSelector = (*Selector)(nil)

// Option configures a Selector.
type Option func(*Selector)

// WithDefaults sets the theme and variant used when a request leaves them
// empty.
func WithDefaults(name, variant string) Option {
	return func(s *Selector) {
		if name = strings.TrimSpace(name); name != "" {
			s.defaultTheme = name
		}
		if variant = strings.TrimSpace(variant); variant != "" {
			s.defaultVariant = variant
		}
	}
}

// NewSelector registers the bundled manifest plus any extra manifests.
func NewSelector(extra []*theme.Manifest, options ...Option) (*Selector, error) {
	s := &Selector{
		registry:       theme.NewRegistry(),
		manifests:      make(map[string]*theme.Manifest),
		defaultTheme:   DefaultName,
		defaultVariant: VariantLight,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	for _, manifest := range append([]*theme.Manifest{DefaultManifest()}, extra...) {
		if err := s.Register(manifest); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register adds a manifest.
func (s *Selector) Register(manifest *theme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return errors.New("theme: manifest name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.manifests[manifest.Name]; exists {
		return fmt.Errorf("theme: manifest %q already registered", manifest.Name)
	}
	if err := s.registry.Register(manifest); err != nil {
		return fmt.Errorf("theme: register %q: %w", manifest.Name, err)
	}
	s.manifests[manifest.Name] = manifest
	return nil
}

// Names lists registered themes.
func (s *Selector) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variants lists the variants of a theme, base variant first.
func (s *Selector) Variants(name string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	manifest, ok := s.manifests[s.resolveName(name)]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(manifest.Variants)+1)
	for variant := range manifest.Variants {
		out = append(out, variant)
	}
	sort.Strings(out)
	return append([]string{VariantLight}, out...)
}

// Select implements theme.ThemeSelector. Empty arguments fall back to the
// selector defaults; "light" names the manifest's base tokens.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = s.resolveName(name)
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	variant = strings.ToLower(strings.TrimSpace(variant))
	if variant == "" {
		variant = s.defaultVariant
	}
	if variant != VariantLight {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q has no variant %q", ErrUnknownTheme, name, variant)
		}
	}
	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

func (s *Selector) resolveName(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return s.defaultTheme
}

// Toggle returns the variant a light/dark switch moves to.
func Toggle(variant string) string {
	if strings.EqualFold(variant, VariantDark) {
		return VariantLight
	}
	return VariantDark
}

// RendererConfig flattens a selection into what renderers consume: variant
// tokens override base tokens, each token becomes a `--<name>` CSS variable,
// and asset keys resolve against the variant or base asset prefix.
func RendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	variant, hasVariant := manifest.Variants[selection.Variant]

	tokens := mergeMaps(manifest.Tokens, nil)
	partials := mergeMaps(fallbacks, manifest.Templates)
	assets := mergeMaps(manifest.Assets.Files, nil)
	prefix := manifest.Assets.Prefix
	if hasVariant {
		tokens = mergeMaps(tokens, variant.Tokens)
		partials = mergeMaps(partials, variant.Templates)
		assets = mergeMaps(assets, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := assets[key]
			if !ok || file == "" {
				return ""
			}
			if prefix == "" {
				return file
			}
			return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
		},
	}
}

// Resolve selects and flattens in one step.
func (s *Selector) Resolve(name, variant string) (*theme.RendererConfig, error) {
	selection, err := s.Select(name, variant)
	if err != nil {
		return nil, err
	}
	return RendererConfig(selection, nil), nil
}

func mergeMaps(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overrides {
		out[key] = value
	}
	return out
}
