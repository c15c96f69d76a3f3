package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/internal/shell"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/html"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/theme"
)

// PreviewFile is written next to the stored form by the edit shell.
const PreviewFile = "preview.html"

type previewFlags struct {
	output   string
	renderer string
	device   string
	theme    string
	variant  string
	title    string
	locale   string
}

// renderers builds the registry of output renderers. html is the default.
func (a *app) renderers(format string) (*render.Registry, error) {
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, err
	}
	tuiRenderer, err := tui.New(
		tui.WithPromptDriver(a.promptDriver()),
		tui.WithOutputFormat(tui.ParseOutputFormat(format)),
	)
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	registry.MustRegister(htmlRenderer)
	registry.MustRegister(tuiRenderer)
	return registry, nil
}

func (a *app) previewCmd() *cobra.Command {
	var flags previewFlags
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the stored form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd, "")
			if err != nil {
				return err
			}
			defer s.Close()

			registry, err := a.renderers("")
			if err != nil {
				return err
			}
			renderer, err := registry.Get(flags.renderer)
			if err != nil {
				return err
			}
			options := render.RenderOptions{
				Title:  flags.title,
				Device: render.ParseDevice(flags.device),
				Locale: flags.locale,
			}
			if flags.theme != "" || flags.variant != "" {
				if options.Theme, err = a.resolveTheme(s, flags.theme, flags.variant); err != nil {
					return err
				}
			}
			out, err := s.Render(cmd.Context(), renderer, options)
			if err != nil {
				return err
			}
			if flags.output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(flags.output, out, 0o644); err != nil {
				return fmt.Errorf("write preview: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Preview written to %s\n", flags.output)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&flags.output, "output", "o", "", "output file (stdout if empty)")
	f.StringVar(&flags.renderer, "renderer", html.Name, "renderer to use")
	f.StringVar(&flags.device, "device", string(render.DeviceDesktop), "preview frame: desktop, tablet or mobile")
	f.StringVar(&flags.theme, "theme", "", "theme name (stored preference if empty)")
	f.StringVar(&flags.variant, "variant", "", "theme variant: light or dark")
	f.StringVar(&flags.title, "title", "", "heading shown above the form")
	f.StringVar(&flags.locale, "locale", "", "locale of the page chrome")
	return cmd
}

// resolveTheme overrides the stored theme preference for one render without
// persisting it.
func (a *app) resolveTheme(s *session.Session, name, variant string) (*theme.RendererConfig, error) {
	prefs := s.Prefs()
	if name == "" {
		name = prefs.Theme
	}
	if variant == "" {
		variant = prefs.Variant
	}
	selector, err := theme.NewSelector(nil, theme.WithDefaults(a.cfg.Theme.Name, a.cfg.Theme.Variant))
	if err != nil {
		return nil, err
	}
	return selector.Resolve(name, variant)
}

func (a *app) fillCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill in the stored form in the terminal and print the submission",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd, "")
			if err != nil {
				return err
			}
			defer s.Close()

			registry, err := a.renderers(format)
			if err != nil {
				return err
			}
			renderer, err := registry.Get(tui.Name)
			if err != nil {
				return err
			}
			out, err := s.Render(cmd.Context(), renderer, render.RenderOptions{})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(tui.OutputFormatJSON), "output format: json, form or pretty")
	return cmd
}

func (a *app) editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [link]",
		Short: "Build the form interactively",
		Long: `Open the interactive builder over the stored form. A shared link or token
given as argument replaces the stored form before the builder starts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			link := ""
			if len(args) == 1 {
				link = args[0]
			}
			s, err := a.open(cmd, link)
			if err != nil {
				return err
			}
			defer s.Close()

			return shell.New(s, a.promptDriver(), shell.WithPreview(a.writePreview)).Run(cmd.Context())
		},
	}
}

func (a *app) writePreview(ctx context.Context, s *session.Session) error {
	renderer, err := html.New()
	if err != nil {
		return err
	}
	out, err := s.Render(ctx, renderer, render.RenderOptions{})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(a.cfg.Storage.Path, 0o755); err != nil {
		return err
	}
	path := filepath.Join(a.cfg.Storage.Path, PreviewFile)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	return a.promptDriver().Info(ctx, "Preview written to "+path)
}
