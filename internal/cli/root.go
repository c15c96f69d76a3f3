// Package cli wires the formbuilder command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/storage"
	"github.com/goliatone/go-formbuilder/pkg/templates"
)

// Execute runs the command tree against the process arguments.
func Execute(ctx context.Context) error {
	return NewRoot().ExecuteContext(ctx)
}

// Option customises the command tree, mostly for tests.
type Option func(*app)

// WithPromptDriver replaces the terminal prompts used by edit and fill.
func WithPromptDriver(driver tui.PromptDriver) Option {
	return func(a *app) {
		a.driver = driver
	}
}

// WithIDGenerator fixes the field ids handed out by sessions.
func WithIDGenerator(ids model.IDGenerator) Option {
	return func(a *app) {
		a.ids = ids
	}
}

type app struct {
	configPath  string
	storagePath string
	logLevel    string
	baseURL     string
	noColor     bool

	cfg    config.Config
	logger *slog.Logger
	driver tui.PromptDriver
	ids    model.IDGenerator
}

// NewRoot builds the formbuilder command and its subcommands.
func NewRoot(options ...Option) *cobra.Command {
	a := &app{}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}

	root := &cobra.Command{
		Use:           "formbuilder",
		Short:         "Build, preview and share forms from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "configuration file (default "+config.DefaultFile+")")
	flags.StringVar(&a.storagePath, "storage", "", "directory holding the working form")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&a.baseURL, "base-url", "", "base URL of share links")
	flags.BoolVar(&a.noColor, "no-color", false, "disable coloured log output")

	root.AddCommand(
		a.editCmd(),
		a.shareCmd(),
		a.loadCmd(),
		a.previewCmd(),
		a.fillCmd(),
		a.templatesCmd(),
		a.applyCmd(),
		a.clearCmd(),
		a.validateCmd(),
		a.schemaCmd(),
		a.themeCmd(),
		a.configCmd(),
	)
	return root
}

// setup loads the configuration file and lets flags override it.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.storagePath != "" {
		cfg.Storage.Path = a.storagePath
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.baseURL != "" {
		cfg.Share.BaseURL = a.baseURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level, _ := config.ParseLevel(cfg.Log.Level)
	a.logger = newLogger(cmd.ErrOrStderr(), level, !a.noColor && isTerminal(cmd.ErrOrStderr()))
	slog.SetDefault(a.logger)
	return nil
}

// open starts a session over the configured storage. A non-empty link seeds
// the session ahead of the stored form.
func (a *app) open(cmd *cobra.Command, link string) (*session.Session, error) {
	catalog, err := a.catalog()
	if err != nil {
		return nil, err
	}
	options := []session.Option{
		session.WithLogger(a.logger),
		session.WithStorage(storage.New(storage.NewFileBackend(a.cfg.Storage.Path))),
		session.WithTemplates(catalog),
		session.WithHistoryLimit(a.cfg.History.Limit),
		session.WithShare(a.cfg.Share.BaseURL, a.cfg.Share.Param),
		session.WithDefaultTheme(a.cfg.Theme.Name, a.cfg.Theme.Variant),
		session.WithLink(link),
	}
	if a.ids != nil {
		options = append(options, session.WithIDGenerator(a.ids))
	}
	return session.Open(cmd.Context(), options...)
}

func (a *app) catalog() (*templates.Catalog, error) {
	catalog := templates.Default()
	if a.cfg.Templates.Dir == "" {
		return catalog, nil
	}
	extra, err := templates.LoadFS(os.DirFS(a.cfg.Templates.Dir))
	if err != nil {
		return nil, fmt.Errorf("load templates from %s: %w", a.cfg.Templates.Dir, err)
	}
	return catalog.Merge(extra), nil
}

func (a *app) promptDriver() tui.PromptDriver {
	if a.driver != nil {
		return a.driver
	}
	return tui.NewSurveyDriver()
}

func printNotices(w io.Writer, s *session.Session) {
	for _, notice := range s.Notices() {
		fmt.Fprintln(w, notice.Message)
	}
}
