// Package session is the builder's application shell. It seeds an editor
// from a shared link, the persisted list, or nothing (in that order), saves
// the list after every change, and surfaces short notices for actions the
// user should see acknowledged.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/fieldlist"
	"github.com/goliatone/go-formbuilder/pkg/history"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/palette"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/sanitize"
	"github.com/goliatone/go-formbuilder/pkg/share"
	"github.com/goliatone/go-formbuilder/pkg/storage"
	"github.com/goliatone/go-formbuilder/pkg/templates"
	"github.com/goliatone/go-formbuilder/pkg/theme"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// ErrInvalidLink is returned when a shared link cannot be loaded.
var ErrInvalidLink = errors.New("session: invalid form link")

// Option configures a Session.
type Option func(*config)

type config struct {
	logger      *slog.Logger
	store       *storage.Store
	themes      *theme.Selector
	catalog     *templates.Catalog
	validator   *validation.Validator
	ids         model.IDGenerator
	limit       int
	link        string
	shareBase   string
	shareParam  string
	onNotice    func(Notice)
	defaultPref storage.Prefs
}

// WithLogger sets the logger used for persistence and link failures.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithStorage sets where the list and preferences are persisted. The
// default is an in-memory store.
func WithStorage(store *storage.Store) Option {
	return func(cfg *config) {
		if store != nil {
			cfg.store = store
		}
	}
}

// WithThemes sets the theme selector.
func WithThemes(selector *theme.Selector) Option {
	return func(cfg *config) {
		if selector != nil {
			cfg.themes = selector
		}
	}
}

// WithTemplates sets the template catalog. The default is the embedded set.
func WithTemplates(catalog *templates.Catalog) Option {
	return func(cfg *config) {
		if catalog != nil {
			cfg.catalog = catalog
		}
	}
}

// WithValidator sets the validator used by Validate.
func WithValidator(v *validation.Validator) Option {
	return func(cfg *config) {
		if v != nil {
			cfg.validator = v
		}
	}
}

// WithIDGenerator overrides how new field ids are generated.
func WithIDGenerator(ids model.IDGenerator) Option {
	return func(cfg *config) {
		if ids != nil {
			cfg.ids = ids
		}
	}
}

// WithHistoryLimit sets the undo depth.
func WithHistoryLimit(limit int) Option {
	return func(cfg *config) {
		cfg.limit = limit
	}
}

// WithLink opens the session from a shared link or bare token. A link wins
// over the persisted list.
func WithLink(raw string) Option {
	return func(cfg *config) {
		cfg.link = raw
	}
}

// WithShare sets the base URL and query parameter used for share links.
func WithShare(base, param string) Option {
	return func(cfg *config) {
		cfg.shareBase = base
		if param != "" {
			cfg.shareParam = param
		}
	}
}

// WithNoticeHandler is called synchronously for every notice.
func WithNoticeHandler(fn func(Notice)) Option {
	return func(cfg *config) {
		cfg.onNotice = fn
	}
}

// WithDefaultTheme sets the theme used when none was persisted.
func WithDefaultTheme(name, variant string) Option {
	return func(cfg *config) {
		cfg.defaultPref = storage.Prefs{Theme: name, Variant: variant}
	}
}

// Session owns one editing session.
type Session struct {
	editor    *fieldlist.Editor
	store     *storage.Store
	themes    *theme.Selector
	catalog   *templates.Catalog
	validator *validation.Validator
	ids       model.IDGenerator
	logger    *slog.Logger
	shareOpts []share.Option
	shareBase string

	persistCtx  context.Context
	unsubscribe func()

	mu       sync.Mutex
	prefs    storage.Prefs
	notices  []Notice
	onNotice func(Notice)
}

// Open seeds a session and starts persisting changes. Load failures of the
// persisted list or of the link never fail Open: they are logged and, for
// links, reported as a notice.
func Open(ctx context.Context, options ...Option) (*Session, error) {
	cfg := config{
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		limit:      history.DefaultLimit,
		shareParam: share.DefaultParam,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.store == nil {
		cfg.store = storage.New(nil)
	}
	if cfg.catalog == nil {
		cfg.catalog = templates.Default()
	}
	if cfg.validator == nil {
		cfg.validator = validation.New()
	}
	if cfg.ids == nil {
		cfg.ids = model.NewIDGenerator()
	}
	if cfg.themes == nil {
		selector, err := theme.NewSelector(nil, theme.WithDefaults(cfg.defaultPref.Theme, cfg.defaultPref.Variant))
		if err != nil {
			return nil, fmt.Errorf("session: themes: %w", err)
		}
		cfg.themes = selector
	}

	s := &Session{
		store:      cfg.store,
		themes:     cfg.themes,
		catalog:    cfg.catalog,
		validator:  cfg.validator,
		ids:        cfg.ids,
		logger:     cfg.logger,
		shareOpts:  []share.Option{share.WithParam(cfg.shareParam)},
		shareBase:  cfg.shareBase,
		persistCtx: context.WithoutCancel(ctx),
		onNotice:   cfg.onNotice,
	}

	seed, fromLink := s.seed(ctx, cfg.link)
	s.editor = fieldlist.NewEditor(seed,
		fieldlist.WithIDGenerator(cfg.ids),
		fieldlist.WithHistoryLimit(cfg.limit),
	)
	s.unsubscribe = s.editor.Store().Subscribe(s.persist)
	if fromLink {
		s.save(seed)
	}

	prefs, err := s.store.LoadPrefs(ctx)
	if err != nil {
		s.logger.Warn("load preferences", "error", err)
	}
	if prefs.Theme == "" && prefs.Variant == "" {
		prefs = cfg.defaultPref
	}
	s.prefs = prefs
	return s, nil
}

func (s *Session) seed(ctx context.Context, link string) (*model.List, bool) {
	if link != "" {
		list, err := s.linkList(link)
		if err == nil {
			return list, true
		}
		if !errors.Is(err, share.ErrNoToken) {
			s.logger.Warn("load shared form", "error", err)
			s.notify(NoticeInvalidLink)
		}
	}

	stored, err := s.store.LoadFields(ctx)
	if err != nil {
		s.logger.Warn("load persisted fields", "error", err)
	}
	return stored, false
}

func (s *Session) linkList(link string) (*model.List, error) {
	configs, err := s.decodeLink(link)
	if err != nil {
		return nil, err
	}
	return fieldlist.ReplaceAll(configs, s.ids)
}

// decodeLink decodes a link into sanitized field configs. Ids carried by the
// link are dropped; callers assign fresh ones.
func (s *Session) decodeLink(raw string) ([]model.FieldConfig, error) {
	decoded, err := share.DecodeURL(raw, s.shareOpts...)
	if err != nil {
		return nil, err
	}
	return sanitize.Configs(decoded.Configs()), nil
}

func (s *Session) persist(change history.Change[*model.List]) {
	if change.Op == history.OpReset {
		if err := s.store.ClearFields(s.persistCtx); err != nil {
			s.logger.Warn("clear persisted fields", "error", err)
		}
		return
	}
	s.save(change.Present)
}

func (s *Session) save(list *model.List) {
	if err := s.store.SaveFields(s.persistCtx, list); err != nil {
		s.logger.Warn("persist fields", "error", err, "fields", list.Len())
	}
}

// Close stops persisting changes.
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Editor exposes the field-list editor. Changes made through it are
// persisted like any other.
func (s *Session) Editor() *fieldlist.Editor {
	return s.editor
}

// List returns the present list.
func (s *Session) List() *model.List {
	return s.editor.List()
}

// AddFromPalette appends the palette entry named name.
func (s *Session) AddFromPalette(name string) error {
	cfg, err := palette.ConfigFor(name)
	if err != nil {
		return err
	}
	return s.editor.Add(cfg)
}

// Undo steps back and posts NoticeUndo.
func (s *Session) Undo() bool {
	ok := s.editor.Undo()
	s.notify(NoticeUndo)
	return ok
}

// Redo steps forward and posts NoticeRedo.
func (s *Session) Redo() bool {
	ok := s.editor.Redo()
	s.notify(NoticeRedo)
	return ok
}

// Clear empties the list, drops the history, removes the persisted list and
// posts NoticeClear.
func (s *Session) Clear() {
	s.editor.Clear()
	s.notify(NoticeClear)
}

// ApplyTemplate replaces the list with the named template's fields.
func (s *Session) ApplyTemplate(name string) error {
	tpl, err := s.catalog.Get(name)
	if err != nil {
		return err
	}
	if err := s.editor.ReplaceAll(tpl.Configs()); err != nil {
		return fmt.Errorf("session: apply template %q: %w", tpl.Name, err)
	}
	return nil
}

// Templates lists the available templates.
func (s *Session) Templates() []templates.Template {
	return s.catalog.List()
}

// LoadLink replaces the list with the form encoded in raw as an undoable
// change. On failure the list is left untouched and NoticeInvalidLink is
// posted.
func (s *Session) LoadLink(raw string) error {
	configs, err := s.decodeLink(raw)
	if err == nil {
		err = s.editor.ReplaceAll(configs)
	}
	if err != nil {
		s.logger.Warn("load shared form", "error", err)
		s.notify(NoticeInvalidLink)
		return fmt.Errorf("%w: %w", ErrInvalidLink, err)
	}
	return nil
}

// ShareURL returns a link to the present list.
func (s *Session) ShareURL() (string, error) {
	return share.BuildURL(s.shareBase, s.List(), s.shareOpts...)
}

// ShareToken returns the bare token for the present list.
func (s *Session) ShareToken() (string, error) {
	return share.Encode(s.List())
}

// Prefs returns the current preferences.
func (s *Session) Prefs() storage.Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// Theme resolves the current theme preference.
func (s *Session) Theme() (*gotheme.RendererConfig, error) {
	prefs := s.Prefs()
	return s.themes.Resolve(prefs.Theme, prefs.Variant)
}

// SetTheme validates and persists a theme choice.
func (s *Session) SetTheme(ctx context.Context, name, variant string) error {
	selection, err := s.themes.Select(name, variant)
	if err != nil {
		return err
	}
	prefs := storage.Prefs{Theme: selection.Theme, Variant: selection.Variant}
	s.mu.Lock()
	s.prefs = prefs
	s.mu.Unlock()
	if err := s.store.SavePrefs(ctx, prefs); err != nil {
		s.logger.Warn("persist preferences", "error", err)
		return err
	}
	return nil
}

// ToggleVariant flips between the light and dark variants.
func (s *Session) ToggleVariant(ctx context.Context) error {
	prefs := s.Prefs()
	variant := prefs.Variant
	if variant == "" {
		selection, err := s.themes.Select(prefs.Theme, "")
		if err != nil {
			return err
		}
		variant = selection.Variant
	}
	return s.SetTheme(ctx, prefs.Theme, theme.Toggle(variant))
}

// Validate checks the live values held by the list.
func (s *Session) Validate(ctx context.Context) (validation.Result, error) {
	list := s.List()
	return s.validator.Validate(ctx, list, validation.SubmissionFromList(list))
}

// Render renders the present list. The current theme and a share token
// hidden field are filled in unless options already carry them.
func (s *Session) Render(ctx context.Context, renderer render.Renderer, options render.RenderOptions) ([]byte, error) {
	if renderer == nil {
		return nil, errors.New("session: renderer is nil")
	}
	list := s.List()
	if options.Theme == nil {
		cfg, err := s.Theme()
		if err != nil {
			s.logger.Warn("resolve theme", "error", err)
		} else {
			options.Theme = cfg
		}
	}
	if _, ok := options.HiddenFields[render.ShareTokenField]; !ok {
		if token, err := share.Encode(list); err == nil {
			options.HiddenFields = render.MergeHiddenFields(options.HiddenFields, render.ShareToken(token))
		}
	}
	return renderer.Render(ctx, list, options)
}
