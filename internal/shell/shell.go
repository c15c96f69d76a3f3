// Package shell is the interactive form builder behind `formbuilder edit`.
// It drives a session through menu prompts: fields are added and reordered
// through the drag controllers, edited through patches, and every change
// persists as the session commits it.
package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/dnd"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/palette"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/session"
)

// Menu entries, in display order.
const (
	ActionAdd      = "Add field"
	ActionEdit     = "Edit field"
	ActionMove     = "Move field"
	ActionSwap     = "Swap fields"
	ActionRemove   = "Remove field"
	ActionUndo     = "Undo"
	ActionRedo     = "Redo"
	ActionTemplate = "Apply template"
	ActionShare    = "Share link"
	ActionLoad     = "Load link"
	ActionTheme    = "Toggle theme"
	ActionPreview  = "Preview"
	ActionClear    = "Clear all"
	ActionQuit     = "Quit"
)

var menu = []string{
	ActionAdd, ActionEdit, ActionMove, ActionSwap, ActionRemove,
	ActionUndo, ActionRedo, ActionTemplate, ActionShare, ActionLoad,
	ActionTheme, ActionPreview, ActionClear, ActionQuit,
}

const endOfForm = "At the end"

// PreviewFunc shows the current form, for example by writing an HTML file.
type PreviewFunc func(ctx context.Context, s *session.Session) error

// Option configures a Shell.
type Option func(*Shell)

// WithPreview sets the handler behind the Preview entry.
func WithPreview(fn PreviewFunc) Option {
	return func(sh *Shell) {
		sh.preview = fn
	}
}

// Shell runs the builder menu loop.
type Shell struct {
	session  *session.Session
	driver   tui.PromptDriver
	drag     *dnd.Controller
	switcher *dnd.SwitchController
	preview  PreviewFunc
}

// New binds a shell to s, prompting through driver.
func New(s *session.Session, driver tui.PromptDriver, options ...Option) *Shell {
	sh := &Shell{
		session:  s,
		driver:   driver,
		drag:     dnd.NewController(s.Editor()),
		switcher: dnd.NewSwitchController(s.Editor()),
	}
	for _, opt := range options {
		if opt != nil {
			opt(sh)
		}
	}
	return sh
}

// Run loops until the user quits or aborts. An abort is a clean exit.
func (sh *Shell) Run(ctx context.Context) error {
	if err := sh.flushNotices(ctx); err != nil {
		return err
	}
	for {
		if err := sh.driver.Info(ctx, Summary(sh.session.List())); err != nil {
			return err
		}
		idx, err := sh.driver.Select(ctx, tui.SelectConfig{Message: "What next?", Options: menu, PageSize: len(menu)})
		if err != nil {
			if errors.Is(err, tui.ErrAborted) {
				return nil
			}
			return err
		}
		if idx < 0 || idx >= len(menu) || menu[idx] == ActionQuit {
			return nil
		}
		if err := sh.Do(ctx, menu[idx]); err != nil {
			if errors.Is(err, tui.ErrAborted) {
				return nil
			}
			if ctx.Err() != nil {
				return err
			}
			if infoErr := sh.driver.Info(ctx, "! "+err.Error()); infoErr != nil {
				return infoErr
			}
		}
		if err := sh.flushNotices(ctx); err != nil {
			return err
		}
	}
}

// Do runs a single menu action.
func (sh *Shell) Do(ctx context.Context, action string) error {
	switch action {
	case ActionAdd:
		return sh.add(ctx)
	case ActionEdit:
		return sh.edit(ctx)
	case ActionMove:
		return sh.move(ctx)
	case ActionSwap:
		return sh.swap(ctx)
	case ActionRemove:
		id, ok, err := sh.pickField(ctx, "Remove which field?")
		if err != nil || !ok {
			return err
		}
		sh.session.Editor().Remove(id)
		return nil
	case ActionUndo:
		sh.session.Undo()
		return nil
	case ActionRedo:
		sh.session.Redo()
		return nil
	case ActionTemplate:
		return sh.applyTemplate(ctx)
	case ActionShare:
		link, err := sh.session.ShareURL()
		if err != nil {
			return err
		}
		return sh.driver.Info(ctx, link)
	case ActionLoad:
		raw, err := sh.driver.Input(ctx, tui.InputConfig{Message: "Paste a form link or token"})
		if err != nil || strings.TrimSpace(raw) == "" {
			return err
		}
		if err := sh.session.LoadLink(raw); err != nil && !errors.Is(err, session.ErrInvalidLink) {
			return err
		}
		return nil
	case ActionTheme:
		if err := sh.session.ToggleVariant(ctx); err != nil {
			return err
		}
		prefs := sh.session.Prefs()
		return sh.driver.Info(ctx, "Theme: "+prefs.Theme+" ("+prefs.Variant+")")
	case ActionPreview:
		if sh.preview == nil {
			return sh.driver.Info(ctx, "Preview is not available.")
		}
		return sh.preview(ctx, sh.session)
	case ActionClear:
		ok, err := sh.driver.Confirm(ctx, tui.ConfirmConfig{Message: "Remove every field and forget the history?"})
		if err != nil || !ok {
			return err
		}
		sh.session.Clear()
		return nil
	case ActionQuit:
		return nil
	}
	return fmt.Errorf("shell: unknown action %q", action)
}

// add runs a palette drag: pick the entry, then the field it lands on.
func (sh *Shell) add(ctx context.Context) error {
	entries := palette.Entries()
	titles := make([]string, len(entries))
	for i, entry := range entries {
		titles[i] = entry.Title
	}
	idx, err := sh.driver.Select(ctx, tui.SelectConfig{Message: "Field type", Options: titles, PageSize: len(titles)})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(entries) {
		return nil
	}
	if err := sh.drag.Start(dnd.PaletteSource(entries[idx].Type)); err != nil {
		return err
	}
	target, err := sh.pickTarget(ctx, "Insert before")
	if err != nil {
		_ = sh.drag.Cancel()
		return err
	}
	_, err = sh.drag.End(target)
	return err
}

func (sh *Shell) move(ctx context.Context) error {
	id, ok, err := sh.pickField(ctx, "Move which field?")
	if err != nil || !ok {
		return err
	}
	if err := sh.drag.Start(dnd.ListSource(id)); err != nil {
		return err
	}
	target, ok, err := sh.pickField(ctx, "Drop it on")
	if err != nil || !ok {
		_ = sh.drag.Cancel()
		return err
	}
	_, err = sh.drag.End(dnd.OnField(target))
	return err
}

func (sh *Shell) swap(ctx context.Context) error {
	id, ok, err := sh.pickField(ctx, "Switch which field?")
	if err != nil || !ok {
		return err
	}
	if err := sh.switcher.Begin(id); err != nil {
		return err
	}
	partner, ok, err := sh.pickField(ctx, "Switch with")
	if err != nil || !ok {
		sh.switcher.Abort()
		return err
	}
	if err := sh.switcher.Select(partner); err != nil {
		sh.switcher.Abort()
		return err
	}
	confirmed, err := sh.driver.Confirm(ctx, tui.ConfirmConfig{Message: "Confirm switch?", Default: true})
	if err != nil || !confirmed {
		sh.switcher.Abort()
		return err
	}
	_, err = sh.switcher.Confirm()
	return err
}

func (sh *Shell) applyTemplate(ctx context.Context) error {
	available := sh.session.Templates()
	if len(available) == 0 {
		return sh.driver.Info(ctx, "No templates available.")
	}
	names := make([]string, len(available))
	for i, tpl := range available {
		names[i] = tpl.Name
		if tpl.Description != "" {
			names[i] += " - " + tpl.Description
		}
	}
	idx, err := sh.driver.Select(ctx, tui.SelectConfig{Message: "Template", Options: names})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(available) {
		return nil
	}
	return sh.session.ApplyTemplate(available[idx].Name)
}

// pickField asks for one field of the list. ok is false for an empty list.
func (sh *Shell) pickField(ctx context.Context, message string) (string, bool, error) {
	fields := sh.session.List().Fields()
	if len(fields) == 0 {
		return "", false, sh.driver.Info(ctx, "The form has no fields yet.")
	}
	options := make([]string, len(fields))
	for i, field := range fields {
		options[i] = describe(field)
	}
	idx, err := sh.driver.Select(ctx, tui.SelectConfig{Message: message, Options: options})
	if err != nil {
		return "", false, err
	}
	if idx < 0 || idx >= len(fields) {
		return "", false, nil
	}
	return fields[idx].ID, true, nil
}

func (sh *Shell) pickTarget(ctx context.Context, message string) (dnd.Target, error) {
	fields := sh.session.List().Fields()
	if len(fields) == 0 {
		return dnd.EndOfList, nil
	}
	options := make([]string, 0, len(fields)+1)
	options = append(options, endOfForm)
	for _, field := range fields {
		options = append(options, describe(field))
	}
	idx, err := sh.driver.Select(ctx, tui.SelectConfig{Message: message, Options: options})
	if err != nil {
		return dnd.NoTarget, err
	}
	if idx <= 0 || idx > len(fields) {
		return dnd.EndOfList, nil
	}
	return dnd.OnField(fields[idx-1].ID), nil
}

func (sh *Shell) flushNotices(ctx context.Context) error {
	for _, notice := range sh.session.Notices() {
		if err := sh.driver.Info(ctx, "* "+notice.Message); err != nil {
			return err
		}
	}
	return nil
}

// Summary lists the form row by row, pairing half-width fields on one line.
func Summary(list *model.List) string {
	rows := list.Rows()
	if len(rows) == 0 {
		return "(empty form)"
	}
	var b strings.Builder
	for i, row := range rows {
		parts := make([]string, len(row.Fields))
		for j, field := range row.Fields {
			parts[j] = describe(field)
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(strings.Join(parts, " | "))
		if i < len(rows)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func describe(field model.Field) string {
	title := field.Label()
	switch attrs := field.Attrs.(type) {
	case model.ParagraphAttrs:
		title = clip(attrs.Text, 32)
	case model.SeparatorAttrs:
		title = "----"
	}
	if title == "" {
		title = string(field.Type)
	}
	out := fmt.Sprintf("%s [%s]", title, field.Type)
	if field.Required() {
		out += " *"
	}
	return out
}

func clip(text string, n int) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n-1]) + "…"
}
