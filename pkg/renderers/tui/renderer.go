// Package tui fills in a form from the terminal: every input field becomes a
// prompt, answers are validated as they are entered, and the collected
// submission is serialized as the render output.
package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// Name identifies the renderer in a render.Registry.
const Name = "tui"

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	validator         *validation.Validator
	submitTransformer SubmitTransformer
	theme             Theme
	stat              func(string) (os.FileInfo, error)
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		validator:    validation.New(),
		theme:        DefaultTheme,
		stat:         os.Stat,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver()
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for every input field in list order and returns the
// serialized submission. Decorative fields are printed as they are reached.
// opts.Values prefill answers and opts.Errors are shown before the first
// prompt of the field they belong to.
func (r *Renderer) Render(ctx context.Context, list *model.List, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	prefill := make(map[string]model.Value, list.Len())
	for _, field := range list.Fields() {
		if field.Type.AcceptsInput() {
			prefill[field.ID] = opts.ValueFor(field)
		}
	}
	state := NewState(prefill, opts.Errors)

	if title := strings.TrimSpace(opts.Title); title != "" {
		if err := r.info(ctx, title); err != nil {
			return nil, err
		}
	}
	for _, message := range opts.FormErrors {
		if err := r.fail(ctx, message); err != nil {
			return nil, err
		}
	}

	for _, field := range list.Fields() {
		if err := r.promptField(ctx, field, state); err != nil {
			return nil, err
		}
	}

	submission := state.Submission()
	if r.submitTransformer != nil {
		var err error
		submission, err = r.submitTransformer(submission)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	result, err := r.validator.Validate(ctx, list, submission)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSubmission, result.Err())
	}

	return r.serialize(list, submission)
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, state *State) error {
	switch attrs := field.Attrs.(type) {
	case model.ParagraphAttrs:
		if strings.TrimSpace(attrs.Text) == "" {
			return nil
		}
		return r.info(ctx, attrs.Text)
	case model.SeparatorAttrs:
		return r.info(ctx, strings.Repeat(separatorRune(attrs.Style), 40))
	case model.SubmitAttrs:
		return nil
	}

	for _, message := range state.ErrorsFor(field.ID) {
		if err := r.fail(ctx, message); err != nil {
			return err
		}
	}

	for {
		current, _ := state.Value(field.ID)
		answer, err := r.ask(ctx, field, current)
		if err != nil {
			if errors.Is(err, errRetry) {
				continue
			}
			return err
		}
		if issue, ok := r.validator.Check(field, answer); !ok {
			state.Fail(field.ID, issue.Message)
			if err := r.fail(ctx, fmt.Sprintf("%s: %s", promptLabel(field), issue.Message)); err != nil {
				return err
			}
			continue
		}
		state.Set(field.ID, answer)
		return nil
	}
}

// errRetry asks promptField to show the prompt again without recording an
// answer.
var errRetry = errors.New("tui: retry prompt")

func (r *Renderer) ask(ctx context.Context, field model.Field, current model.Value) (model.Value, error) {
	message := promptLabel(field)
	if field.Required() {
		message += " *"
	}
	help := ""
	if attrs, ok := field.Attrs.(model.InputAttrs); ok {
		help = attrs.Placeholder
	}

	switch {
	case field.Type == model.FieldTypeTextarea:
		text, err := r.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: current.Text, Help: help})
		return model.TextValue(text), err
	case field.Type == model.FieldTypeFile:
		return r.askFile(ctx, message, help, current)
	case field.Multi():
		options := field.Options()
		picked, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  message,
			Options:  options,
			Defaults: indicesOf(options, current.Selected),
		})
		if err != nil {
			return model.Value{}, err
		}
		selected := make([]string, 0, len(picked))
		for _, idx := range picked {
			if idx >= 0 && idx < len(options) {
				selected = append(selected, options[idx])
			}
		}
		return model.SelectedValue(selected...), nil
	case field.Type.IsChoice():
		options := field.Options()
		defaultIndex := indexOf(options, current.Text)
		if defaultIndex < 0 {
			defaultIndex = 0
		}
		idx, err := r.driver.Select(ctx, SelectConfig{Message: message, Options: options, DefaultIndex: defaultIndex})
		if err != nil {
			return model.Value{}, err
		}
		if idx < 0 || idx >= len(options) {
			return model.Value{}, nil
		}
		return model.TextValue(options[idx]), nil
	default:
		text, err := r.driver.Input(ctx, InputConfig{Message: message, Default: current.Text, Help: help})
		return model.TextValue(strings.TrimSpace(text)), err
	}
}

func (r *Renderer) askFile(ctx context.Context, message, help string, current model.Value) (model.Value, error) {
	def := ""
	if current.File != nil {
		def = current.File.Name
	}
	if help == "" {
		help = "Path to the file to attach"
	}
	path, err := r.driver.Input(ctx, InputConfig{Message: message, Default: def, Help: help})
	if err != nil {
		return model.Value{}, err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return model.Value{}, nil
	}
	if current.File != nil && path == current.File.Name {
		return current, nil
	}
	info, err := r.stat(path)
	if err != nil || info.IsDir() {
		if err := r.fail(ctx, fmt.Sprintf("Cannot attach %q", path)); err != nil {
			return model.Value{}, err
		}
		return model.Value{}, errRetry
	}
	return model.FileValue(model.FileRef{
		Name:        filepath.Base(path),
		Size:        info.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
	}), nil
}

func (r *Renderer) serialize(list *model.List, submission validation.Submission) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for _, field := range list.Fields() {
			answer, ok := submission[field.ID]
			if !ok || !field.Type.AcceptsInput() {
				continue
			}
			switch {
			case answer.File != nil:
				values.Set(field.ID, answer.File.Name)
			case answer.Selected != nil:
				for _, s := range answer.Selected {
					values.Add(field.ID, s)
				}
			default:
				values.Set(field.ID, answer.Text)
			}
		}
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		var buf bytes.Buffer
		for _, field := range list.Fields() {
			if !field.Type.AcceptsInput() {
				continue
			}
			fmt.Fprintf(&buf, "%s: %s\n", promptLabel(field), displayValue(submission[field.ID]))
		}
		return buf.Bytes(), nil
	default:
		out := make(map[string]model.Value, len(submission))
		for _, field := range list.Fields() {
			if answer, ok := submission[field.ID]; ok && field.Type.AcceptsInput() {
				out[field.ID] = answer
			}
		}
		return json.MarshalIndent(out, "", "  ")
	}
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) fail(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

func promptLabel(field model.Field) string {
	if label := strings.TrimSpace(field.Label()); label != "" {
		return label
	}
	return model.DefaultLabel(field.Type)
}

func displayValue(v model.Value) string {
	switch {
	case v.File != nil:
		return v.File.Name
	case v.Selected != nil:
		return strings.Join(v.Selected, ", ")
	case v.Text == "":
		return "-"
	default:
		return v.Text
	}
}

func separatorRune(style model.LineStyle) string {
	switch style {
	case model.LineDashed:
		return "-"
	case model.LineDotted:
		return "."
	default:
		return "─"
	}
}
