package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
)

var (
	widthOptions = []string{"Full width", "Half width"}
	alignOptions = []model.Align{model.AlignLeft, model.AlignCenter, model.AlignRight}
	styleOptions = []model.LineStyle{model.LineSolid, model.LineDashed, model.LineDotted}
)

// edit collects the settings of one field and applies them as a single
// patch, so the whole edit is one undo step.
func (sh *Shell) edit(ctx context.Context) error {
	id, ok, err := sh.pickField(ctx, "Edit which field?")
	if err != nil || !ok {
		return err
	}
	field, ok := sh.session.List().Get(id)
	if !ok {
		return nil
	}
	patch, err := sh.settings(ctx, field)
	if err != nil {
		return err
	}
	sh.session.Editor().Patch(id, patch)
	return nil
}

func (sh *Shell) settings(ctx context.Context, field model.Field) (model.Patch, error) {
	var patch model.Patch
	var err error
	switch attrs := field.Attrs.(type) {
	case model.InputAttrs:
		if patch, err = sh.labelAndRequired(ctx, patch, attrs.Label, attrs.Required); err != nil {
			return patch, err
		}
		if field.Type != model.FieldTypeFile {
			placeholder, err := sh.driver.Input(ctx, tui.InputConfig{Message: "Placeholder", Default: attrs.Placeholder})
			if err != nil {
				return patch, err
			}
			patch = patch.WithPlaceholder(placeholder)
		}
		return sh.width(ctx, patch, field.Width)
	case model.ChoiceAttrs:
		if patch, err = sh.labelAndRequired(ctx, patch, attrs.Label, attrs.Required); err != nil {
			return patch, err
		}
		if patch, err = sh.options(ctx, patch, attrs.Options); err != nil {
			return patch, err
		}
		if field.Type == model.FieldTypeRadio {
			multi, err := sh.driver.Confirm(ctx, tui.ConfirmConfig{Message: "Allow several answers?", Default: attrs.Multi})
			if err != nil {
				return patch, err
			}
			patch = patch.WithMulti(multi)
		}
		return sh.width(ctx, patch, field.Width)
	case model.ParagraphAttrs:
		text, err := sh.driver.TextArea(ctx, tui.TextAreaConfig{Message: "Text", Default: attrs.Text})
		if err != nil {
			return patch, err
		}
		patch = patch.WithText(text)
		size, err := sh.number(ctx, "Font size", attrs.FontSize)
		if err != nil {
			return patch, err
		}
		patch = patch.WithFontSize(size)
		idx, err := sh.driver.Select(ctx, tui.SelectConfig{Message: "Alignment", Options: alignNames(), DefaultIndex: alignIndex(attrs.Align)})
		if err != nil {
			return patch, err
		}
		if idx >= 0 && idx < len(alignOptions) {
			patch = patch.WithAlign(alignOptions[idx])
		}
		bold, err := sh.driver.Confirm(ctx, tui.ConfirmConfig{Message: "Bold?", Default: attrs.Bold})
		if err != nil {
			return patch, err
		}
		italic, err := sh.driver.Confirm(ctx, tui.ConfirmConfig{Message: "Italic?", Default: attrs.Italic})
		if err != nil {
			return patch, err
		}
		return patch.WithBold(bold).WithItalic(italic), nil
	case model.SeparatorAttrs:
		thickness, err := sh.number(ctx, "Thickness", attrs.Thickness)
		if err != nil {
			return patch, err
		}
		patch = patch.WithThickness(thickness)
		idx, err := sh.driver.Select(ctx, tui.SelectConfig{Message: "Line style", Options: styleNames(), DefaultIndex: styleIndex(attrs.Style)})
		if err != nil {
			return patch, err
		}
		if idx >= 0 && idx < len(styleOptions) {
			patch = patch.WithStyle(styleOptions[idx])
		}
		return patch, nil
	case model.SubmitAttrs:
		label, err := sh.driver.Input(ctx, tui.InputConfig{Message: "Button label", Default: attrs.Label})
		if err != nil {
			return patch, err
		}
		return patch.WithLabel(label), nil
	}
	return patch, nil
}

func (sh *Shell) labelAndRequired(ctx context.Context, patch model.Patch, label string, required bool) (model.Patch, error) {
	label, err := sh.driver.Input(ctx, tui.InputConfig{Message: "Label", Default: label})
	if err != nil {
		return patch, err
	}
	patch = patch.WithLabel(label)
	required, err = sh.driver.Confirm(ctx, tui.ConfirmConfig{Message: "Required?", Default: required})
	if err != nil {
		return patch, err
	}
	return patch.WithRequired(required), nil
}

func (sh *Shell) width(ctx context.Context, patch model.Patch, current model.Width) (model.Patch, error) {
	defaultIndex := 0
	if current == model.WidthHalf {
		defaultIndex = 1
	}
	idx, err := sh.driver.Select(ctx, tui.SelectConfig{Message: "Width", Options: widthOptions, DefaultIndex: defaultIndex})
	if err != nil {
		return patch, err
	}
	if idx == 1 {
		return patch.WithWidth(model.WidthHalf), nil
	}
	return patch.WithWidth(model.WidthFull), nil
}

// options edits choices one per line. Blank input keeps the current choices
// since a choice field always carries at least one.
func (sh *Shell) options(ctx context.Context, patch model.Patch, current []string) (model.Patch, error) {
	raw, err := sh.driver.TextArea(ctx, tui.TextAreaConfig{
		Message: "Options, one per line",
		Default: strings.Join(current, "\n"),
	})
	if err != nil {
		return patch, err
	}
	var options []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			options = model.AddOption(options, line)
		}
	}
	if len(options) == 0 {
		return patch, sh.driver.Info(ctx, "! "+model.ErrLastOption.Error())
	}
	return patch.WithOptions(options...), nil
}

func (sh *Shell) number(ctx context.Context, message string, current int) (int, error) {
	raw, err := sh.driver.Input(ctx, tui.InputConfig{
		Message: message,
		Default: strconv.Itoa(current),
		Validator: func(s string) error {
			if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
				return fmt.Errorf("%q is not a whole number", s)
			}
			return nil
		},
	})
	if err != nil {
		return current, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return current, nil
	}
	return n, nil
}

func alignNames() []string {
	out := make([]string, len(alignOptions))
	for i, a := range alignOptions {
		out[i] = string(a)
	}
	return out
}

func alignIndex(a model.Align) int {
	for i, candidate := range alignOptions {
		if candidate == a {
			return i
		}
	}
	return 0
}

func styleNames() []string {
	out := make([]string, len(styleOptions))
	for i, s := range styleOptions {
		out[i] = string(s)
	}
	return out
}

func styleIndex(s model.LineStyle) int {
	for i, candidate := range styleOptions {
		if candidate == s {
			return i
		}
	}
	return 0
}
