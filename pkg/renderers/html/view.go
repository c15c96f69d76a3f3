package html

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/theme"
)

// Message keys for the renderer's own strings.
const (
	KeyEmpty    = "preview.empty"
	KeyRequired = "preview.required"
	KeyNoFile   = "preview.no_file"
	KeySubmit   = "preview.submit"
	KeyTitle    = "preview.title"
)

type pageView struct {
	Lang         string       `json:"lang"`
	Title        string       `json:"title"`
	Device       string       `json:"device"`
	FrameStyle   string       `json:"frame_style,omitempty"`
	Stylesheet   string       `json:"stylesheet,omitempty"`
	Theme        themeView    `json:"theme"`
	HiddenFields []hiddenView `json:"hidden_fields,omitempty"`
	FormErrors   []string     `json:"form_errors,omitempty"`
	Empty        bool         `json:"empty"`
	Rows         []rowView    `json:"rows"`
	Text         chromeText   `json:"text"`
}

type themeView struct {
	Name       string `json:"name,omitempty"`
	Variant    string `json:"variant,omitempty"`
	Stylesheet string `json:"stylesheet,omitempty"`
	Style      string `json:"style,omitempty"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type chromeText struct {
	Empty    string `json:"empty"`
	Required string `json:"required"`
}

type rowView struct {
	Paired bool        `json:"paired"`
	Fields []fieldView `json:"fields"`
}

type fieldView struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	Kind        string       `json:"kind"`
	ControlID   string       `json:"control_id"`
	InputName   string       `json:"input_name"`
	InputType   string       `json:"input_type,omitempty"`
	LabelFor    bool         `json:"label_for"`
	Label       string       `json:"label,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	Required    bool         `json:"required"`
	Half        bool         `json:"half"`
	Value       string       `json:"value,omitempty"`
	FileName    string       `json:"file_name,omitempty"`
	Options     []optionView `json:"options,omitempty"`
	Text        string       `json:"text,omitempty"`
	Style       string       `json:"style,omitempty"`
	Errors      []string     `json:"errors,omitempty"`
}

type optionView struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

func buildPage(list *model.List, options render.RenderOptions, stylesheet string) pageView {
	device := options.Device
	if device == "" {
		device = render.DeviceDesktop
	}

	page := pageView{
		Lang:       langOf(options.Locale),
		Title:      options.Title,
		Device:     string(device),
		Stylesheet: stylesheet,
		Theme:      buildTheme(options),
		FormErrors: options.FormErrors,
		Empty:      list.Len() == 0,
		Text: chromeText{
			Empty:    render.Translate(options, KeyEmpty, "This form has no fields yet."),
			Required: render.Translate(options, KeyRequired, "Required"),
		},
	}
	if page.Title == "" {
		page.Title = render.Translate(options, KeyTitle, "Form preview")
	}
	if width := device.FrameWidth(); width > 0 {
		page.FrameStyle = fmt.Sprintf("max-width:%dpx", width)
	}
	for _, hidden := range render.SortedHiddenFields(options.HiddenFields) {
		page.HiddenFields = append(page.HiddenFields, hiddenView{Name: hidden.Name, Value: hidden.Value})
	}

	rows := list.Rows()
	page.Rows = make([]rowView, 0, len(rows))
	for _, row := range rows {
		view := rowView{Paired: row.Paired(), Fields: make([]fieldView, 0, len(row.Fields))}
		for _, field := range row.Fields {
			view.Fields = append(view.Fields, buildField(field, options))
		}
		page.Rows = append(page.Rows, view)
	}
	return page
}

func buildTheme(options render.RenderOptions) themeView {
	cfg := options.Theme
	if cfg == nil {
		return themeView{}
	}
	view := themeView{Name: cfg.Theme, Variant: cfg.Variant}
	if cfg.AssetURL != nil {
		view.Stylesheet = cfg.AssetURL(theme.StylesheetAsset)
	}
	if len(cfg.CSSVars) > 0 {
		names := make([]string, 0, len(cfg.CSSVars))
		for name := range cfg.CSSVars {
			names = append(names, name)
		}
		sort.Strings(names)
		decls := make([]string, 0, len(names))
		for _, name := range names {
			decls = append(decls, name+":"+cssValue(cfg.CSSVars[name]))
		}
		view.Style = strings.Join(decls, ";")
	}
	return view
}

func buildField(field model.Field, options render.RenderOptions) fieldView {
	view := fieldView{
		ID:        field.ID,
		Type:      string(field.Type),
		ControlID: "fb-" + field.ID,
		InputName: field.ID,
		Label:     field.Label(),
		Required:  field.Required(),
		Half:      field.Width == model.WidthHalf,
		Errors:    options.Errors[field.ID],
	}
	value := options.ValueFor(field)

	switch attrs := field.Attrs.(type) {
	case model.ParagraphAttrs:
		view.Kind = "paragraph"
		view.Text = attrs.Text
		view.Style = paragraphStyle(attrs)
		return view
	case model.SeparatorAttrs:
		view.Kind = "separator"
		view.Style = separatorStyle(attrs)
		return view
	case model.SubmitAttrs:
		view.Kind = "submit"
		if strings.TrimSpace(view.Label) == "" {
			view.Label = render.Translate(options, KeySubmit, "Submit")
		}
		return view
	case model.ChoiceAttrs:
		view.Options = choiceOptions(attrs.Options, value, attrs.Multi)
		switch {
		case field.Type == model.FieldTypeDropdown:
			view.Kind = "select"
			view.LabelFor = true
		case attrs.Multi:
			view.Kind = "checkbox"
			view.InputName = field.ID + "[]"
		default:
			view.Kind = "radio"
		}
		return view
	case model.InputAttrs:
		view.Placeholder = attrs.Placeholder
	}

	view.LabelFor = true
	switch field.Type {
	case model.FieldTypeTextarea:
		view.Kind = "textarea"
		view.Value = value.Text
	case model.FieldTypeFile:
		view.Kind = "file"
		view.FileName = render.Translate(options, KeyNoFile, "No file selected")
		if value.File != nil && value.File.Name != "" {
			view.FileName = value.File.Name
		}
	default:
		view.Kind = "input"
		view.InputType = inputType(field.Type)
		view.Value = value.Text
	}
	return view
}

func choiceOptions(options []string, value model.Value, multi bool) []optionView {
	out := make([]optionView, 0, len(options))
	for _, option := range options {
		selected := value.Text == option
		if multi {
			selected = slices.Contains(value.Selected, option)
		}
		out = append(out, optionView{Label: option, Value: option, Selected: selected})
	}
	return out
}

func inputType(t model.FieldType) string {
	switch t {
	case model.FieldTypeEmail:
		return "email"
	case model.FieldTypePhone:
		return "tel"
	case model.FieldTypeDate:
		return "date"
	default:
		return "text"
	}
}

func paragraphStyle(attrs model.ParagraphAttrs) string {
	decls := []string{
		fmt.Sprintf("font-size:%dpx", attrs.FontSize),
		"text-align:" + string(attrs.Align),
		fmt.Sprintf("margin:%dpx 0", attrs.Margin),
	}
	if attrs.Bold {
		decls = append(decls, "font-weight:bold")
	}
	if attrs.Italic {
		decls = append(decls, "font-style:italic")
	}
	return strings.Join(decls, ";")
}

func separatorStyle(attrs model.SeparatorAttrs) string {
	decls := []string{fmt.Sprintf("border-top:%dpx %s currentColor", attrs.Thickness, attrs.Style)}
	if attrs.Bold {
		decls = append(decls, "font-weight:bold")
	}
	return strings.Join(decls, ";")
}

func langOf(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return "en"
	}
	return strings.ReplaceAll(locale, "_", "-")
}

// cssValue drops characters that would end a declaration early.
func cssValue(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>':
			return -1
		}
		return r
	}, value)
}
