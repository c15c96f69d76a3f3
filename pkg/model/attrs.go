package model

// Attrs holds the attributes specific to one family of field types. The set
// of implementations is closed: InputAttrs, ChoiceAttrs, ParagraphAttrs,
// SeparatorAttrs and SubmitAttrs.
type Attrs interface {
	attrs()
	clone() Attrs
}

// InputAttrs backs the free-input types: name, email, phone, address, date,
// textarea and file.
type InputAttrs struct {
	Label       string
	Placeholder string
	Required    bool
}

// ChoiceAttrs backs dropdown and radio fields. Options is never empty on a
// field built by this package.
type ChoiceAttrs struct {
	Label    string
	Required bool
	Options  []string
	// Multi turns a radio group into a multi-select checkbox group.
	Multi bool
}

// ParagraphAttrs backs static text blocks.
type ParagraphAttrs struct {
	Text     string
	FontSize int
	Align    Align
	Margin   int
	Bold     bool
	Italic   bool
}

// SeparatorAttrs backs horizontal rules.
type SeparatorAttrs struct {
	Thickness int
	Style     LineStyle
	Bold      bool
}

// SubmitAttrs backs the submit button.
type SubmitAttrs struct {
	Label string
}

func (InputAttrs) attrs()     {}
func (ChoiceAttrs) attrs()    {}
func (ParagraphAttrs) attrs() {}
func (SeparatorAttrs) attrs() {}
func (SubmitAttrs) attrs()    {}

func (a InputAttrs) clone() Attrs { return a }

func (a ChoiceAttrs) clone() Attrs {
	a.Options = append([]string(nil), a.Options...)
	return a
}

func (a ParagraphAttrs) clone() Attrs { return a }
func (a SeparatorAttrs) clone() Attrs { return a }
func (a SubmitAttrs) clone() Attrs    { return a }

// DefaultAttrs returns the zero-configuration attributes for t.
func DefaultAttrs(t FieldType) Attrs {
	switch {
	case t.IsChoice():
		return ChoiceAttrs{Label: DefaultLabel(t), Options: []string{DefaultOption}}
	case t == FieldTypeParagraph:
		return ParagraphAttrs{FontSize: DefaultFontSize, Align: AlignLeft}
	case t == FieldTypeSeparator:
		return SeparatorAttrs{Thickness: DefaultThickness, Style: LineSolid}
	case t == FieldTypeSubmit:
		return SubmitAttrs{Label: DefaultLabel(t)}
	default:
		return InputAttrs{Label: DefaultLabel(t)}
	}
}

func attrsFromConfig(cfg FieldConfig) Attrs {
	t := cfg.Type
	switch {
	case t.IsChoice():
		options := nonEmptyOptions(cfg.Options)
		return ChoiceAttrs{
			Label:    cfg.Label,
			Required: cfg.Required,
			Options:  options,
			Multi:    t == FieldTypeRadio && cfg.Multi,
		}
	case t == FieldTypeParagraph:
		return ParagraphAttrs{
			Text:     cfg.Text,
			FontSize: clampFontSize(cfg.FontSize),
			Align:    normalizeAlign(cfg.Align),
			Margin:   nonNegative(cfg.Margin),
			Bold:     cfg.Bold,
			Italic:   cfg.Italic,
		}
	case t == FieldTypeSeparator:
		thickness := cfg.Thickness
		if thickness <= 0 {
			thickness = DefaultThickness
		}
		return SeparatorAttrs{
			Thickness: thickness,
			Style:     normalizeLineStyle(cfg.Style),
			Bold:      cfg.Bold,
		}
	case t == FieldTypeSubmit:
		return SubmitAttrs{Label: cfg.Label}
	default:
		return InputAttrs{
			Label:       cfg.Label,
			Placeholder: cfg.Placeholder,
			Required:    cfg.Required,
		}
	}
}

func nonEmptyOptions(options []string) []string {
	if len(options) == 0 {
		return []string{DefaultOption}
	}
	return append([]string(nil), options...)
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
