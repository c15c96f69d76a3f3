package model

// Patch is a partial update of a field. Nil pointers (and a nil or empty
// Options slice) leave the attribute untouched. Attributes that do not apply
// to the target field's type are ignored when the patch is applied.
type Patch struct {
	Label       *string
	Placeholder *string
	Required    *bool
	Width       *Width
	Options     []string
	Multi       *bool
	Text        *string
	FontSize    *int
	Align       *Align
	Margin      *int
	Bold        *bool
	Italic      *bool
	Thickness   *int
	Style       *LineStyle
	Value       *Value
}

// Patch keys, named after the wire record attributes.
const (
	KeyLabel       = "label"
	KeyPlaceholder = "placeholder"
	KeyRequired    = "required"
	KeyWidth       = "width"
	KeyOptions     = "options"
	KeyMulti       = "multi"
	KeyText        = "text"
	KeyFontSize    = "fontSize"
	KeyAlign       = "align"
	KeyMargin      = "margin"
	KeyBold        = "bold"
	KeyItalic      = "italic"
	KeyThickness   = "thickness"
	KeyStyle       = "style"
	KeyValue       = "value"
)

// Keys lists the attributes the patch sets, in a fixed order.
func (p Patch) Keys() []string {
	var keys []string
	add := func(set bool, key string) {
		if set {
			keys = append(keys, key)
		}
	}
	add(p.Label != nil, KeyLabel)
	add(p.Placeholder != nil, KeyPlaceholder)
	add(p.Required != nil, KeyRequired)
	add(p.Width != nil, KeyWidth)
	add(len(p.Options) > 0, KeyOptions)
	add(p.Multi != nil, KeyMulti)
	add(p.Text != nil, KeyText)
	add(p.FontSize != nil, KeyFontSize)
	add(p.Align != nil, KeyAlign)
	add(p.Margin != nil, KeyMargin)
	add(p.Bold != nil, KeyBold)
	add(p.Italic != nil, KeyItalic)
	add(p.Thickness != nil, KeyThickness)
	add(p.Style != nil, KeyStyle)
	add(p.Value != nil, KeyValue)
	return keys
}

// IsEmpty reports whether the patch sets nothing.
func (p Patch) IsEmpty() bool {
	return len(p.Keys()) == 0
}

// ValueOnly reports whether the patch sets exactly one attribute and that
// attribute is the value. Only such patches bypass undo history; a patch that
// sets the value together with anything else is an ordinary edit.
func (p Patch) ValueOnly() bool {
	keys := p.Keys()
	return len(keys) == 1 && keys[0] == KeyValue
}

func (p Patch) WithLabel(label string) Patch             { p.Label = &label; return p }
func (p Patch) WithPlaceholder(placeholder string) Patch { p.Placeholder = &placeholder; return p }
func (p Patch) WithRequired(required bool) Patch         { p.Required = &required; return p }
func (p Patch) WithWidth(width Width) Patch              { p.Width = &width; return p }
func (p Patch) WithMulti(multi bool) Patch               { p.Multi = &multi; return p }
func (p Patch) WithText(text string) Patch               { p.Text = &text; return p }
func (p Patch) WithFontSize(size int) Patch              { p.FontSize = &size; return p }
func (p Patch) WithAlign(align Align) Patch              { p.Align = &align; return p }
func (p Patch) WithMargin(margin int) Patch              { p.Margin = &margin; return p }
func (p Patch) WithBold(bold bool) Patch                 { p.Bold = &bold; return p }
func (p Patch) WithItalic(italic bool) Patch             { p.Italic = &italic; return p }
func (p Patch) WithThickness(thickness int) Patch        { p.Thickness = &thickness; return p }
func (p Patch) WithStyle(style LineStyle) Patch          { p.Style = &style; return p }
func (p Patch) WithValue(value Value) Patch              { p.Value = &value; return p }

// WithOptions replaces the choice options. An empty list is ignored so a
// patch can never leave a choice field without options.
func (p Patch) WithOptions(options ...string) Patch {
	p.Options = append([]string(nil), options...)
	return p
}

// SetValue is shorthand for a value-only patch.
func SetValue(value Value) Patch {
	return Patch{}.WithValue(value)
}

// SettingsPatch converts an edited configuration into a patch covering every
// setting of cfg's type. The value is left out; settings dialogs never carry
// live input.
func SettingsPatch(cfg FieldConfig) Patch {
	p := Patch{}.WithWidth(cfg.Width)
	t := cfg.Type
	switch {
	case t.IsChoice():
		p = p.WithLabel(cfg.Label).WithRequired(cfg.Required).WithOptions(cfg.Options...).WithMulti(cfg.Multi)
	case t == FieldTypeParagraph:
		p = p.WithText(cfg.Text).WithFontSize(cfg.FontSize).WithAlign(cfg.Align).WithMargin(cfg.Margin).WithBold(cfg.Bold).WithItalic(cfg.Italic)
	case t == FieldTypeSeparator:
		p = p.WithThickness(cfg.Thickness).WithStyle(cfg.Style).WithBold(cfg.Bold)
	case t == FieldTypeSubmit:
		p = p.WithLabel(cfg.Label)
	default:
		p = p.WithLabel(cfg.Label).WithPlaceholder(cfg.Placeholder).WithRequired(cfg.Required)
	}
	return p
}

// Apply returns a copy of f with the patch merged in. The receiver is not
// modified.
func (f Field) Apply(p Patch) Field {
	out := f.Clone()
	if p.Width != nil {
		out.Width = NormalizeWidth(*p.Width)
	}
	if p.Value != nil {
		out.Value = p.Value.clone()
	}

	switch a := out.Attrs.(type) {
	case InputAttrs:
		setString(&a.Label, p.Label)
		setString(&a.Placeholder, p.Placeholder)
		setBool(&a.Required, p.Required)
		out.Attrs = a
	case ChoiceAttrs:
		setString(&a.Label, p.Label)
		setBool(&a.Required, p.Required)
		if len(p.Options) > 0 {
			a.Options = append([]string(nil), p.Options...)
		}
		if p.Multi != nil && out.Type == FieldTypeRadio {
			a.Multi = *p.Multi
		}
		out.Attrs = a
	case ParagraphAttrs:
		setString(&a.Text, p.Text)
		if p.FontSize != nil {
			a.FontSize = clampFontSize(*p.FontSize)
		}
		if p.Align != nil {
			a.Align = normalizeAlign(*p.Align)
		}
		if p.Margin != nil {
			a.Margin = nonNegative(*p.Margin)
		}
		setBool(&a.Bold, p.Bold)
		setBool(&a.Italic, p.Italic)
		out.Attrs = a
	case SeparatorAttrs:
		if p.Thickness != nil && *p.Thickness > 0 {
			a.Thickness = *p.Thickness
		}
		if p.Style != nil {
			a.Style = normalizeLineStyle(*p.Style)
		}
		setBool(&a.Bold, p.Bold)
		out.Attrs = a
	case SubmitAttrs:
		setString(&a.Label, p.Label)
		out.Attrs = a
	}
	return out
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
