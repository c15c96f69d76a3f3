package render

import (
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Device selects the preview frame.
type Device string

const (
	DeviceDesktop Device = "desktop"
	DeviceTablet  Device = "tablet"
	DeviceMobile  Device = "mobile"
)

// ParseDevice maps a name onto a Device, defaulting to desktop.
func ParseDevice(name string) Device {
	switch Device(strings.ToLower(strings.TrimSpace(name))) {
	case DeviceTablet:
		return DeviceTablet
	case DeviceMobile:
		return DeviceMobile
	default:
		return DeviceDesktop
	}
}

// FrameWidth returns the preview frame width in CSS pixels. Desktop frames
// are fluid and report zero.
func (d Device) FrameWidth() int {
	switch d {
	case DeviceTablet:
		return 768
	case DeviceMobile:
		return 375
	default:
		return 0
	}
}

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the field list.
type RenderOptions struct {
	// Title is shown above the form.
	Title string
	// Device picks the preview frame width.
	Device Device
	// Values overrides the live values held by the fields, keyed by field id.
	Values map[string]model.Value
	// Errors surfaces validation feedback keyed by field id.
	Errors map[string][]string
	// FormErrors are messages not tied to a single field.
	FormErrors []string
	// HiddenFields are emitted as hidden inputs in the form element.
	HiddenFields map[string]string
	// Theme carries the resolved theme tokens and CSS variables.
	Theme *theme.RendererConfig
	// Locale and Translator localise the renderer's own chrome strings.
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}

// ValueFor returns the value to display for field, preferring Values.
func (o RenderOptions) ValueFor(field model.Field) model.Value {
	if v, ok := o.Values[field.ID]; ok {
		return v
	}
	return field.Value
}
