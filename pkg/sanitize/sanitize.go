// Package sanitize strips markup from text that arrives from outside the
// session: template files and decoded share links.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// Text removes every tag from raw and returns the plain text. Entities the
// policy introduces are decoded again so "Q&A" survives unchanged.
func Text(raw string) string {
	if raw == "" || !strings.ContainsAny(raw, "<>&") {
		return raw
	}
	return html.UnescapeString(textSanitizer().Sanitize(raw))
}

// Config returns cfg with every free-text attribute passed through Text.
func Config(cfg model.FieldConfig) model.FieldConfig {
	cfg.Label = Text(cfg.Label)
	cfg.Placeholder = Text(cfg.Placeholder)
	cfg.Text = Text(cfg.Text)
	if len(cfg.Options) > 0 {
		options := make([]string, len(cfg.Options))
		for i, option := range cfg.Options {
			options[i] = Text(option)
		}
		cfg.Options = options
	}
	return cfg
}

// Configs sanitises a batch of configurations.
func Configs(configs []model.FieldConfig) []model.FieldConfig {
	out := make([]model.FieldConfig, len(configs))
	for i, cfg := range configs {
		out[i] = Config(cfg)
	}
	return out
}
