// Package config loads the formbuilder TOML configuration file.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/goliatone/go-formbuilder/pkg/history"
	"github.com/goliatone/go-formbuilder/pkg/share"
	"github.com/goliatone/go-formbuilder/pkg/theme"
)

const (
	// DefaultFile is looked up in the working directory when no path is given.
	DefaultFile = "formbuilder.toml"
	// DefaultStoragePath is the directory holding the persisted form.
	DefaultStoragePath = ".formbuilder"
	// DefaultBaseURL prefixes share links.
	DefaultBaseURL = "http://localhost:8080/"
)

// Config is the full configuration document.
type Config struct {
	Storage   StorageConfig   `toml:"storage"`
	History   HistoryConfig   `toml:"history"`
	Share     ShareConfig     `toml:"share"`
	Theme     ThemeConfig     `toml:"theme"`
	Templates TemplatesConfig `toml:"templates"`
	Log       LogConfig       `toml:"log"`
}

type StorageConfig struct {
	Path string `toml:"path"`
}

type HistoryConfig struct {
	Limit int `toml:"limit"`
}

type ShareConfig struct {
	BaseURL string `toml:"base_url"`
	Param   string `toml:"param"`
}

type ThemeConfig struct {
	Name    string `toml:"name"`
	Variant string `toml:"variant"`
}

// TemplatesConfig points at a directory of extra JSON or YAML templates.
type TemplatesConfig struct {
	Dir string `toml:"dir"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Storage: StorageConfig{Path: DefaultStoragePath},
		History: HistoryConfig{Limit: history.DefaultLimit},
		Share:   ShareConfig{BaseURL: DefaultBaseURL, Param: share.DefaultParam},
		Theme:   ThemeConfig{Name: theme.DefaultName, Variant: theme.VariantLight},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads path on top of the defaults. A missing file is not an error;
// an empty path means DefaultFile.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, goerr.Wrap(err, "config: read", goerr.V("path", path))
	}
	return Parse(data)
}

// Parse decodes a TOML document on top of the defaults and validates it.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), goerr.Wrap(err, "config: decode")
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks values a TOML decoder cannot.
func (c Config) Validate() error {
	if c.History.Limit < 1 {
		return goerr.New("config: history.limit must be positive", goerr.V("limit", c.History.Limit))
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		return goerr.New("config: storage.path is required")
	}
	if strings.TrimSpace(c.Share.Param) == "" {
		return goerr.New("config: share.param is required")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return goerr.Wrap(err, "config: log.level")
	}
	return nil
}

// Encode renders c as TOML.
func (c Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, goerr.Wrap(err, "config: encode")
	}
	return data, nil
}

// ParseLevel maps a level name to a slog level. Empty means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, goerr.New("config: unknown log level", goerr.V("level", name))
	}
}
