package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/attachevents/internal/config/loader"
)

// Config is the complete program configuration.
type Config struct {
	Binder   BinderConfig   `toml:"binder"`
	Logging  LoggingConfig  `toml:"logging"`
	Terminal TerminalConfig `toml:"terminal"`
}

// BinderConfig controls how behavior specs are bound.
type BinderConfig struct {
	// SelectorErrors is "fallthrough" or "propagate".
	SelectorErrors string `toml:"selector_errors"`
	// ProbeScope is "document" or "root".
	ProbeScope string `toml:"probe_scope"`
	// SkipEmptyKeymap suppresses the keypress listener when a level
	// declares no keystrokes.
	SkipEmptyKeymap bool `toml:"skip_empty_keymap"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level"`
	// Format is text or json.
	Format string `toml:"format"`
}

// TerminalConfig controls the interactive host.
type TerminalConfig struct {
	// Focusable selects the elements that receive focus.
	Focusable string `toml:"focusable"`
	// StatusLine shows the last script output at the bottom of the screen.
	StatusLine bool `toml:"status_line"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Binder: BinderConfig{
			SelectorErrors: "fallthrough",
			ProbeScope:     "document",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Terminal: TerminalConfig{
			Focusable:  "body *",
			StatusLine: true,
		},
	}
}

// Load builds the configuration from defaults, the TOML file at path (if
// path is non-empty and the file exists) and the process environment.
func Load(path string) (*Config, error) {
	var file loader.Loader
	if path != "" {
		file = loader.NewTOMLLoader(path)
	}
	return LoadLayers(file, loader.NewEnvLoader())
}

// LoadLayers decodes the given layers, in order, over the defaults.
// Nil layers are skipped.
func LoadLayers(layers ...loader.Loader) (*Config, error) {
	merged := make(map[string]any)
	for _, l := range layers {
		if l == nil {
			continue
		}
		data, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, data)
	}

	cfg := Default()
	if err := cfg.decode(merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data map[string]any) error {
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		TagName:          "toml",
		WeaklyTypedInput: true,
		Metadata:         &md,
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	if len(md.Unused) > 0 {
		slices.Sort(md.Unused)
		return &ValidationError{Path: md.Unused[0], Err: ErrUnknownSetting}
	}
	return nil
}

var allowed = map[string][]string{
	"binder.selector_errors": {"fallthrough", "propagate"},
	"binder.probe_scope":     {"document", "root"},
	"logging.level":          {"debug", "info", "warn", "warning", "error"},
	"logging.format":         {"text", "json"},
}

// Validate reports the first setting outside its allowed values.
// Comparison is case-insensitive; empty strings select the default.
func (c *Config) Validate() error {
	values := []struct {
		path  string
		value string
	}{
		{"binder.selector_errors", c.Binder.SelectorErrors},
		{"binder.probe_scope", c.Binder.ProbeScope},
		{"logging.level", c.Logging.Level},
		{"logging.format", c.Logging.Format},
	}
	for _, v := range values {
		if v.value == "" {
			continue
		}
		if !slices.Contains(allowed[v.path], strings.ToLower(v.value)) {
			return &ValidationError{Path: v.path, Value: v.value, Err: ErrInvalidValue}
		}
	}
	return nil
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// IsValidationError reports whether err is a configuration validation error.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
