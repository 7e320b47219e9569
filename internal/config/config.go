// Package config loads and validates keyline configuration.
//
// Configuration comes from three layers, lowest priority first: built-in
// defaults, a TOML or YAML file, and KEYLINE_* environment variables.
//
//	[editor]
//	quit_key = "<C-q>"
//	block_key = "<C-v>"
//	scroll_off = 3
//
//	[theme]
//	status_bg = "#1d3557"
//
//	[log]
//	level = "debug"
//	file = "/tmp/keyline.log"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keyline/internal/config/loader"
	"github.com/dshills/keyline/internal/input"
	"github.com/dshills/keyline/internal/input/key"
	"github.com/dshills/keyline/internal/renderer"
)

// Config is the complete keyline configuration.
type Config struct {
	Editor EditorConfig `toml:"editor" yaml:"editor"`
	Theme  ThemeConfig  `toml:"theme" yaml:"theme"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// EditorConfig holds editing behavior settings.
type EditorConfig struct {
	QuitKey   string `toml:"quit_key" yaml:"quit_key"`
	BlockKey  string `toml:"block_key" yaml:"block_key"`
	ScrollOff int    `toml:"scroll_off" yaml:"scroll_off"`
	TabWidth  int    `toml:"tab_width" yaml:"tab_width"`
}

// ThemeConfig holds colors as hex strings or color names.
type ThemeConfig struct {
	TextFG      string `toml:"text_fg" yaml:"text_fg"`
	StatusFG    string `toml:"status_fg" yaml:"status_fg"`
	StatusBG    string `toml:"status_bg" yaml:"status_bg"`
	InsertBG    string `toml:"insert_bg" yaml:"insert_bg"`
	VisualBG    string `toml:"visual_bg" yaml:"visual_bg"`
	SelectionBG string `toml:"selection_bg" yaml:"selection_bg"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// Log levels accepted by LogConfig.Level.
var logLevels = []string{"debug", "info", "warn", "error"}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			QuitKey:   "<C-q>",
			BlockKey:  "<C-v>",
			ScrollOff: 3,
			TabWidth:  4,
		},
		Theme: ThemeConfig{
			TextFG:      "default",
			StatusFG:    "white",
			StatusBG:    "navy",
			InsertBG:    "green",
			VisualBG:    "purple",
			SelectionBG: "gray",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/keyline/config.toml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "keyline", "config.toml")
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs  loader.FileSystem
	env *loader.EnvLoader
}

// WithFS reads the config file through fs.
func WithFS(fs loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithEnv replaces the environment variable loader.
func WithEnv(env *loader.EnvLoader) Option {
	return func(o *options) {
		o.env = env
	}
}

// Load builds the configuration from defaults, the file at path and the
// environment. An empty path or a missing file leaves the defaults in
// place. The result is validated.
func Load(path string, opts ...Option) (*Config, error) {
	o := options{fs: loader.DefaultFS(), env: loader.NewEnvLoader()}
	for _, opt := range opts {
		opt(&o)
	}

	merged := make(map[string]any)

	if path != "" {
		l, err := loader.ForPath(o.fs, path)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		fileCfg, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, fileCfg)
	}

	envCfg, err := o.env.Load()
	if err != nil {
		return nil, fmt.Errorf("config environment: %w", err)
	}
	merged = loader.DeepMerge(merged, envCfg)

	cfg := Default()
	if err := cfg.apply(merged); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply decodes a merged configuration map over c. Keys missing from m
// keep their current values.
func (c *Config) apply(m map[string]any) error {
	if len(m) == 0 {
		return nil
	}

	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding merged config: %w", err)
	}

	dec := toml.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return fmt.Errorf("unknown config keys: %s", serr.String())
		}
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}

// Validate checks every field and returns all problems joined together.
func (c *Config) Validate() error {
	var errs []error

	quit, quitErr := parseBinding(c.Editor.QuitKey)
	if quitErr != nil {
		errs = append(errs, &ValidationError{Path: "editor.quit_key", Value: c.Editor.QuitKey, Err: quitErr})
	}
	block, blockErr := parseBinding(c.Editor.BlockKey)
	if blockErr != nil {
		errs = append(errs, &ValidationError{Path: "editor.block_key", Value: c.Editor.BlockKey, Err: blockErr})
	}
	if quitErr == nil && blockErr == nil && quit.Equals(block) {
		errs = append(errs, &ValidationError{Path: "editor.block_key", Value: c.Editor.BlockKey, Err: errors.New("same key as editor.quit_key")})
	}
	if c.Editor.ScrollOff < 0 {
		errs = append(errs, &ValidationError{Path: "editor.scroll_off", Value: c.Editor.ScrollOff, Err: errors.New("must not be negative")})
	}
	if c.Editor.TabWidth < 1 {
		errs = append(errs, &ValidationError{Path: "editor.tab_width", Value: c.Editor.TabWidth, Err: errors.New("must be at least 1")})
	}

	for _, f := range c.Theme.fields() {
		if _, err := renderer.ParseColor(f.value); err != nil {
			errs = append(errs, &ValidationError{Path: "theme." + f.name, Value: f.value, Err: err})
		}
	}

	if !validLevel(c.Log.Level) {
		errs = append(errs, &ValidationError{
			Path:  "log.level",
			Value: c.Log.Level,
			Err:   fmt.Errorf("must be one of %s", strings.Join(logLevels, ", ")),
		})
	}

	return errors.Join(errs...)
}

// parseBinding parses a quit or block binding and rejects keys that
// already mean something on their own.
func parseBinding(spec string) (key.Event, error) {
	ev, err := key.Parse(spec)
	if err != nil {
		return key.Event{}, err
	}
	return ev, input.CheckBinding(ev)
}

func validLevel(level string) bool {
	for _, l := range logLevels {
		if strings.EqualFold(level, l) {
			return true
		}
	}
	return false
}

type themeField struct {
	name  string
	value string
}

func (t ThemeConfig) fields() []themeField {
	return []themeField{
		{"text_fg", t.TextFG},
		{"status_fg", t.StatusFG},
		{"status_bg", t.StatusBG},
		{"insert_bg", t.InsertBG},
		{"visual_bg", t.VisualBG},
		{"selection_bg", t.SelectionBG},
	}
}

// Palette converts the theme colors, reporting every invalid one.
func (t ThemeConfig) Palette() (renderer.Palette, error) {
	var p renderer.Palette
	var errs []error

	parse := func(dst *tcell.Color, spec string) {
		c, err := renderer.ParseColor(spec)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*dst = c
	}
	parse(&p.TextFG, t.TextFG)
	parse(&p.StatusFG, t.StatusFG)
	parse(&p.StatusBG, t.StatusBG)
	parse(&p.InsertBG, t.InsertBG)
	parse(&p.VisualBG, t.VisualBG)
	parse(&p.SelectionBG, t.SelectionBG)

	return p, errors.Join(errs...)
}

// RendererOptions returns renderer options for this configuration.
func (c *Config) RendererOptions() (renderer.Options, error) {
	p, err := c.Theme.Palette()
	if err != nil {
		return renderer.Options{}, err
	}
	return renderer.Options{
		ScrollOff: c.Editor.ScrollOff,
		TabWidth:  c.Editor.TabWidth,
		Theme:     renderer.NewTheme(p),
	}, nil
}

// ClassifierConfig returns the key bindings for the input classifier.
func (c *Config) ClassifierConfig() (input.Config, error) {
	quit, err := parseBinding(c.Editor.QuitKey)
	if err != nil {
		return input.Config{}, fmt.Errorf("editor.quit_key: %w", err)
	}
	block, err := parseBinding(c.Editor.BlockKey)
	if err != nil {
		return input.Config{}, fmt.Errorf("editor.block_key: %w", err)
	}
	return input.Config{QuitKey: quit, BlockKey: block}, nil
}

// ValidationError describes one invalid configuration value.
type ValidationError struct {
	// Path is the dot-separated path to the invalid value.
	Path string

	// Value is the invalid value.
	Value any

	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid value %v: %v", e.Path, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
