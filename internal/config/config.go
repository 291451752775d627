// Package config provides the docstorm engine configuration.
//
// Configuration is resolved in three layers, higher overriding lower:
//
//	3. Environment variables (DOCSTORM_*)
//	2. Config file (TOML or YAML, chosen by extension)
//	1. Built-in defaults
//
// A missing config file is not an error; the defaults apply.
package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dshills/docstorm/internal/config/loader"
	"github.com/dshills/docstorm/internal/logging"
	"github.com/dshills/docstorm/internal/schema"
	"github.com/dshills/docstorm/internal/worktree"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "DOCSTORM_"

// Config is the complete engine configuration.
type Config struct {
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Editing EditingConfig `toml:"editing" yaml:"editing"`
	Schema  SchemaConfig  `toml:"schema" yaml:"schema"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// Prefix is written on every log line.
	Prefix string `toml:"prefix" yaml:"prefix"`
}

// EditingConfig holds the defaults of working tree edits.
type EditingConfig struct {
	// DeleteDirection is "backward" or "forward".
	DeleteDirection string `toml:"delete_direction" yaml:"delete_direction"`
	MergeAdjacent   bool   `toml:"merge_adjacent" yaml:"merge_adjacent"`
	NormalizeText   bool   `toml:"normalize_text" yaml:"normalize_text"`
}

// SchemaConfig locates the schema definition. An empty path selects the
// built-in basic schema.
type SchemaConfig struct {
	Path string `toml:"path" yaml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Prefix: "docstorm"},
		Editing: EditingConfig{DeleteDirection: "backward"},
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs  loader.FileSystem
	env loader.Loader
}

// WithFileSystem reads config files from fsys.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnv replaces the environment source. A nil loader disables
// environment overrides.
func WithEnv(l loader.Loader) Option {
	return func(o *options) {
		o.env = l
	}
}

// Load resolves the configuration from the defaults, the file at path (if
// path is not empty) and the environment, then validates it.
func Load(path string, opts ...Option) (*Config, error) {
	o := options{fs: loader.DefaultFS(), env: loader.NewEnvLoader(EnvPrefix)}
	for _, opt := range opts {
		opt(&o)
	}

	var sources []loader.Loader
	if path != "" {
		l, err := loader.ForFile(o.fs, path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, l)
	}
	if o.env != nil {
		sources = append(sources, o.env)
	}

	merged := make(map[string]any)
	for _, src := range sources {
		m, err := src.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, m)
	}

	cfg := Default()
	if err := decode(merged, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode applies a settings map on top of cfg.
func decode(settings map[string]any, cfg *Config) error {
	if len(settings) == 0 {
		return nil
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &ValidationError{Path: "config", Message: err.Error()}
	}
	return nil
}

// Validate checks every setting with a closed set of values.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "logging.level", Message: "must be debug, info, warn or error", Value: c.Logging.Level}
	}
	if _, err := worktree.ParseDirection(c.Editing.DeleteDirection); err != nil {
		return &ValidationError{Path: "editing.delete_direction", Message: err.Error(), Value: c.Editing.DeleteDirection}
	}
	return nil
}

// TreeOptions returns the worktree options for the editing settings.
func (c *Config) TreeOptions() []worktree.Option {
	dir, _ := worktree.ParseDirection(c.Editing.DeleteDirection)
	return []worktree.Option{
		worktree.WithDeleteDirection(dir),
		worktree.WithMergeAdjacentOnDelete(c.Editing.MergeAdjacent),
		worktree.WithNormalizeText(c.Editing.NormalizeText),
	}
}

// Logger creates a logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *logging.Logger {
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(c.Logging.Level),
		Output: w,
		Prefix: c.Logging.Prefix,
	})
}

// Registry loads the configured schema, or the basic schema when no path
// is set.
func (c *Config) Registry() (*schema.Registry, error) {
	if c.Schema.Path == "" {
		return schema.Basic(), nil
	}
	return schema.LoadFile(c.Schema.Path)
}
