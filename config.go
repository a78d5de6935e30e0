package mdblock

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the file form of the parser options. Zero values keep the
// defaults.
type Config struct {
	Limits      LimitsConfig `yaml:"limits"`
	StrictHTML  bool         `yaml:"strict_html"`
	StrictLazy  bool         `yaml:"strict_lazy"`
	FrontMatter bool         `yaml:"front_matter"`
	Cache       CacheConfig  `yaml:"cache"`
}

// LimitsConfig holds the parse ceilings.
type LimitsConfig struct {
	MaxItemLines    int `yaml:"max_item_lines"`
	MaxListItems    int `yaml:"max_list_items"`
	MaxNestingDepth int `yaml:"max_nesting_depth"`
}

// CacheConfig enables the section cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

// ErrInvalidConfig reports a configuration with out-of-range values.
var ErrInvalidConfig = errors.New("invalid configuration")

// LoadConfig reads a YAML configuration file. Environment variables in the
// file are expanded before decoding.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates a YAML configuration.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects negative limits.
func (c *Config) Validate() error {
	switch {
	case c.Limits.MaxItemLines < 0:
		return fmt.Errorf("%w: limits.max_item_lines must not be negative", ErrInvalidConfig)
	case c.Limits.MaxListItems < 0:
		return fmt.Errorf("%w: limits.max_list_items must not be negative", ErrInvalidConfig)
	case c.Limits.MaxNestingDepth < 0:
		return fmt.Errorf("%w: limits.max_nesting_depth must not be negative", ErrInvalidConfig)
	case c.Cache.Size < 0:
		return fmt.Errorf("%w: cache.size must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Options converts the configuration to parser options. The logger and
// recorder are not part of the file form and are passed through.
func (c *Config) Options(logger *slog.Logger, recorder Recorder) []Option {
	opts := []Option{
		WithMaxItemLines(c.Limits.MaxItemLines),
		WithMaxListItems(c.Limits.MaxListItems),
		WithMaxNestingDepth(c.Limits.MaxNestingDepth),
		WithStrictHTMLBlocks(c.StrictHTML),
		WithStrictLazyContinuation(c.StrictLazy),
		WithFrontMatter(c.FrontMatter),
	}
	if logger != nil {
		opts = append(opts, WithLogger(logger))
	}
	if recorder != nil {
		opts = append(opts, WithRecorder(recorder))
	}
	if c.Cache.Enabled {
		opts = append(opts, WithSectionCache(NewSectionCache(c.Cache.Size)))
	}
	return opts
}
