// Package config provides configuration management for iconfont using Viper
// for loading from files, environment variables, and command-line flags.
//
// The configuration system supports a .iconfont.yml file, environment
// variable overrides with the ICONFONT_ prefix, and validation. It covers
// the input and output directories, font naming and em metrics, logging
// and watch mode.
package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/conneroisu/iconfont/internal/logging"
)

// Collision policies for glyph names that sanitize to the same value.
const (
	CollisionSuffix = "suffix"
	CollisionError  = "error"
	CollisionAllow  = "allow"
)

// Defaults.
const (
	DefaultInputDir  = "icons"
	DefaultOutputDir = "dist"
	DefaultFontName  = "icons"
	DefaultPrefix    = "icon"
	DefaultEmHeight  = 1000
	DefaultDebounce  = 300 * time.Millisecond
)

type Config struct {
	Input  InputConfig  `mapstructure:"input" yaml:"input"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
	Font   FontConfig   `mapstructure:"font" yaml:"font"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Watch  WatchConfig  `mapstructure:"watch" yaml:"watch"`
}

type InputConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

type OutputConfig struct {
	Dir      string `mapstructure:"dir" yaml:"dir"`
	Manifest bool   `mapstructure:"manifest" yaml:"manifest"`
	OTF      bool   `mapstructure:"otf" yaml:"otf"`
	Force    bool   `mapstructure:"force" yaml:"force"`
}

type FontConfig struct {
	Name       string `mapstructure:"name" yaml:"name"`
	Prefix     string `mapstructure:"prefix" yaml:"prefix"`
	EmHeight   int    `mapstructure:"em_height" yaml:"em_height"`
	Descent    int    `mapstructure:"descent" yaml:"descent"`
	Collisions string `mapstructure:"collisions" yaml:"collisions"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// FontFile is the file name of the delivery font.
func (c *Config) FontFile() string {
	return c.Font.Name + ".woff2"
}

// StylesheetFile is the file name of the stylesheet.
func (c *Config) StylesheetFile() string {
	return c.Font.Name + ".css"
}

// OTFFile is the file name of the optional OpenType font.
func (c *Config) OTFFile() string {
	return c.Font.Name + ".otf"
}

// ManifestFile is the file name of the optional glyph manifest.
func (c *Config) ManifestFile() string {
	return c.Font.Name + ".yml"
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Input.Dir == "" {
		config.Input.Dir = DefaultInputDir
	}
	if config.Output.Dir == "" {
		config.Output.Dir = DefaultOutputDir
	}
	if config.Font.Name == "" {
		config.Font.Name = DefaultFontName
	}
	if config.Font.Prefix == "" {
		config.Font.Prefix = DefaultPrefix
	}
	if config.Font.EmHeight == 0 {
		config.Font.EmHeight = DefaultEmHeight
	}
	if config.Font.Collisions == "" {
		config.Font.Collisions = CollisionSuffix
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}
	if config.Watch.Debounce == 0 {
		config.Watch.Debounce = DefaultDebounce
	}
}

var prefixPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// Validate checks configuration values for correctness.
func Validate(config *Config) error {
	if err := validatePath(config.Input.Dir); err != nil {
		return fmt.Errorf("input.dir: %w", err)
	}
	if err := validatePath(config.Output.Dir); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}

	if err := validateFontConfig(&config.Font); err != nil {
		return fmt.Errorf("font config: %w", err)
	}

	if _, err := logging.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch config.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", config.Log.Format)
	}

	if config.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}

	return nil
}

func validateFontConfig(config *FontConfig) error {
	if strings.ContainsAny(config.Name, `/\`) || config.Name == "." || config.Name == ".." {
		return fmt.Errorf("name %q must be a plain file name", config.Name)
	}

	if !prefixPattern.MatchString(config.Prefix) {
		return fmt.Errorf("prefix %q is not a valid CSS class prefix", config.Prefix)
	}

	// units-per-em range allowed by the OpenType head table
	if config.EmHeight < 16 || config.EmHeight > 16384 {
		return fmt.Errorf("em_height %d is not in valid range 16-16384", config.EmHeight)
	}

	if config.Descent < 0 || config.Descent >= config.EmHeight {
		return fmt.Errorf("descent %d must be in [0, em_height)", config.Descent)
	}

	switch config.Collisions {
	case CollisionSuffix, CollisionError, CollisionAllow:
	default:
		return fmt.Errorf("collisions must be one of suffix, error, allow, got %q", config.Collisions)
	}

	return nil
}

// validatePath validates a directory path
func validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)
	if strings.ContainsRune(cleanPath, 0) {
		return fmt.Errorf("path contains NUL byte: %q", path)
	}

	return nil
}
