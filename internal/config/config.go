// Package config loads server settings from an optional YAML file and the
// environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigPath = "PHOTO_MCP_CONFIG"
	EnvLogLevel   = "PHOTO_MCP_LOG_LEVEL"
)

// Config holds all server configuration.
type Config struct {
	LogLevel string       `yaml:"log_level"`
	Edit     EditConfig   `yaml:"edit"`
	Mosaic   MosaicConfig `yaml:"mosaic"`
}

// EditConfig controls session edits.
type EditConfig struct {
	BorderWidth int    `yaml:"border_width"`
	BorderColor string `yaml:"border_color"`
}

// MosaicConfig controls mosaic layout.
type MosaicConfig struct {
	TileSize   int    `yaml:"tile_size"`
	CanvasSize int    `yaml:"canvas_size"`
	Background string `yaml:"background"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.defaults()
	return cfg
}

// defaults fills unset fields. Negative sizes are left alone so Validate
// can report them.
func (c *Config) defaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Edit.BorderWidth == 0 {
		c.Edit.BorderWidth = 20
	}
	if c.Edit.BorderColor == "" {
		c.Edit.BorderColor = "#000000"
	}
	if c.Mosaic.TileSize == 0 {
		c.Mosaic.TileSize = 40
	}
	if c.Mosaic.CanvasSize == 0 {
		c.Mosaic.CanvasSize = 600
	}
	if c.Mosaic.Background == "" {
		c.Mosaic.Background = "#FFFFFF"
	}
}

// LoadConfigFile reads a YAML config file and fills in defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.defaults()
	return cfg, nil
}

// Load builds the configuration from PHOTO_MCP_CONFIG, if set, and then
// applies PHOTO_MCP_LOG_LEVEL on top. The result is validated.
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv(EnvConfigPath); path != "" {
		var err error
		if cfg, err = LoadConfigFile(path); err != nil {
			return nil, err
		}
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks sizes, colours and the log level.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Edit.BorderWidth <= 0 {
		return fmt.Errorf("edit.border_width must be positive, got %d", c.Edit.BorderWidth)
	}
	if _, err := colorful.Hex(c.Edit.BorderColor); err != nil {
		return fmt.Errorf("edit.border_color %q: %w", c.Edit.BorderColor, err)
	}
	if c.Mosaic.TileSize <= 0 {
		return fmt.Errorf("mosaic.tile_size must be positive, got %d", c.Mosaic.TileSize)
	}
	if c.Mosaic.CanvasSize < c.Mosaic.TileSize {
		return fmt.Errorf("mosaic.canvas_size %d is smaller than tile_size %d",
			c.Mosaic.CanvasSize, c.Mosaic.TileSize)
	}
	if _, err := colorful.Hex(c.Mosaic.Background); err != nil {
		return fmt.Errorf("mosaic.background %q: %w", c.Mosaic.Background, err)
	}
	return nil
}

// Level returns the slog level for LogLevel, falling back to info.
func (c *Config) Level() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// BorderColor returns the parsed border colour, black if it does not parse.
func (c *Config) BorderColor() colorful.Color {
	col, err := colorful.Hex(c.Edit.BorderColor)
	if err != nil {
		return colorful.Color{}
	}
	return col
}

// Background returns the parsed mosaic background, white if it does not parse.
func (c *Config) Background() colorful.Color {
	col, err := colorful.Hex(c.Mosaic.Background)
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return col
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", s, err)
	}
	return level, nil
}
