// Package config loads the bentpixel service and CLI configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("config: invalid")

// Config holds all bentpixel configuration.
type Config struct {
	Listen         string `yaml:"listen"`
	DBPath         string `yaml:"db_path"`
	MaxWidth       int    `yaml:"max_width"`
	MaxHeight      int    `yaml:"max_height"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
	CacheEntries   int    `yaml:"cache_entries"`
	BatchWorkers   int    `yaml:"batch_workers"`
	JPEGQuality    int    `yaml:"jpeg_quality"`
}

func (c *Config) defaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.DBPath == "" {
		c.DBPath = "bentpixel.db"
	}
	if c.MaxWidth <= 0 {
		c.MaxWidth = 1024
	}
	if c.MaxHeight <= 0 {
		c.MaxHeight = 1024
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 20 << 20
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.CacheEntries <= 0 {
		c.CacheEntries = 64
	}
	if c.BatchWorkers <= 0 {
		c.BatchWorkers = 4
	}
	if c.JPEGQuality <= 0 {
		c.JPEGQuality = 95
	}
}

// Default returns a configuration with every field at its default.
func Default() *Config {
	cfg := &Config{}
	cfg.defaults()
	return cfg
}

// LoadFile reads a YAML config file. Missing fields take their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that defaults cannot repair.
func (c *Config) Validate() error {
	if c.JPEGQuality > 100 {
		return fmt.Errorf("%w: jpeg_quality %d out of range 1..100", ErrInvalid, c.JPEGQuality)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q, want text or json", ErrInvalid, c.LogFormat)
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, s)
}

// NewLogger builds a slog logger writing to w with the configured level
// and format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
