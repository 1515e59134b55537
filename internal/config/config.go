// Package config reads the server's settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-transform/internal/transform"
)

// Environment variables understood by Load.
const (
	EnvLogLevel    = "IMAGE_TRANSFORM_LOG_LEVEL"
	EnvConcurrency = "IMAGE_TRANSFORM_CONCURRENCY"
	EnvBackground  = "IMAGE_TRANSFORM_BACKGROUND"
	EnvStrip       = "IMAGE_TRANSFORM_STRIP"
	EnvInterlace   = "IMAGE_TRANSFORM_INTERLACE"
	EnvPadAlpha    = "IMAGE_TRANSFORM_PAD_ALPHA"
)

// Config holds the process settings.
type Config struct {
	// LogLevel is "info" unless set. "debug" enables per-operation logging.
	LogLevel string

	// Concurrency bounds the backend worker pool. Zero keeps the default.
	Concurrency int

	// Background is the output configuration every decoded image starts with.
	Background transform.Background

	// PadAlpha selects how Fill padding treats alpha.
	PadAlpha transform.PadAlpha
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv. Unset variables keep their defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		LogLevel:   "info",
		Background: transform.DefaultBackground(),
		PadAlpha:   transform.PadAlphaAlways,
	}

	if v := strings.ToLower(strings.TrimSpace(getenv(EnvLogLevel))); v != "" {
		cfg.LogLevel = v
	}

	if v := strings.TrimSpace(getenv(EnvConcurrency)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s: invalid concurrency %q", EnvConcurrency, v)
		}
		cfg.Concurrency = n
	}

	if v := strings.TrimSpace(getenv(EnvBackground)); v != "" {
		r, g, b, err := ParseColour(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvBackground, err)
		}
		cfg.Background.R, cfg.Background.G, cfg.Background.B = r, g, b
	}

	var err error
	if cfg.Background.Strip, err = boolEnv(getenv, EnvStrip, cfg.Background.Strip); err != nil {
		return nil, err
	}
	if cfg.Background.Interlace, err = boolEnv(getenv, EnvInterlace, cfg.Background.Interlace); err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(getenv(EnvPadAlpha)); v != "" {
		p, err := transform.ParsePadAlpha(strings.ToLower(v))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvPadAlpha, err)
		}
		cfg.PadAlpha = p
	}

	return cfg, nil
}

// ParseColour parses a "#rrggbb" or "#rgb" hex colour. The leading '#' is
// optional.
func ParseColour(s string) (r, g, b uint8, err error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return 0, 0, 0, fmt.Errorf("invalid colour %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b = c.RGB255()
	return r, g, b, nil
}

func boolEnv(getenv func(string) string, key string, def bool) (bool, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}
