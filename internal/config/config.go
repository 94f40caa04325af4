// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/popkit/internal/core"
	"github.com/jmylchreest/popkit/internal/geometry"
)

// Default configuration values.
const (
	DefaultMargin              = 10
	DefaultGap                 = 10
	DefaultLargeWidthThreshold = 768
	DefaultPresentDuration     = 200 * time.Millisecond
	DefaultDismissDuration     = 150 * time.Millisecond
)

// Duration is a time.Duration that can be unmarshaled from human-readable
// strings like "200ms" or "1s", or integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '200ms', '1s' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config represents the popkit configuration.
type Config struct {
	Display   DisplayConfig   `toml:"display"`
	Animation AnimationConfig `toml:"animation"`
	Behavior  BehaviorConfig  `toml:"behavior"`
}

// DisplayConfig contains placement-related settings.
type DisplayConfig struct {
	Margin      int    `toml:"margin"`       // Outer spacing kept clear around the container edge
	Inset       int    `toml:"inset"`        // Additional inner spacing
	Gap         int    `toml:"gap"`          // Standoff between anchor and popover
	DeviceClass string `toml:"device_class"` // "auto", "compact", or "large"
	LargeWidth  int    `toml:"large_width"`  // Width threshold for "auto" large-format detection
}

// AnimationConfig contains transition settings.
type AnimationConfig struct {
	Enabled bool     `toml:"enabled"`
	Present Duration `toml:"present"` // Appearance transition duration
	Dismiss Duration `toml:"dismiss"` // Disappearance transition duration
}

// BehaviorConfig contains interaction settings.
type BehaviorConfig struct {
	Modal bool `toml:"modal"` // Outside taps always dismiss, passthrough ignored
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Margin:      DefaultMargin,
			Inset:       0,
			Gap:         DefaultGap,
			DeviceClass: "auto",
			LargeWidth:  DefaultLargeWidthThreshold,
		},
		Animation: AnimationConfig{
			Enabled: true,
			Present: Duration(DefaultPresentDuration),
			Dismiss: Duration(DefaultDismissDuration),
		},
		Behavior: BehaviorConfig{
			Modal: false,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "popkit", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the engine cannot work with.
func (c *Config) Validate() error {
	if c.Display.Margin < 0 || c.Display.Inset < 0 || c.Display.Gap < 0 {
		return errors.New("display margin, inset, and gap must not be negative")
	}
	switch strings.ToLower(c.Display.DeviceClass) {
	case "", "auto", "compact", "large":
	default:
		return fmt.Errorf("unknown device_class %q: must be auto, compact, or large", c.Display.DeviceClass)
	}
	return nil
}

// Container builds a core.Container for the given bounds from the
// display settings.
func (c *Config) Container(bounds geometry.Rect) core.Container {
	return core.Container{
		Bounds: bounds,
		Margin: geometry.EdgeAll(c.Display.Margin),
		Inset:  geometry.EdgeAll(c.Display.Inset),
		Gap:    c.Display.Gap,
	}
}

// ResolveDeviceClass maps the configured device class to a core value,
// consulting the container width when set to auto.
func (c *Config) ResolveDeviceClass(bounds geometry.Rect) core.DeviceClass {
	switch strings.ToLower(c.Display.DeviceClass) {
	case "compact":
		return core.DeviceCompact
	case "large":
		return core.DeviceLarge
	default:
		return core.ClassForWidth(bounds.Width, c.Display.LargeWidth)
	}
}

// PresentDuration returns the appearance duration, zero when animation
// is disabled.
func (c *Config) PresentDuration() time.Duration {
	if !c.Animation.Enabled {
		return 0
	}
	return c.Animation.Present.Duration()
}

// DismissDuration returns the disappearance duration, zero when
// animation is disabled.
func (c *Config) DismissDuration() time.Duration {
	if !c.Animation.Enabled {
		return 0
	}
	return c.Animation.Dismiss.Duration()
}
