// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/poptip/internal/display"
	"github.com/jmylchreest/poptip/internal/model"
	"github.com/jmylchreest/poptip/internal/scenario"
	"github.com/jmylchreest/poptip/internal/theme"
)

// Default configuration values.
const (
	DefaultPixelRatio = 2.0
	MaxPixelRatio     = 4.0
)

// Config represents the poptip configuration.
type Config struct {
	Theme    ThemeConfig    `toml:"theme"`
	Style    model.Style    `toml:"style"`
	Behavior BehaviorConfig `toml:"behavior"`
	Device   DeviceConfig   `toml:"device"`
	Render   RenderConfig   `toml:"render"`
	TUI      TUIConfig      `toml:"tui"`
}

// ThemeConfig selects the preset [style] is applied on top of.
type ThemeConfig struct {
	Name string `toml:"name"` // Theme name without .toml extension
}

// BehaviorConfig holds presentation and dismissal settings.
type BehaviorConfig struct {
	PreferredDirection  model.Direction `toml:"preferred_direction"` // any, up, down
	Animation           model.Animation `toml:"animation"`           // slide, pop
	DismissTapAnywhere  bool            `toml:"dismiss_tap_anywhere"`
	DisableTapToDismiss bool            `toml:"disable_tap_to_dismiss"`
	AutoDismiss         Duration        `toml:"auto_dismiss"` // e.g. "3s", or 0 for never
}

// DeviceConfig selects the sizing margins.
type DeviceConfig struct {
	Class model.DeviceClass `toml:"class"` // compact, regular
}

// RenderConfig holds PNG rendering settings.
type RenderConfig struct {
	PixelRatio float64 `toml:"pixel_ratio"` // Device pixels per point
	Scene      bool    `toml:"scene"`       // Draw the container and views behind the bubble
}

// TUIConfig holds terminal demo settings.
type TUIConfig struct {
	ShowHelp bool `toml:"show_help"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	b := display.DefaultBehavior()
	return &Config{
		Theme: ThemeConfig{
			Name: theme.DefaultThemeName,
		},
		Style: model.DefaultStyle(),
		Behavior: BehaviorConfig{
			PreferredDirection:  b.PreferredDirection,
			Animation:           b.Animation,
			DismissTapAnywhere:  b.DismissTapAnywhere,
			DisableTapToDismiss: b.DisableTapToDismiss,
			AutoDismiss:         0,
		},
		Device: DeviceConfig{
			Class: model.DeviceCompact,
		},
		Render: RenderConfig{
			PixelRatio: DefaultPixelRatio,
			Scene:      true,
		},
		TUI: TUIConfig{
			ShowHelp: true,
		},
	}
}

// PopTipBehavior converts the behaviour section for display.New.
func (b BehaviorConfig) PopTipBehavior() display.Behavior {
	return display.Behavior{
		PreferredDirection:  b.PreferredDirection,
		Animation:           b.Animation,
		DismissTapAnywhere:  b.DismissTapAnywhere,
		DisableTapToDismiss: b.DisableTapToDismiss,
	}
}

// ScenarioDefaults returns the values scenarios are resolved against.
func (c *Config) ScenarioDefaults() scenario.Defaults {
	dir, _ := theme.ThemesDir()
	return scenario.Defaults{
		Style: c.Style,
		Behavior: scenario.Behavior{
			PreferredDirection:  c.Behavior.PreferredDirection,
			Animation:           c.Behavior.Animation,
			DismissTapAnywhere:  c.Behavior.DismissTapAnywhere,
			DisableTapToDismiss: c.Behavior.DisableTapToDismiss,
			AutoDismiss:         c.Behavior.AutoDismiss,
		},
		Device:    c.Device.Class,
		ThemesDir: dir,
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
	return filepath.Join(configHome, "poptip", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
//
// The [theme] preset is applied first and [style] keys override it.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := Parse(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse overlays a TOML document onto cfg, applying the named theme
// beneath the document's [style] table, then validates the result.
func Parse(data []byte, cfg *Config) error {
	var probe struct {
		Theme ThemeConfig `toml:"theme"`
	}
	if err := toml.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if probe.Theme.Name != "" {
		th, err := theme.Load(probe.Theme.Name)
		if err != nil {
			return fmt.Errorf("failed to apply theme: %w", err)
		}
		cfg.Style = th.Style
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Style.Validate(); err != nil {
		return err
	}

	// Enum fields only marshal when they hold a known value.
	enums := []struct {
		name  string
		value interface{ MarshalText() ([]byte, error) }
	}{
		{"behavior.preferred_direction", c.Behavior.PreferredDirection},
		{"behavior.animation", c.Behavior.Animation},
		{"device.class", c.Device.Class},
		{"style.title_alignment", c.Style.TitleAlignment},
		{"style.text_alignment", c.Style.TextAlignment},
	}
	for _, e := range enums {
		if _, err := e.value.MarshalText(); err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
	}

	if c.Behavior.AutoDismiss < 0 {
		return fmt.Errorf("auto_dismiss must not be negative, got %s", c.Behavior.AutoDismiss.Duration())
	}
	if c.Render.PixelRatio < 1 || c.Render.PixelRatio > MaxPixelRatio {
		return fmt.Errorf("pixel_ratio must be between 1 and %v, got %v", MaxPixelRatio, c.Render.PixelRatio)
	}
	return nil
}
