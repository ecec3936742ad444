// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/winstack/internal/anim"
	"github.com/jmylchreest/winstack/internal/gfx"
)

// Default configuration values.
const (
	DefaultWidth            = 144
	DefaultHeight           = 168
	DefaultShape            = "rect"
	DefaultTransition       = 300 * time.Millisecond
	DefaultCurve            = "linear"
	DefaultStatusForeground = "#FFFFFF"
	DefaultNotifyColor      = "#FF5500"
	DefaultFrameRate        = 30
)

// Config represents the winstack configuration.
type Config struct {
	Display       DisplayConfig       `toml:"display"`
	Transition    TransitionConfig    `toml:"transition"`
	Notifications NotificationsConfig `toml:"notifications"`
	Simulator     SimulatorConfig     `toml:"simulator"`
}

// DisplayConfig describes the emulated screen.
type DisplayConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Shape  string `toml:"shape"` // rect, round
}

// TransitionConfig controls slide transitions between windows.
type TransitionConfig struct {
	Duration Duration `toml:"duration"` // e.g. "300ms" or 300
	Curve    string   `toml:"curve"`    // linear, ease-in, ease-out, ease-in-out
	Animated bool     `toml:"animated"` // Animate pushes and pops made by the demo windows
}

// NotificationsConfig holds notification layer colors as hex strings.
type NotificationsConfig struct {
	StatusForeground string `toml:"status_foreground"`
	DefaultColor     string `toml:"default_color"`
}

// SimulatorConfig holds terminal simulator settings.
type SimulatorConfig struct {
	FrameRate int  `toml:"frame_rate"`
	ShowHelp  bool `toml:"show_help"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Shape:  DefaultShape,
		},
		Transition: TransitionConfig{
			Duration: Duration(DefaultTransition),
			Curve:    DefaultCurve,
			Animated: true,
		},
		Notifications: NotificationsConfig{
			StatusForeground: DefaultStatusForeground,
			DefaultColor:     DefaultNotifyColor,
		},
		Simulator: SimulatorConfig{
			FrameRate: DefaultFrameRate,
			ShowHelp:  true,
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
	return filepath.Join(configHome, "winstack", "config.toml")
}

// Load loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
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
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Marshal encodes the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Display.Width < 16 || c.Display.Width > 1024 {
		return fmt.Errorf("width must be between 16 and 1024, got %d", c.Display.Width)
	}
	if c.Display.Height < 16 || c.Display.Height > 1024 {
		return fmt.Errorf("height must be between 16 and 1024, got %d", c.Display.Height)
	}
	if _, err := gfx.ParseShape(c.Display.Shape); err != nil {
		return err
	}

	if err := c.Transition.Duration.validate(); err != nil {
		return err
	}
	if _, err := anim.ParseCurve(c.Transition.Curve); err != nil {
		return err
	}

	if _, err := gfx.ParseColor(c.Notifications.StatusForeground); err != nil {
		return fmt.Errorf("status_foreground: %w", err)
	}
	if _, err := gfx.ParseColor(c.Notifications.DefaultColor); err != nil {
		return fmt.Errorf("default_color: %w", err)
	}

	if c.Simulator.FrameRate < 1 || c.Simulator.FrameRate > 120 {
		return fmt.Errorf("frame_rate must be between 1 and 120, got %d", c.Simulator.FrameRate)
	}

	return nil
}

// ScreenSize returns the display size.
func (c *Config) ScreenSize() gfx.Size {
	return gfx.Size{W: c.Display.Width, H: c.Display.Height}
}

// Shape returns the display shape, defaulting to rect when invalid.
func (c *Config) Shape() gfx.Shape {
	s, _ := gfx.ParseShape(c.Display.Shape)
	return s
}

// Curve returns the transition curve, defaulting to linear when invalid.
func (c *Config) Curve() anim.Curve {
	cv, _ := anim.ParseCurve(c.Transition.Curve)
	return cv
}

// StatusForeground returns the status bar text color, white when invalid.
func (c *Config) StatusForeground() gfx.Color {
	col, err := gfx.ParseColor(c.Notifications.StatusForeground)
	if err != nil {
		return gfx.ColorWhite
	}
	return col
}

// NotificationColor returns the default notification color, orange when
// invalid.
func (c *Config) NotificationColor() gfx.Color {
	col, err := gfx.ParseColor(c.Notifications.DefaultColor)
	if err != nil {
		return gfx.ColorOrange
	}
	return col
}
