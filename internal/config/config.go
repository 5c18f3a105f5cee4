package config

import (
	"fmt"
	"strings"

	"github.com/1broseidon/stellarhub/internal/behavior"
	"github.com/1broseidon/stellarhub/internal/geometry"
)

// Margins places a window inside the overlay before it is first moved.
type Margins struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

// Insets converts the margins for the layout engine.
func (m Margins) Insets() geometry.Insets {
	return geometry.Insets{Top: m.Top, Bottom: m.Bottom, Left: m.Left, Right: m.Right}
}

// Config is the effective configuration.
type Config struct {
	ToggleKey         string   `yaml:"toggle_key"`
	QuitKey           string   `yaml:"quit_key"`
	GlobalHotkey      string   `yaml:"global_hotkey"`
	ResizeHandleWidth int      `yaml:"resize_handle_width"`
	WindowMargins     Margins  `yaml:"window_margins"`
	RetainedBehaviors []string `yaml:"retained_behaviors"`
	ThemeDir          string   `yaml:"theme_dir"`
	LogLevel          string   `yaml:"log_level"`
	LogFile           string   `yaml:"log_file"`
	IPCEnabled        bool     `yaml:"ipc_enabled"`
	X11Cursors        bool     `yaml:"x11_cursors"`
	WatchConfig       bool     `yaml:"watch_config"`
}

func DefaultConfig() *Config {
	return &Config{
		ToggleKey:         "f12",
		QuitKey:           "ctrl+c",
		GlobalHotkey:      "",
		ResizeHandleWidth: 1,
		WindowMargins: Margins{
			Top:    3,
			Bottom: 3,
			Left:   8,
			Right:  8,
		},
		RetainedBehaviors: []string{"input", "escape"},
		LogLevel:          "info",
		IPCEnabled:        true,
		X11Cursors:        false,
		WatchConfig:       true,
	}
}

var validLogLevels = []string{"debug", "info", "warning", "error"}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.ToggleKey) == "" {
		return &ValidationError{Path: "toggle_key", Err: fmt.Errorf("toggle_key is required")}
	}
	if strings.TrimSpace(c.QuitKey) == "" {
		return &ValidationError{Path: "quit_key", Err: fmt.Errorf("quit_key is required")}
	}
	if c.ToggleKey == c.QuitKey {
		return &ValidationError{Path: "quit_key", Err: fmt.Errorf("quit_key must differ from toggle_key")}
	}
	if c.ResizeHandleWidth < 1 {
		return &ValidationError{Path: "resize_handle_width", Err: fmt.Errorf("resize_handle_width must be >= 1")}
	}
	m := c.WindowMargins
	if m.Top < 0 || m.Bottom < 0 || m.Left < 0 || m.Right < 0 {
		return &ValidationError{Path: "window_margins", Err: fmt.Errorf("window_margins values must be >= 0")}
	}
	if c.RetainedBehaviors == nil {
		return &ValidationError{Path: "retained_behaviors", Err: fmt.Errorf("retained_behaviors must not be null")}
	}
	if _, err := behavior.ParseSet(c.RetainedBehaviors); err != nil {
		return &ValidationError{Path: "retained_behaviors", Err: err}
	}
	if !containsString(validLogLevels, c.LogLevel) {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: %s", strings.Join(validLogLevels, ", "))}
	}
	return nil
}

// Retained returns the behavior set kept enabled while the overlay is open.
func (c *Config) Retained() behavior.Set {
	set, err := behavior.ParseSet(c.RetainedBehaviors)
	if err != nil {
		return behavior.Of(behavior.Input, behavior.Escape)
	}
	return set
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// ValidationError reports an invalid value and, when known, where it came from.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }
