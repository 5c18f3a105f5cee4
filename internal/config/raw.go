package config

// RawConfig mirrors the YAML file. Nil fields were not set and keep their
// defaults.
type RawConfig struct {
	ToggleKey         *string     `yaml:"toggle_key"`
	QuitKey           *string     `yaml:"quit_key"`
	GlobalHotkey      *string     `yaml:"global_hotkey"`
	ResizeHandleWidth *int        `yaml:"resize_handle_width"`
	WindowMargins     *RawMargins `yaml:"window_margins"`
	RetainedBehaviors []string    `yaml:"retained_behaviors"`
	ThemeDir          *string     `yaml:"theme_dir"`
	LogLevel          *string     `yaml:"log_level"`
	LogFile           *string     `yaml:"log_file"`
	IPCEnabled        *bool       `yaml:"ipc_enabled"`
	X11Cursors        *bool       `yaml:"x11_cursors"`
	WatchConfig       *bool       `yaml:"watch_config"`
}

type RawMargins struct {
	Top    *int `yaml:"top"`
	Bottom *int `yaml:"bottom"`
	Left   *int `yaml:"left"`
	Right  *int `yaml:"right"`
}

// BuildEffectiveConfig applies raw on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	setString(&cfg.ToggleKey, raw.ToggleKey)
	setString(&cfg.QuitKey, raw.QuitKey)
	setString(&cfg.GlobalHotkey, raw.GlobalHotkey)
	setString(&cfg.ThemeDir, raw.ThemeDir)
	setString(&cfg.LogLevel, raw.LogLevel)
	setString(&cfg.LogFile, raw.LogFile)

	if raw.ResizeHandleWidth != nil {
		cfg.ResizeHandleWidth = *raw.ResizeHandleWidth
	}
	if m := raw.WindowMargins; m != nil {
		setInt(&cfg.WindowMargins.Top, m.Top)
		setInt(&cfg.WindowMargins.Bottom, m.Bottom)
		setInt(&cfg.WindowMargins.Left, m.Left)
		setInt(&cfg.WindowMargins.Right, m.Right)
	}
	if raw.RetainedBehaviors != nil {
		cfg.RetainedBehaviors = append([]string(nil), raw.RetainedBehaviors...)
	}
	if raw.IPCEnabled != nil {
		cfg.IPCEnabled = *raw.IPCEnabled
	}
	if raw.X11Cursors != nil {
		cfg.X11Cursors = *raw.X11Cursors
	}
	if raw.WatchConfig != nil {
		cfg.WatchConfig = *raw.WatchConfig
	}
	return cfg
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
