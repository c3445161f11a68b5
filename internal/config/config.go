// Package config handles viewer configuration loading and management.
package config

// Config holds all application settings.
//
// The display style (colors, projection, point style) is not part of
// Config; it lives in the settings.conf file named by Viewer.SettingsPath.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds window settings.
type WindowConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	VSync    bool    `yaml:"vsync"`
	FontPath string  `yaml:"font_path"` // Optional TTF font for the UI
	FontSize float32 `yaml:"font_size"`
}

// ViewerConfig holds model viewer behaviour.
type ViewerConfig struct {
	SettingsPath  string  `yaml:"settings_path"`  // Empty means <config dir>/settings.conf
	Watch         bool    `yaml:"watch"`          // Reload the open file when it changes on disk
	ScreenshotDir string  `yaml:"screenshot_dir"` // Where F12 screenshots go
	ViewportSize  int     `yaml:"viewport_size"`  // Default snapshot edge in pixels
	MoveStep      float64 `yaml:"move_step"`      // Keyboard translation step
	RotateStep    float64 `yaml:"rotate_step"`    // Keyboard rotation step in degrees
	ScaleStep     float64 `yaml:"scale_step"`     // Keyboard scale factor
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:    1280,
			Height:   800,
			VSync:    true,
			FontSize: 16,
		},
		Viewer: ViewerConfig{
			SettingsPath:  "",
			Watch:         false,
			ScreenshotDir: "screenshots",
			ViewportSize:  1024,
			MoveStep:      0.1,
			RotateStep:    15,
			ScaleStep:     1.1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
