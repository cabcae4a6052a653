package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml/v2"

	"github.com/chess10kp/xpdesk/internal/winstate"
)

// Backend names.
const (
	BackendPage = "page"
	BackendSway = "sway"
)

type Config struct {
	AppName    string          `toml:"app_name"`
	AppID      string          `toml:"app_id"`
	SocketPath string          `toml:"socket_path"`
	ConfigDir  string          `toml:"config_dir"`
	LogFile    string          `toml:"log_file"`
	Backend    string          `toml:"backend"`
	LayoutPath string          `toml:"layout_path"`
	DBus       bool            `toml:"dbus"`
	Windows    WindowsConfig   `toml:"windows"`
	Taskbar    TaskbarConfig   `toml:"taskbar"`
	StartMenu  StartMenuConfig `toml:"start_menu"`
	Cart       CartConfig      `toml:"cart"`
	Sway       SwayConfig      `toml:"sway"`
	Styling    StylingConfig   `toml:"styling"`
	Debug      DebugConfig     `toml:"debug"`
}

// WindowsConfig holds animation durations in milliseconds and the
// placeholders used when a panel lacks a title bar.
type WindowsConfig struct {
	MinimizeDuration         int    `toml:"minimize_duration"`
	RestoreDuration          int    `toml:"restore_duration"`
	CloseDuration            int    `toml:"close_duration"`
	ReopenDuration           int    `toml:"reopen_duration"`
	CollectionReopenDuration int    `toml:"collection_reopen_duration"`
	StaggerInterval          int    `toml:"stagger_interval"`
	HighlightDuration        int    `toml:"highlight_duration"`
	PlaceholderTitle         string `toml:"placeholder_title"`
	PlaceholderIcon          string `toml:"placeholder_icon"`
	UnknownTitle             string `toml:"unknown_title"`
}

type TaskbarConfig struct {
	Height      int    `toml:"height"`
	StartLabel  string `toml:"start_label"`
	ButtonWidth int    `toml:"button_width"`
	ShowCart    bool   `toml:"show_cart"`
}

type StartMenuConfig struct {
	MaxResults int `toml:"max_results"`
	MinScore   int `toml:"min_score"`
	CacheSize  int `toml:"cache_size"`
}

type CartConfig struct {
	ContainerID string `toml:"container_id"`
}

type SwayConfig struct {
	// Icons maps app_id (or X11 class) to a title bar glyph.
	Icons       map[string]string `toml:"icons"`
	DefaultIcon string            `toml:"default_icon"`
}

type StylingConfig struct {
	FontFamily     string `toml:"font_family"`
	FontSize       int    `toml:"font_size"`
	DesktopColor   string `toml:"desktop_color"`
	TitlebarColor  string `toml:"titlebar_color"`
	TaskbarColor   string `toml:"taskbar_color"`
	StartColor     string `toml:"start_color"`
	WindowColor    string `toml:"window_color"`
	HighlightColor string `toml:"highlight_color"`
	CustomCSS      string `toml:"custom_css"`
}

type DebugConfig struct {
	KeyBindings bool `toml:"key_bindings"`
}

var DefaultConfig = Config{
	AppName:    "xpdesk",
	AppID:      "com.github.chess10kp.xpdesk",
	SocketPath: "/tmp/xpdesk_socket",
	ConfigDir:  "~/.config/xpdesk",
	LogFile:    "xpdesk.log",
	Backend:    BackendPage,
	LayoutPath: "",
	DBus:       true,
	Windows: WindowsConfig{
		MinimizeDuration:         500,
		RestoreDuration:          500,
		CloseDuration:            600,
		ReopenDuration:           600,
		CollectionReopenDuration: 800,
		StaggerInterval:          200,
		HighlightDuration:        1500,
		PlaceholderTitle:         "Window",
		PlaceholderIcon:          "📄",
		UnknownTitle:             "Unknown Window",
	},
	Taskbar: TaskbarConfig{
		Height:      36,
		StartLabel:  "start",
		ButtonWidth: 160,
		ShowCart:    true,
	},
	StartMenu: StartMenuConfig{
		MaxResults: 10,
		MinScore:   25,
		CacheSize:  64,
	},
	Cart: CartConfig{
		ContainerID: "cart-modal",
	},
	Sway: SwayConfig{
		Icons: map[string]string{
			"firefox":   "🌐",
			"foot":      "💻",
			"Alacritty": "💻",
			"thunar":    "📁",
		},
		DefaultIcon: "🗔",
	},
	Styling: StylingConfig{
		FontFamily:     "Tahoma, sans-serif",
		FontSize:       13,
		DesktopColor:   "#3a6ea5",
		TitlebarColor:  "#0a246a",
		TaskbarColor:   "#245edb",
		StartColor:     "#3c9a3c",
		WindowColor:    "#ece9d8",
		HighlightColor: "#ffd700",
	},
	Debug: DebugConfig{
		KeyBindings: true,
	},
}

// ManagerConfig converts the window settings into manager settings.
func (c *Config) ManagerConfig() winstate.Config {
	w := c.Windows
	return winstate.Config{
		Timings: winstate.Timings{
			Minimize:         ms(w.MinimizeDuration),
			Restore:          ms(w.RestoreDuration),
			Close:            ms(w.CloseDuration),
			Reopen:           ms(w.ReopenDuration),
			CollectionReopen: ms(w.CollectionReopenDuration),
			Stagger:          ms(w.StaggerInterval),
			Highlight:        ms(w.HighlightDuration),
		},
		PlaceholderTitle: w.PlaceholderTitle,
		PlaceholderIcon:  w.PlaceholderIcon,
		UnknownTitle:     w.UnknownTitle,
		CartContainerID:  c.Cart.ContainerID,
	}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func LoadConfig(path string) (*Config, error) {
	expandedPath := expandPath(path)

	// Unset keys keep their defaults.
	cfg := DefaultConfig
	cfg.Sway.Icons = nil

	if _, err := os.Stat(expandedPath); os.IsNotExist(err) {
		cfg.resolve()
		return &cfg, nil
	}

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.resolve()

	return &cfg, nil
}

// resolve fills the icon map from the defaults without sharing it and
// expands the configured paths.
func (c *Config) resolve() {
	icons := make(map[string]string, len(DefaultConfig.Sway.Icons)+len(c.Sway.Icons))
	for k, v := range DefaultConfig.Sway.Icons {
		icons[k] = v
	}
	for k, v := range c.Sway.Icons {
		icons[k] = v
	}
	c.Sway.Icons = icons

	c.ConfigDir = expandPath(c.ConfigDir)
	c.SocketPath = expandPath(c.SocketPath)
	c.LayoutPath = expandPath(c.LayoutPath)
	c.LogFile = expandPath(c.LogFile)
}

func LoadAndValidateConfig(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		usr, err := user.Current()
		if err == nil {
			return filepath.Join(usr.HomeDir, path[1:])
		}
	}
	return path
}

func SaveConfig(cfg *Config, path string) error {
	expandedPath := expandPath(path)

	dir := filepath.Dir(expandedPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(expandedPath, data, 0644)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	for _, check := range []func() error{
		c.validateGeneral,
		c.validateWindows,
		c.validateTaskbar,
		c.validateStartMenu,
	} {
		if err := check(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func (c *Config) validateGeneral() error {
	if c.SocketPath == "" {
		return fmt.Errorf("socket_path must not be empty")
	}
	switch c.Backend {
	case BackendPage, BackendSway:
	default:
		return fmt.Errorf("invalid backend: %q (must be one of: %s, %s)", c.Backend, BackendPage, BackendSway)
	}
	return nil
}

func (c *Config) validateWindows() error {
	w := c.Windows
	durations := []struct {
		name  string
		value int
	}{
		{"minimize_duration", w.MinimizeDuration},
		{"restore_duration", w.RestoreDuration},
		{"close_duration", w.CloseDuration},
		{"reopen_duration", w.ReopenDuration},
		{"collection_reopen_duration", w.CollectionReopenDuration},
		{"stagger_interval", w.StaggerInterval},
		{"highlight_duration", w.HighlightDuration},
	}
	var result *multierror.Error
	for _, d := range durations {
		if d.value < 0 || d.value > 10000 {
			result = multierror.Append(result, fmt.Errorf("invalid %s: %d (must be 0-10000ms)", d.name, d.value))
		}
	}
	if w.PlaceholderTitle == "" {
		result = multierror.Append(result, fmt.Errorf("placeholder_title must not be empty"))
	}
	return result.ErrorOrNil()
}

func (c *Config) validateTaskbar() error {
	t := c.Taskbar
	if t.Height < 16 || t.Height > 200 {
		return fmt.Errorf("invalid taskbar height: %d (must be 16-200px)", t.Height)
	}
	if t.ButtonWidth < 40 || t.ButtonWidth > 1000 {
		return fmt.Errorf("invalid button_width: %d (must be 40-1000px)", t.ButtonWidth)
	}
	return nil
}

func (c *Config) validateStartMenu() error {
	s := c.StartMenu
	if s.MaxResults < 1 || s.MaxResults > 100 {
		return fmt.Errorf("invalid max_results: %d (must be 1-100)", s.MaxResults)
	}
	if s.MinScore < 0 {
		return fmt.Errorf("invalid min_score: %d (must be >= 0)", s.MinScore)
	}
	if s.CacheSize < 1 || s.CacheSize > 10000 {
		return fmt.Errorf("invalid cache_size: %d (must be 1-10000)", s.CacheSize)
	}
	return nil
}

func ValidateConfig(path string) error {
	cfg, err := LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
