package main

import (
	"errors"
	"fmt"
	_ "image/png"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/mjl-/touchkit"
)

const (
	envPrefix  = "TOUCHKIT"
	configName = "touchkitsim"
)

var errConfig = errors.New("invalid config")

// Config is the simulator configuration, read from touchkitsim.yaml and TOUCHKIT_* environment variables.
type Config struct {
	Width      int               `mapstructure:"width"`
	Height     int               `mapstructure:"height"`
	SerialPort string            `mapstructure:"serial_port"`
	SerialBaud int               `mapstructure:"serial_baud"`
	Listen     string            `mapstructure:"listen"`
	PollMs     int               `mapstructure:"poll_ms"`
	LogLevel   string            `mapstructure:"log_level"`
	Logo       string            `mapstructure:"logo"`
	Colors     map[string]string `mapstructure:"colors"`
}

// Loader sets up viper with defaults and the config search path.
type Loader struct {
	*viper.Viper
}

// NewLoader returns a loader reading path, or touchkitsim.yaml from the xdg config dir and the working directory if path is empty.
func NewLoader(path string) *Loader {
	l := Loader{Viper: viper.New()}
	th := touchkit.DefaultTheme()
	l.SetDefault("width", th.Width)
	l.SetDefault("height", th.Height)
	l.SetDefault("serial_port", "")
	l.SetDefault("serial_baud", 115200)
	l.SetDefault("listen", "")
	l.SetDefault("poll_ms", 20)
	l.SetDefault("log_level", "info")
	l.SetDefault("logo", "")
	l.SetDefault("colors", map[string]string{})
	if path != "" {
		l.SetConfigFile(path)
	} else {
		l.SetConfigName(configName)
		l.AddConfigPath(filepath.Join(xdg.ConfigHome, "touchkit"))
		l.AddConfigPath(".")
	}
	l.SetConfigType("yaml")
	l.SetEnvPrefix(envPrefix)
	l.AutomaticEnv()
	return &l
}

// Read reads the config file if present. A missing file is not an error, defaults and environment apply.
func (l *Loader) Read() (Config, error) {
	if err := l.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, errors.Join(err, errConfig)
		}
		slog.Debug("no config file, using defaults")
	}
	var c Config
	if err := l.Unmarshal(&c); err != nil {
		return Config{}, errors.Join(err, errConfig)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return Config{}, fmt.Errorf("screen %dx%d: %w", c.Width, c.Height, errConfig)
	}
	return c, nil
}

// Interval returns the poll interval of the main loop.
func (c Config) Interval() time.Duration {
	return time.Duration(c.PollMs) * time.Millisecond
}

// LoadLogo reads the PNG image for the demo's lamp button. Without a configured logo it returns nil.
func (c Config) LoadLogo() (*touchkit.Bitmap, error) {
	if c.Logo == "" {
		return nil, nil
	}
	return touchkit.ReadBitmapPath(c.Logo)
}

// Level parses the log level, e.g. "debug" or "warn".
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return lvl, errors.Join(err, errConfig)
	}
	return lvl, nil
}

// Theme returns the default theme with the configured size and colors.
func (c Config) Theme() (touchkit.Theme, error) {
	th := touchkit.DefaultTheme()
	th.Width = c.Width
	th.Height = c.Height
	colors := map[string]*touchkit.Color{
		"background":  &th.Background,
		"text":        &th.Text,
		"button":      &th.Button,
		"button_on":   &th.ButtonOn,
		"pressed":     &th.Pressed,
		"group":       &th.Group,
		"panel":       &th.Panel,
		"panel_text":  &th.PanelText,
		"banner":      &th.Banner,
		"banner_text": &th.BannerText,
		"status_bar":  &th.StatusBar,
		"status":      &th.Status,
	}
	for k, v := range c.Colors {
		dst, ok := colors[k]
		if !ok {
			return th, fmt.Errorf("unknown color %q: %w", k, errConfig)
		}
		col, err := parseColor(v)
		if err != nil {
			return th, fmt.Errorf("color %s: %w", k, err)
		}
		*dst = col
	}
	return th, nil
}

// parseColor parses "#rrggbb".
func parseColor(s string) (touchkit.Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("%q: %w", s, errConfig)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, errConfig)
	}
	return touchkit.RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
