package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/strut/internal/component"
)

// Config is the parsed bar configuration.
type Config struct {
	Name            string
	Output          string
	Height          uint16
	Font            string
	FontSize        float64
	Background      component.Color
	Foreground      component.Color
	BackgroundImage string
	TextYOffset     int16

	Clock Clock
	Tail  Tail
	Feed  Feed
	Image Image
}

// Clock configures the clock component.
type Clock struct {
	Enabled   bool
	Format    string
	AltFormat string
	Align     component.Alignment
	Interval  time.Duration
}

// Tail configures the file tail component. It is disabled when Path is empty.
type Tail struct {
	Path  string
	Align component.Alignment
}

// Feed configures the JSON feed component. It is disabled when URL is empty.
type Feed struct {
	URL      string
	Interval time.Duration
	Align    component.Alignment
}

// Image configures the static image component. It is disabled when Path is
// empty.
type Image struct {
	Path  string
	Align component.Alignment
	Fit   bool
}

const (
	defaultConfigPath    = "~/.config/strut/config.toml"
	defaultName          = "strut"
	defaultHeight        = 30
	defaultFontSize      = 14
	defaultBackground    = "#000000"
	defaultForeground    = "#ffffff"
	defaultClockFormat   = "15:04"
	defaultClockAlt      = "03:04 PM"
	defaultClockInterval = time.Second
	defaultFeedInterval  = 30 * time.Second
)

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Name:       defaultName,
		Height:     defaultHeight,
		FontSize:   defaultFontSize,
		Background: component.RGB(0, 0, 0),
		Foreground: component.RGB(0xff, 0xff, 0xff),
		Clock: Clock{
			Enabled:   true,
			Format:    defaultClockFormat,
			AltFormat: defaultClockAlt,
			Align:     component.AlignRight,
			Interval:  defaultClockInterval,
		},
		Tail:  Tail{Align: component.AlignLeft},
		Feed:  Feed{Interval: defaultFeedInterval, Align: component.AlignCenter},
		Image: Image{Align: component.AlignLeft, Fit: true},
	}
}

type rawConfig struct {
	Name            string   `toml:"name"`
	Output          string   `toml:"output"`
	Height          *int     `toml:"height"`
	Font            string   `toml:"font"`
	FontSize        *float64 `toml:"font_size"`
	Background      string   `toml:"background"`
	Foreground      string   `toml:"foreground"`
	BackgroundImage string   `toml:"background_image"`
	TextYOffset     int      `toml:"text_yoffset"`

	Clock struct {
		Enabled   *bool  `toml:"enabled"`
		Format    string `toml:"format"`
		AltFormat string `toml:"alt_format"`
		Align     string `toml:"align"`
		Interval  string `toml:"interval"`
	} `toml:"clock"`
	Tail struct {
		Path  string `toml:"path"`
		Align string `toml:"align"`
	} `toml:"tail"`
	Feed struct {
		URL      string `toml:"url"`
		Interval string `toml:"interval"`
		Align    string `toml:"align"`
	} `toml:"feed"`
	Image struct {
		Path  string `toml:"path"`
		Align string `toml:"align"`
		Fit   *bool  `toml:"fit"`
	} `toml:"image"`
}

// Load reads the configuration at path, or the default path when empty. A
// missing file yields Default().
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(bytes)
}

// Parse decodes TOML configuration, filling unset fields with defaults.
func Parse(data []byte) (Config, error) {
	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	cfg.Name = orDefault(raw.Name, defaultName)
	cfg.Output = strings.TrimSpace(raw.Output)
	cfg.Font = expandOptional(raw.Font)
	cfg.BackgroundImage = expandOptional(raw.BackgroundImage)

	if raw.Height != nil {
		if *raw.Height <= 0 || *raw.Height > 0xffff {
			return Config{}, fmt.Errorf("height %d out of range", *raw.Height)
		}
		cfg.Height = uint16(*raw.Height)
	}
	if raw.FontSize != nil {
		if *raw.FontSize <= 0 {
			return Config{}, fmt.Errorf("font_size must be positive, got %v", *raw.FontSize)
		}
		cfg.FontSize = *raw.FontSize
	}
	if raw.TextYOffset < -0x8000 || raw.TextYOffset > 0x7fff {
		return Config{}, fmt.Errorf("text_yoffset %d out of range", raw.TextYOffset)
	}
	cfg.TextYOffset = int16(raw.TextYOffset)

	var err error
	if cfg.Background, err = parseColor("background", raw.Background, defaultBackground); err != nil {
		return Config{}, err
	}
	if cfg.Foreground, err = parseColor("foreground", raw.Foreground, defaultForeground); err != nil {
		return Config{}, err
	}

	if raw.Clock.Enabled != nil {
		cfg.Clock.Enabled = *raw.Clock.Enabled
	}
	cfg.Clock.Format = orDefault(raw.Clock.Format, defaultClockFormat)
	cfg.Clock.AltFormat = orDefault(raw.Clock.AltFormat, defaultClockAlt)
	if cfg.Clock.Align, err = parseAlign("clock.align", raw.Clock.Align, cfg.Clock.Align); err != nil {
		return Config{}, err
	}
	if cfg.Clock.Interval, err = parseInterval("clock.interval", raw.Clock.Interval, defaultClockInterval); err != nil {
		return Config{}, err
	}

	cfg.Tail.Path = expandOptional(raw.Tail.Path)
	if cfg.Tail.Align, err = parseAlign("tail.align", raw.Tail.Align, cfg.Tail.Align); err != nil {
		return Config{}, err
	}

	cfg.Feed.URL = strings.TrimSpace(raw.Feed.URL)
	if cfg.Feed.Align, err = parseAlign("feed.align", raw.Feed.Align, cfg.Feed.Align); err != nil {
		return Config{}, err
	}
	if cfg.Feed.Interval, err = parseInterval("feed.interval", raw.Feed.Interval, defaultFeedInterval); err != nil {
		return Config{}, err
	}

	cfg.Image.Path = expandOptional(raw.Image.Path)
	if cfg.Image.Align, err = parseAlign("image.align", raw.Image.Align, cfg.Image.Align); err != nil {
		return Config{}, err
	}
	if raw.Image.Fit != nil {
		cfg.Image.Fit = *raw.Image.Fit
	}

	return cfg, nil
}

func orDefault(v, def string) string {
	if trimmed := strings.TrimSpace(v); trimmed != "" {
		return trimmed
	}
	return def
}

func parseColor(field, v, def string) (component.Color, error) {
	c, err := component.ParseColor(orDefault(v, def))
	if err != nil {
		return component.Color{}, fmt.Errorf("%s: %w", field, err)
	}
	return c, nil
}

func parseAlign(field, v string, def component.Alignment) (component.Alignment, error) {
	if strings.TrimSpace(v) == "" {
		return def, nil
	}
	a, err := component.ParseAlignment(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", field, err)
	}
	return a, nil
}

func parseInterval(field, v string, def time.Duration) (time.Duration, error) {
	if strings.TrimSpace(v) == "" {
		return def, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", field, d)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandOptional(path string) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	expanded, err := expandPath(path)
	if err != nil {
		return strings.TrimSpace(path)
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	expanded, err := homedir.Expand(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Abs(expanded)
}
