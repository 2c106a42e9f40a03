// Package config loads the optional YAML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"calc/calc/screen"
	"calc/hal"

	"github.com/spf13/afero"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window Window `yaml:"window"`
	Theme  Theme  `yaml:"theme"`
	Log    Log    `yaml:"log"`
}

type Window struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Scale     int    `yaml:"scale"`
	TPS       int    `yaml:"tps"`
	Resizable bool   `yaml:"resizable"`
	Title     string `yaml:"title"`
}

type Theme struct {
	Display      Color `yaml:"display"`
	Digit        Color `yaml:"digit"`
	Operator     Color `yaml:"operator"`
	Equals       Color `yaml:"equals"`
	EqualsActive Color `yaml:"equals_active"`
	Clear        Color `yaml:"clear"`
	ClearActive  Color `yaml:"clear_active"`
	Label        Color `yaml:"label"`
	Pressed      Color `yaml:"pressed"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Window: Window{
			Width:     hal.DefaultWidth,
			Height:    hal.DefaultHeight,
			Scale:     1,
			TPS:       60,
			Resizable: true,
			Title:     "Calculator",
		},
		Theme: ThemeFrom(screen.DefaultTheme()),
		Log:   Log{Level: "info"},
	}
}

// Load reads path from fsys. A missing file, or an empty path, yields
// Default; keys absent from the file keep their default values.
func Load(fsys afero.Fs, path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	b, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	w := c.Window
	switch {
	case w.Width < 160 || w.Height < 200:
		return fmt.Errorf("%w: window %dx%d is smaller than 160x200", ErrInvalid, w.Width, w.Height)
	case w.Width > 4096 || w.Height > 4096:
		return fmt.Errorf("%w: window %dx%d is larger than 4096x4096", ErrInvalid, w.Width, w.Height)
	case w.Scale < 1 || w.Scale > 8:
		return fmt.Errorf("%w: window scale %d not in 1..8", ErrInvalid, w.Scale)
	case w.TPS < 1 || w.TPS > 240:
		return fmt.Errorf("%w: window tps %d not in 1..240", ErrInvalid, w.TPS)
	}
	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
		}
	}
	return nil
}

// Color is an opaque RGB color written as #RRGGBB.
type Color color.RGBA

func ParseColor(s string) (Color, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok || len(hex) != 6 {
		return Color{}, fmt.Errorf("%w: color %q is not #RRGGBB", ErrInvalid, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: color %q is not #RRGGBB", ErrInvalid, s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*c = parsed
	return nil
}

func (c Color) MarshalYAML() (any, error) { return c.String(), nil }

func ThemeFrom(t screen.Theme) Theme {
	return Theme{
		Display:      Color(t.Display),
		Digit:        Color(t.Digit),
		Operator:     Color(t.Operator),
		Equals:       Color(t.Equals),
		EqualsActive: Color(t.EqualsActive),
		Clear:        Color(t.Clear),
		ClearActive:  Color(t.ClearActive),
		Label:        Color(t.Label),
		Pressed:      Color(t.Pressed),
	}
}

// Screen converts the theme for the screen renderer.
func (t Theme) Screen() screen.Theme {
	return screen.Theme{
		Display:      color.RGBA(t.Display),
		Digit:        color.RGBA(t.Digit),
		Operator:     color.RGBA(t.Operator),
		Equals:       color.RGBA(t.Equals),
		EqualsActive: color.RGBA(t.EqualsActive),
		Clear:        color.RGBA(t.Clear),
		ClearActive:  color.RGBA(t.ClearActive),
		Label:        color.RGBA(t.Label),
		Pressed:      color.RGBA(t.Pressed),
	}
}

// Host returns the framebuffer size for the HAL.
func (w Window) Host() hal.HostConfig {
	return hal.HostConfig{Width: w.Width, Height: w.Height}
}
