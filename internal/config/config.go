// Package config loads the optional host configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"sparkcalc/sparkos/tasks/calculator"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the host configuration. Zero values mean "use the default".
type Config struct {
	Window Window `yaml:"window"`

	// TickHz is the headless step rate.
	TickHz int `yaml:"tick_hz"`

	Theme Theme `yaml:"theme"`
}

type Window struct {
	Title string `yaml:"title"`
	Scale int    `yaml:"scale"`
}

// Theme overrides calculator colors; unset entries keep the default.
type Theme struct {
	Background  Color `yaml:"background"`
	DisplayBG   Color `yaml:"display_bg"`
	DisplayText Color `yaml:"display_text"`
	Button      Color `yaml:"button"`
	ButtonText  Color `yaml:"button_text"`
	Operator    Color `yaml:"operator"`
	Equal       Color `yaml:"equal"`
	Clear       Color `yaml:"clear"`
	Focus       Color `yaml:"focus"`
	Pressed     Color `yaml:"pressed"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{Title: "Calculator", Scale: 2},
		TickHz: 60,
	}
}

// Load reads a YAML file on top of Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result.
//
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("yaml decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Scale < 1 || c.Window.Scale > 8 {
		return fmt.Errorf("%w: window.scale %d out of range 1..8", ErrInvalid, c.Window.Scale)
	}
	if c.TickHz < 1 || c.TickHz > 1000 {
		return fmt.Errorf("%w: tick_hz %d out of range 1..1000", ErrInvalid, c.TickHz)
	}
	return nil
}

// Apply returns base with every set color replaced.
func (t Theme) Apply(base calculator.Theme) calculator.Theme {
	set := func(dst *color.RGBA, c Color) {
		if c.Set {
			*dst = c.RGBA
		}
	}
	set(&base.Background, t.Background)
	set(&base.DisplayBG, t.DisplayBG)
	set(&base.DisplayText, t.DisplayText)
	set(&base.Button, t.Button)
	set(&base.ButtonText, t.ButtonText)
	set(&base.Operator, t.Operator)
	set(&base.Equal, t.Equal)
	set(&base.Clear, t.Clear)
	set(&base.Focus, t.Focus)
	set(&base.Pressed, t.Pressed)
	return base
}

// Color is a "#rrggbb" (or "#rgb") color.
type Color struct {
	color.RGBA
	Set bool
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.ShortTag() == "!!null" {
		*c = Color{}
		return nil
	}
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: color must be a string", ErrInvalid, value.Line)
	}
	rgba, err := ParseColor(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = Color{RGBA: rgba, Set: true}
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	if !c.Set {
		return nil, nil
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), nil
}

// ParseColor parses "#rrggbb" or "#rgb".
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("%w: color %q must start with #", ErrInvalid, s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: color %q must have 3 or 6 hex digits", ErrInvalid, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q: %v", ErrInvalid, s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}
