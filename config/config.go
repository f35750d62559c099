package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/piart"
	"github.com/gogpu/piart/palettegen"
)

// Config is the complete piart configuration.
type Config struct {
	View      View      `toml:"view"`
	Palette   Palette   `toml:"palette"`
	Render    Render    `toml:"render"`
	Generator Generator `toml:"generator"`
	Log       Log       `toml:"log"`
	Export    Export    `toml:"export"`
}

// View holds the initial grid view.
type View struct {
	Start    int `toml:"start"`
	Count    int `toml:"count"`
	Width    int `toml:"width"`
	CellSize int `toml:"cell_size"`
}

// Palette selects the initial palette. Preset is applied first, then File
// replaces it, then Colors overrides individual digits.
type Palette struct {
	Preset string            `toml:"preset"`
	File   string            `toml:"file"`
	Colors map[string]string `toml:"colors"`
}

// Render holds grid rendering options.
type Render struct {
	Background string `toml:"background"`
	Labels     bool   `toml:"labels"`
}

// Generator configures the palette generator.
type Generator struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	// APIKeyEnv names an environment variable holding the API key.
	APIKeyEnv  string   `toml:"api_key_env"`
	BaseURL    string   `toml:"base_url"`
	Timeout    Duration `toml:"timeout"`
	MaxRetries int      `toml:"max_retries"`
	// Script is the path of a Lua file for the script provider.
	Script string `toml:"script"`
	Seed   int64  `toml:"seed"`
}

// Log configures the slog handler installed by the CLI.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

// Export configures PNG export.
type Export struct {
	Dir   string `toml:"dir"`
	Scale int    `toml:"scale"`
}

// Duration is a time.Duration written as a string such as "30s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	v := piart.DefaultViewConfig()
	return Config{
		View: View{
			Start:    v.StartOffset,
			Count:    v.DigitCount,
			Width:    v.GridWidth,
			CellSize: v.CellSize,
		},
		Palette: Palette{Preset: "default"},
		Render:  Render{Background: piart.Background.Hex()},
		Generator: Generator{
			Provider:   palettegen.ProviderGemini,
			Timeout:    Duration(palettegen.DefaultTimeout),
			MaxRetries: 2,
		},
		Log:    Log{Level: "info", Format: "text"},
		Export: Export{Dir: ".", Scale: 1},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return parse(path, data)
}

// Parse decodes TOML data over the defaults.
func Parse(data []byte) (Config, error) {
	return parse("<input>", data)
}

func parse(source string, data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, parseError(source, err)
	}
	return cfg, nil
}

func parseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var decErr *toml.DecodeError
	var strictErr *toml.StrictMissingError
	switch {
	case errors.As(err, &decErr):
		pe.Line, pe.Column = decErr.Position()
	case errors.As(err, &strictErr):
		pe.Message = "unknown keys:\n" + strictErr.String()
		if len(strictErr.Errors) > 0 {
			pe.Line, pe.Column = strictErr.Errors[0].Position()
		}
	}
	return pe
}

// Encode returns cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// Validate checks values that cannot be clamped.
func (c Config) Validate() error {
	if err := c.ViewConfig().Validate(); err != nil {
		return fmt.Errorf("%w: view: %w", ErrInvalidConfig, err)
	}
	if c.Palette.Preset != "" {
		if _, err := piart.Preset(c.Palette.Preset); err != nil {
			return fmt.Errorf("%w: palette.preset: %w", ErrInvalidConfig, err)
		}
	}
	if c.Render.Background != "" {
		if _, err := piart.ParseHex(c.Render.Background); err != nil {
			return fmt.Errorf("%w: render.background: %w", ErrInvalidConfig, err)
		}
	}
	if p := strings.ToLower(c.Generator.Provider); p != "" && !slices.Contains(palettegen.Providers(), p) {
		return invalid("generator.provider", "unknown provider %q", c.Generator.Provider)
	}
	if _, err := c.LogLevel(); err != nil {
		return invalid("log.level", "%v", err)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return invalid("log.format", "want text or json, got %q", c.Log.Format)
	}
	if c.Export.Scale < 0 {
		return invalid("export.scale", "must not be negative")
	}
	return nil
}

// ViewConfig returns the configured view.
func (c Config) ViewConfig() piart.ViewConfig {
	return piart.ViewConfig{
		StartOffset: c.View.Start,
		DigitCount:  c.View.Count,
		GridWidth:   c.View.Width,
		CellSize:    c.View.CellSize,
	}
}

// LoadPalette builds the configured palette, reading Palette.File if set.
func (c Config) LoadPalette() (piart.Palette, error) {
	p := piart.DefaultPalette()
	if c.Palette.Preset != "" {
		var err error
		if p, err = piart.Preset(c.Palette.Preset); err != nil {
			return piart.Palette{}, err
		}
	}
	if c.Palette.File != "" {
		var err error
		if p, err = piart.LoadPalette(c.Palette.File); err != nil {
			return piart.Palette{}, err
		}
	}
	for key, hex := range c.Palette.Colors {
		if len(key) != 1 || key[0] < '0' || key[0] > '9' {
			return piart.Palette{}, fmt.Errorf("%w: palette.colors key %q", piart.ErrIncompletePalette, key)
		}
		col, err := piart.ParsePaletteColor(hex)
		if err != nil {
			return piart.Palette{}, fmt.Errorf("palette.colors[%s]: %w", key, err)
		}
		p = p.With(int(key[0]-'0'), col)
	}
	return p, nil
}

// RenderOptions converts the render section to piart options.
func (c Config) RenderOptions() ([]piart.RenderOption, error) {
	opts := []piart.RenderOption{piart.WithDigitLabels(c.Render.Labels)}
	if c.Render.Background != "" {
		bg, err := piart.ParseHex(c.Render.Background)
		if err != nil {
			return nil, fmt.Errorf("render.background: %w", err)
		}
		opts = append(opts, piart.WithBackground(bg))
	}
	return opts, nil
}

// GeneratorConfig converts the generator section, reading the Lua script
// for the script provider.
func (c Config) GeneratorConfig() (palettegen.Config, error) {
	g := c.Generator
	out := palettegen.Config{
		Provider:   g.Provider,
		Model:      g.Model,
		APIKey:     g.APIKey,
		BaseURL:    g.BaseURL,
		Timeout:    time.Duration(g.Timeout),
		MaxRetries: g.MaxRetries,
		Seed:       g.Seed,
	}
	if g.Script != "" {
		src, err := os.ReadFile(g.Script)
		if err != nil {
			return palettegen.Config{}, fmt.Errorf("config: reading script: %w", err)
		}
		out.Script = string(src)
	}
	return out, nil
}

// LogLevel parses Log.Level; empty means info.
func (c Config) LogLevel() (slog.Level, error) {
	var l slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	err := l.UnmarshalText([]byte(c.Log.Level))
	return l, err
}
