package piart

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrIncompletePalette is returned when a digit->color mapping does not
// contain exactly the keys "0" through "9".
var ErrIncompletePalette = errors.New("piart: palette must map exactly the digits 0-9")

// ErrUnknownPreset is returned for a preset name that is not registered.
var ErrUnknownPreset = errors.New("piart: unknown palette preset")

// Palette maps each decimal digit to a color. Index i holds the color of
// digit i, so every digit always has an entry.
type Palette [10]Color

// Color returns the color for a digit character '0'..'9'.
func (p Palette) Color(digit byte) Color {
	return p[digit-'0']
}

// With returns a copy of p with digit d (0-9) set to c.
func (p Palette) With(d int, c Color) Palette {
	p[d] = c
	return p
}

// Map returns the palette as a "0".."9" -> "#rrggbb" map.
func (p Palette) Map() map[string]string {
	m := make(map[string]string, len(p))
	for d, c := range p {
		m[strconv.Itoa(d)] = c.Hex()
	}
	return m
}

// ParsePaletteColor parses a palette entry. It accepts what ParseHex
// accepts except colors that are not fully opaque.
func ParsePaletteColor(s string) (Color, error) {
	c, err := ParseHex(s)
	if err != nil {
		return Color{}, err
	}
	if c.A != 255 {
		return Color{}, fmt.Errorf("%w: %q is not opaque", ErrInvalidColor, strings.TrimSpace(s))
	}
	return c, nil
}

// PaletteFromMap builds a palette from a digit-keyed map of hex colors.
// The map must contain exactly the keys "0" through "9".
func PaletteFromMap(m map[string]string) (Palette, error) {
	var p Palette
	if len(m) != len(p) {
		return p, fmt.Errorf("%w: got %d keys", ErrIncompletePalette, len(m))
	}
	for d := range p {
		key := strconv.Itoa(d)
		v, ok := m[key]
		if !ok {
			return p, fmt.Errorf("%w: missing key %q", ErrIncompletePalette, key)
		}
		c, err := ParsePaletteColor(v)
		if err != nil {
			return p, fmt.Errorf("digit %s: %w", key, err)
		}
		p[d] = c
	}
	return p, nil
}

// String returns the palette as "0=#rrggbb 1=#rrggbb ...".
func (p Palette) String() string {
	var sb strings.Builder
	for d, c := range p {
		if d > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(d))
		sb.WriteByte('=')
		sb.WriteString(c.Hex())
	}
	return sb.String()
}

func mustPalette(hex ...string) Palette {
	var p Palette
	if len(hex) != len(p) {
		panic("piart: preset needs 10 colors")
	}
	for d, h := range hex {
		p[d] = MustParseHex(h)
	}
	return p
}

// Built-in presets.
var presets = map[string]Palette{
	"default": mustPalette(
		"#ef4444", "#f97316", "#f59e0b", "#84cc16", "#10b981",
		"#06b6d4", "#3b82f6", "#6366f1", "#a855f7", "#ec4899",
	),
	"pastel": mustPalette(
		"#fecaca", "#fed7aa", "#fde68a", "#d9f99d", "#a7f3d0",
		"#a5f3fc", "#bfdbfe", "#c7d2fe", "#e9d5ff", "#fbcfe8",
	),
	"monochrome": mustPalette(
		"#000000", "#1c1c1c", "#383838", "#555555", "#717171",
		"#8e8e8e", "#aaaaaa", "#c6c6c6", "#e2e2e2", "#ffffff",
	),
}

// DefaultPalette returns the palette a new session starts with.
func DefaultPalette() Palette {
	return presets["default"]
}

// Preset looks up a built-in palette by name (case-insensitive).
func Preset(name string) (Palette, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Palette{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// PresetNames returns the names of the built-in presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
