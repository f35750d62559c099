package piart

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned when a color string cannot be parsed.
var ErrInvalidColor = errors.New("piart: invalid color")

// Color is an 8-bit, non-premultiplied RGBA color.
// Palette entries are always opaque; only backgrounds may carry alpha.
type Color struct {
	R, G, B, A uint8
}

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// RGB creates an opaque color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Hex returns the "#rrggbb" representation of the color. Alpha is dropped.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	if c.A != 255 {
		return fmt.Sprintf("%s@%d", c.Hex(), c.A)
	}
	return c.Hex()
}

// ParseHex parses a hex color. Supported formats: "#rgb" and "#rrggbb";
// the leading '#' is optional and surrounding whitespace is ignored.
// The keyword "transparent" yields a fully transparent color.
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "transparent") {
		return Transparent, nil
	}
	if s != "" && s[0] != '#' {
		s = "#" + s
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return fromColorful(c), nil
}

// MustParseHex is like ParseHex but panics on error.
// It is intended for package-level color tables.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Contrast returns black or white, whichever reads better on top of c.
func (c Color) Contrast() Color {
	l, _, _ := c.colorful().Lab()
	if l > 0.6 {
		return Black
	}
	return White
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return RGB(r, g, b)
}

// FromColorful converts a go-colorful color to an opaque Color.
func FromColorful(c colorful.Color) Color {
	return fromColorful(c)
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(255, 255, 255)
	Transparent = Color{}

	// Background is the default canvas color behind unpainted cells.
	Background = RGB(0x11, 0x18, 0x27)
)
