// Package piart renders the digits of pi as a grid of colored cells.
//
// # Overview
//
// Each digit of a DigitSequence becomes one square cell; a Palette maps the
// digits 0-9 to colors. A ViewConfig picks the window of digits and the
// layout. Render produces a Grid, which can be exported as PNG and queried
// with HitTest to find the digit under a pixel.
//
// # Quick Start
//
//	import "github.com/gogpu/piart"
//
//	cfg := piart.DefaultViewConfig()
//	g := piart.Render(cfg, piart.DefaultPalette(), piart.Pi())
//	_ = g.SavePNG(piart.ExportFilename(cfg), 1)
//
//	if hit, ok := g.HitTest(100, 40); ok {
//	    fmt.Println(hit) // digit 5 at #159 (#06b6d4)
//	}
//
// # Coordinate System
//
// Uses standard image coordinates:
//   - Origin (0,0) at the top-left of the first cell
//   - X increases right, Y increases down
//   - Cell i sits at column i%GridWidth, row i/GridWidth
//
// # Clamping
//
// Render never fails on range problems. A start offset past the end of the
// sequence is moved to the last digit and the window is cut at the end of
// the sequence; the image keeps its nominal size and the remaining cells
// show the background.
//
// # Sub-packages
//
//   - palettegen: palettes from a text theme (Gemini, OpenAI, Anthropic),
//     from a Lua script, or at random
//   - session: interactive state with single-flight palette generation
//   - config: TOML configuration with environment overrides
//   - tui: terminal viewer with mouse hover
package piart

// Version is the current version of the module.
const Version = "0.1.0"
