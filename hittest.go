package piart

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CellHit describes the digit under a pixel.
type CellHit struct {
	DigitIndex int   // 0-based index into the digit sequence
	Position   int   // DigitIndex + 1, for display
	LocalIndex int   // row*GridWidth + col
	Row, Col   int   // cell coordinates within the grid
	Digit      byte  // '0'..'9'
	Color      Color // palette color of Digit
}

// String formats the hit the way the hover tooltip shows it.
func (h CellHit) String() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("digit %c at #%d (%s)", h.Digit, h.Position, h.Color.Hex())
}

// HitTest maps the pixel (px, py) back to the digit drawn there by Render
// with the same inputs. It returns false when the point is left of or above
// the grid, right of the last column, past DigitCount cells, or past the end
// of the sequence.
func HitTest(px, py float64, cfg ViewConfig, pal Palette, digits DigitSequence) (CellHit, bool) {
	if cfg.CellSize <= 0 || cfg.GridWidth <= 0 || digits.Len() == 0 {
		return CellHit{}, false
	}
	if math.IsNaN(px) || math.IsNaN(py) {
		return CellHit{}, false
	}

	col := math.Floor(px / float64(cfg.CellSize))
	row := math.Floor(py / float64(cfg.CellSize))
	if col < 0 || col >= float64(cfg.GridWidth) || row < 0 {
		return CellHit{}, false
	}
	if row >= float64(cfg.Rows()) {
		return CellHit{}, false
	}

	local := int(row)*cfg.GridWidth + int(col)
	if local < 0 || local >= cfg.DigitCount {
		return CellHit{}, false
	}

	start, _ := digits.segment(cfg.StartOffset, cfg.DigitCount)
	global := start + local
	if global >= digits.Len() {
		return CellHit{}, false
	}

	d := digits.At(global)
	return CellHit{
		DigitIndex: global,
		Position:   global + 1,
		LocalIndex: local,
		Row:        int(row),
		Col:        int(col),
		Digit:      d,
		Color:      pal.Color(d),
	}, true
}

// HitTest is like the package-level HitTest, using the grid's own inputs.
func (g *Grid) HitTest(px, py float64) (CellHit, bool) {
	cfg := g.config
	if cfg.CellSize <= 0 || cfg.GridWidth <= 0 {
		return CellHit{}, false
	}
	col := math.Floor(px / float64(cfg.CellSize))
	row := math.Floor(py / float64(cfg.CellSize))
	if col < 0 || col >= float64(cfg.GridWidth) || row < 0 || row >= float64(cfg.Rows()) {
		return CellHit{}, false
	}
	local := int(row)*cfg.GridWidth + int(col)
	if local >= len(g.segment) {
		return CellHit{}, false
	}
	d := g.segment[local]
	return CellHit{
		DigitIndex: g.start + local,
		Position:   g.start + local + 1,
		LocalIndex: local,
		Row:        int(row),
		Col:        int(col),
		Digit:      d,
		Color:      g.palette.Color(d),
	}, true
}
