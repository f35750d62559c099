package piart

import (
	"image"
	"log/slog"
)

// Grid is the result of Render: a pixel buffer with one square cell per
// digit, plus the inputs needed to answer questions about it. A Grid is
// never modified after Render returns.
type Grid struct {
	config  ViewConfig
	palette Palette
	start   int
	segment string
	pixmap  *Pixmap
}

// Render draws the digits selected by cfg into a new Grid.
//
// The visible segment is digits[safeStart:safeEnd] with
// safeStart = min(StartOffset, len-1) and safeEnd = min(safeStart+DigitCount, len).
// Digit i of the segment fills the cell at column i%GridWidth and row
// i/GridWidth. Cells past the end of the segment keep the background color.
// The pixel size is always cfg.Size(), even when the segment is short or
// the sequence is empty.
//
// Render has no error conditions; callers validate cfg (see ViewConfig.Validate).
func Render(cfg ViewConfig, pal Palette, digits DigitSequence, opts ...RenderOption) *Grid {
	o := defaultRenderOptions()
	for _, opt := range opts {
		opt(&o)
	}

	start, segment := digits.segment(cfg.StartOffset, cfg.DigitCount)
	w, h := cfg.Size()
	pm := NewPixmap(w, h)
	pm.Clear(o.background)

	if cfg.GridWidth > 0 && cfg.CellSize > 0 {
		size := cfg.CellSize
		labels := labelerFor(o.labels, size)
		for i := 0; i < len(segment); i++ {
			x := (i % cfg.GridWidth) * size
			y := (i / cfg.GridWidth) * size
			c := pal.Color(segment[i])
			pm.FillRect(x, y, size, size, c)
			if labels != nil {
				labels.draw(pm, x, y, segment[i], c)
			}
		}
		if labels != nil {
			labels.close()
		}
	}

	Logger().Debug("render",
		slog.Int("start", start),
		slog.Int("painted", len(segment)),
		slog.Int("width", w),
		slog.Int("height", h))

	return &Grid{
		config:  cfg,
		palette: pal,
		start:   start,
		segment: segment,
		pixmap:  pm,
	}
}

// Config returns the view the grid was rendered with.
func (g *Grid) Config() ViewConfig {
	return g.config
}

// Palette returns the palette the grid was rendered with.
func (g *Grid) Palette() Palette {
	return g.palette
}

// Start returns the clamped index of the first painted digit.
func (g *Grid) Start() int {
	return g.start
}

// Segment returns the painted digits in cell order.
func (g *Grid) Segment() string {
	return g.segment
}

// Len returns the number of painted cells.
func (g *Grid) Len() int {
	return len(g.segment)
}

// Rows returns the number of cell rows, including a partly filled last row.
func (g *Grid) Rows() int {
	return g.config.Rows()
}

// Width returns the pixel width of the grid.
func (g *Grid) Width() int {
	return g.pixmap.Width()
}

// Height returns the pixel height of the grid.
func (g *Grid) Height() int {
	return g.pixmap.Height()
}

// Pixmap returns the rendered pixels. Callers must not modify them.
func (g *Grid) Pixmap() *Pixmap {
	return g.pixmap
}

// Image returns a copy of the rendered pixels as a standard image.
func (g *Grid) Image() *image.NRGBA {
	return g.pixmap.ToImage()
}

// CellColor returns the color painted in cell i (row-major), or false if
// the cell is unpainted.
func (g *Grid) CellColor(i int) (Color, bool) {
	if i < 0 || i >= len(g.segment) {
		return Color{}, false
	}
	return g.palette.Color(g.segment[i]), true
}

// CellOrigin returns the top-left pixel of cell i.
func (g *Grid) CellOrigin(i int) (x, y int) {
	return (i % g.config.GridWidth) * g.config.CellSize, (i / g.config.GridWidth) * g.config.CellSize
}
