package piart

import (
	"errors"
	"fmt"
)

// ErrInvalidView is returned by ViewConfig.Validate for non-positive sizes
// or a negative start offset.
var ErrInvalidView = errors.New("piart: invalid view config")

// ViewConfig selects which digits are drawn and how the grid is laid out.
// It is a plain value: edits produce a new ViewConfig rather than mutating
// a shared one.
type ViewConfig struct {
	StartOffset int // index of the first digit drawn
	DigitCount  int // number of cells in the grid
	GridWidth   int // columns
	CellSize    int // pixels per cell edge
}

// DefaultViewConfig returns the initial view: the first 1000 digits in
// 50 columns of 12px cells.
func DefaultViewConfig() ViewConfig {
	return ViewConfig{
		StartOffset: 0,
		DigitCount:  1000,
		GridWidth:   50,
		CellSize:    12,
	}
}

// Validate reports whether the config can be rendered.
func (c ViewConfig) Validate() error {
	switch {
	case c.StartOffset < 0:
		return fmt.Errorf("%w: start offset %d < 0", ErrInvalidView, c.StartOffset)
	case c.DigitCount <= 0:
		return fmt.Errorf("%w: digit count %d <= 0", ErrInvalidView, c.DigitCount)
	case c.GridWidth <= 0:
		return fmt.Errorf("%w: grid width %d <= 0", ErrInvalidView, c.GridWidth)
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell size %d <= 0", ErrInvalidView, c.CellSize)
	}
	return nil
}

// Rows returns ceil(DigitCount / GridWidth).
func (c ViewConfig) Rows() int {
	if c.GridWidth <= 0 || c.DigitCount <= 0 {
		return 0
	}
	return (c.DigitCount + c.GridWidth - 1) / c.GridWidth
}

// Size returns the pixel dimensions of the rendered grid.
func (c ViewConfig) Size() (width, height int) {
	return c.GridWidth * c.CellSize, c.Rows() * c.CellSize
}

// Normalize clamps c against a sequence of n digits: DigitCount never
// exceeds n and StartOffset never passes the last digit. Non-positive sizes
// are raised to 1 and a negative offset to 0.
func (c ViewConfig) Normalize(n int) ViewConfig {
	c.StartOffset = max(c.StartOffset, 0)
	c.DigitCount = max(c.DigitCount, 1)
	c.GridWidth = max(c.GridWidth, 1)
	c.CellSize = max(c.CellSize, 1)
	if n > 0 {
		c.DigitCount = min(c.DigitCount, n)
		c.StartOffset = min(c.StartOffset, n-1)
	}
	return c
}

// Limits are the ranges an interactive session permits for each field.
type Limits struct {
	MinCount, MaxCount int
	MinWidth, MaxWidth int
	MinCell, MaxCell   int

	// Steps used by interactive controls.
	StartStep, CountStep int
}

// DefaultLimits returns the ranges of the interactive slider controls.
func DefaultLimits() Limits {
	return Limits{
		MinCount: 100, MaxCount: 5000,
		MinWidth: 10, MaxWidth: 200,
		MinCell: 2, MaxCell: 40,
		StartStep: 10, CountStep: 50,
	}
}

// Apply clamps c into the limits for a sequence of n digits. The start
// offset is bounded so that a full DigitCount window fits: [0, n-DigitCount].
func (l Limits) Apply(c ViewConfig, n int) ViewConfig {
	c.DigitCount = clampInt(c.DigitCount, l.MinCount, l.MaxCount)
	c.GridWidth = clampInt(c.GridWidth, l.MinWidth, l.MaxWidth)
	c.CellSize = clampInt(c.CellSize, l.MinCell, l.MaxCell)
	c = c.Normalize(n)
	c.StartOffset = clampInt(c.StartOffset, 0, max(0, n-c.DigitCount))
	return c
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
