package piart

import (
	"testing"
)

func TestNewLabeler(t *testing.T) {
	l, err := newLabeler(MinLabelCellSize - 1)
	if err != nil || l != nil {
		t.Fatalf("newLabeler(small) = %v, %v; want nil, nil", l, err)
	}

	l, err = newLabeler(40)
	if err != nil {
		t.Fatalf("newLabeler(40) error = %v", err)
	}
	defer l.close()
	for d, adv := range l.advance {
		if adv <= 0 || adv.Ceil() >= 40 {
			t.Errorf("advance of %d = %v, want within the cell", d, adv)
		}
	}
}

func TestLabelCentered(t *testing.T) {
	const cell = 40
	cfg := ViewConfig{StartOffset: 0, DigitCount: 1, GridWidth: 1, CellSize: cell}
	digit := MustDigitSequence("8")
	pal := DefaultPalette()
	g := Render(cfg, pal, digit, WithDigitLabels(true))
	bg := pal.Color('8')

	minX, maxX, minY, maxY := cell, -1, cell, -1
	for y := range cell {
		for x := range cell {
			if g.Pixmap().GetPixel(x, y) == bg {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < 0 {
		t.Fatal("no glyph pixels")
	}

	tests := []struct {
		name   string
		lo, hi int
		slack  int
	}{
		{"horizontal", minX, maxX, 3},
		// Vertical placement centers the line box, not the ink.
		{"vertical", minY, maxY, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := tt.lo, cell-1-tt.hi
			if diff := left - right; diff < -tt.slack || diff > tt.slack {
				t.Errorf("margins %d and %d differ by more than %dpx", left, right, tt.slack)
			}
		})
	}
}
