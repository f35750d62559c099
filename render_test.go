package piart

import (
	"bytes"
	"testing"
)

var scenarioDigits = MustDigitSequence("3141592653")

func TestRender_Dimensions(t *testing.T) {
	configs := []ViewConfig{
		{0, 10, 5, 10},
		{0, 11, 5, 10},
		{3, 7, 3, 4},
		{0, 1000, 50, 12},
		{9990, 100, 7, 3},
		{0, 1, 1, 1},
	}
	for _, cfg := range configs {
		g := Render(cfg, DefaultPalette(), Pi())
		wantW := cfg.GridWidth * cfg.CellSize
		wantH := (cfg.DigitCount + cfg.GridWidth - 1) / cfg.GridWidth * cfg.CellSize
		if g.Width() != wantW || g.Height() != wantH {
			t.Errorf("Render(%+v) size = %dx%d, want %dx%d", cfg, g.Width(), g.Height(), wantW, wantH)
		}
		if b := g.Image().Bounds(); b.Dx() != wantW || b.Dy() != wantH {
			t.Errorf("Render(%+v).Image() bounds = %v", cfg, b)
		}
	}
}

func TestRender_CellColors(t *testing.T) {
	pal := DefaultPalette()
	digits := Pi()
	cfg := ViewConfig{StartOffset: 123, DigitCount: 97, GridWidth: 13, CellSize: 3}
	g := Render(cfg, pal, digits)

	n := min(cfg.DigitCount, digits.Len()-cfg.StartOffset)
	if g.Len() != n {
		t.Fatalf("Len() = %d, want %d", g.Len(), n)
	}
	pm := g.Pixmap()
	for i := range n {
		want := pal.Color(digits.At(cfg.StartOffset + i))
		x, y := g.CellOrigin(i)
		// Check both corners of the cell.
		for _, p := range [][2]int{{x, y}, {x + cfg.CellSize - 1, y + cfg.CellSize - 1}} {
			if got := pm.GetPixel(p[0], p[1]); got != want {
				t.Fatalf("cell %d pixel %v = %v, want %v", i, p, got, want)
			}
		}
		if got, ok := g.CellColor(i); !ok || got != want {
			t.Errorf("CellColor(%d) = %v, %v, want %v", i, got, ok, want)
		}
	}
}

func TestRender_Scenario(t *testing.T) {
	pal := DefaultPalette()
	cfg := ViewConfig{StartOffset: 0, DigitCount: 10, GridWidth: 5, CellSize: 10}
	g := Render(cfg, pal, scenarioDigits)

	if g.Rows() != 2 || g.Width() != 50 || g.Height() != 20 {
		t.Fatalf("grid = %d rows, %dx%d px, want 2 rows, 50x20", g.Rows(), g.Width(), g.Height())
	}
	if got := g.Pixmap().GetPixel(0, 0); got != pal.Color('3') {
		t.Errorf("cell (0,0) = %v, want palette['3'] %v", got, pal.Color('3'))
	}
	// Row 1, column 4 is digit index 9.
	if got := g.Pixmap().GetPixel(4*10+5, 1*10+5); got != pal.Color('3') {
		t.Errorf("cell (1,4) = %v, want palette['3'] %v", got, pal.Color('3'))
	}
}

func TestRender_EndOfSequence(t *testing.T) {
	pal := DefaultPalette()
	cfg := ViewConfig{StartOffset: scenarioDigits.Len() - 1, DigitCount: 100, GridWidth: 10, CellSize: 2}
	g := Render(cfg, pal, scenarioDigits)

	if g.Len() != 1 || g.Segment() != "3" {
		t.Fatalf("segment = %q, want \"3\"", g.Segment())
	}
	if g.Width() != 20 || g.Height() != 20 {
		t.Fatalf("size = %dx%d, want 20x20", g.Width(), g.Height())
	}
	pm := g.Pixmap()
	if got := pm.GetPixel(0, 0); got != pal.Color('3') {
		t.Errorf("first cell = %v, want %v", got, pal.Color('3'))
	}
	for i := 1; i < cfg.DigitCount; i++ {
		x, y := g.CellOrigin(i)
		if got := pm.GetPixel(x, y); got != Background {
			t.Fatalf("cell %d = %v, want background", i, got)
		}
		if _, ok := g.CellColor(i); ok {
			t.Fatalf("CellColor(%d) reported a painted cell", i)
		}
	}
}

func TestRender_StartPastEnd(t *testing.T) {
	g := Render(ViewConfig{StartOffset: 500, DigitCount: 4, GridWidth: 2, CellSize: 1}, DefaultPalette(), scenarioDigits)
	if g.Start() != 9 || g.Segment() != "3" {
		t.Errorf("Start() = %d, Segment() = %q, want 9, \"3\"", g.Start(), g.Segment())
	}
}

func TestRender_EmptySequence(t *testing.T) {
	cfg := ViewConfig{StartOffset: 4, DigitCount: 6, GridWidth: 4, CellSize: 2}
	g := Render(cfg, DefaultPalette(), DigitSequence{})
	if g.Len() != 0 {
		t.Errorf("Len() = %d, want 0", g.Len())
	}
	if g.Width() != 8 || g.Height() != 4 {
		t.Errorf("size = %dx%d, want 8x4", g.Width(), g.Height())
	}
	for y := range g.Height() {
		for x := range g.Width() {
			if got := g.Pixmap().GetPixel(x, y); got != Background {
				t.Fatalf("pixel (%d,%d) = %v, want background", x, y, got)
			}
		}
	}
}

func TestRender_Idempotent(t *testing.T) {
	cfg := ViewConfig{StartOffset: 42, DigitCount: 333, GridWidth: 17, CellSize: 5}
	a, err := Render(cfg, DefaultPalette(), Pi()).PNG()
	if err != nil {
		t.Fatalf("PNG() error = %v", err)
	}
	b, err := Render(cfg, DefaultPalette(), Pi()).PNG()
	if err != nil {
		t.Fatalf("PNG() error = %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two renders with identical inputs produced different PNG bytes")
	}
}

func TestRender_Background(t *testing.T) {
	cfg := ViewConfig{StartOffset: 0, DigitCount: 3, GridWidth: 2, CellSize: 4}
	g := Render(cfg, DefaultPalette(), scenarioDigits, WithBackground(Transparent))
	x, y := g.CellOrigin(3)
	if got := g.Pixmap().GetPixel(x, y); got != Transparent {
		t.Errorf("unpainted cell = %v, want transparent", got)
	}
}

func TestRender_DigitLabels(t *testing.T) {
	pal := DefaultPalette()
	cfg := ViewConfig{StartOffset: 0, DigitCount: 4, GridWidth: 4, CellSize: 20}
	g := Render(cfg, pal, scenarioDigits, WithDigitLabels(true))

	for i := range 4 {
		cellColor, _ := g.CellColor(i)
		x0, y0 := g.CellOrigin(i)
		glyph := 0
		for y := y0; y < y0+cfg.CellSize; y++ {
			for x := x0; x < x0+cfg.CellSize; x++ {
				if g.Pixmap().GetPixel(x, y) != cellColor {
					glyph++
				}
			}
		}
		if glyph == 0 {
			t.Errorf("cell %d has no glyph pixels", i)
		}
		// Corners stay untouched by the centered glyph.
		if got := g.Pixmap().GetPixel(x0, y0); got != cellColor {
			t.Errorf("cell %d corner = %v, want %v", i, got, cellColor)
		}
	}

	// Cells too small for a glyph render exactly as without labels.
	small := ViewConfig{StartOffset: 0, DigitCount: 4, GridWidth: 4, CellSize: MinLabelCellSize - 1}
	plain := Render(small, pal, scenarioDigits)
	labeled := Render(small, pal, scenarioDigits, WithDigitLabels(true))
	if !bytes.Equal(plain.Pixmap().Data(), labeled.Pixmap().Data()) {
		t.Error("labels drawn into cells smaller than MinLabelCellSize")
	}
}
