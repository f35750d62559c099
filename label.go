package piart

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// MinLabelCellSize is the smallest cell that gets a digit label.
const MinLabelCellSize = 15

// labelScale is the glyph size relative to the cell.
const labelScale = 0.6

// labelFonts holds Go Regular parsed for shaping and for rasterizing.
type labelFonts struct {
	shape  *gtfont.Font
	raster *opentype.Font
}

var loadLabelFonts = sync.OnceValues(func() (labelFonts, error) {
	face, err := gtfont.ParseTTF(bytes.NewReader(goregular.TTF))
	if err != nil {
		return labelFonts{}, fmt.Errorf("piart: parse label font: %w", err)
	}
	raster, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return labelFonts{}, fmt.Errorf("piart: parse label font: %w", err)
	}
	return labelFonts{shape: face.Font, raster: raster}, nil
})

// labeler draws digit glyphs into cells of one size. It is not safe for
// concurrent use; Render creates one per call.
type labeler struct {
	face    font.Face
	cell    int
	ascent  int
	descent int
	advance [10]fixed.Int26_6
}

// newLabeler returns nil when cells are too small for a label.
func newLabeler(cell int) (*labeler, error) {
	if cell < MinLabelCellSize {
		return nil, nil
	}
	fonts, err := loadLabelFonts()
	if err != nil {
		return nil, err
	}
	px := float64(cell) * labelScale
	face, err := opentype.NewFace(fonts.raster, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("piart: label face: %w", err)
	}

	m := face.Metrics()
	l := &labeler{
		face:    face,
		cell:    cell,
		ascent:  m.Ascent.Ceil(),
		descent: m.Descent.Ceil(),
	}

	var shaper shaping.HarfbuzzShaper
	shapeFace := gtfont.NewFace(fonts.shape)
	for d := range l.advance {
		text := []rune{rune('0' + d)}
		out := shaper.Shape(shaping.Input{
			Text:      text,
			RunStart:  0,
			RunEnd:    len(text),
			Direction: di.DirectionLTR,
			Face:      shapeFace,
			Size:      fixed.Int26_6(px * 64),
			Script:    language.Latin,
			Language:  language.NewLanguage("en"),
		})
		for _, g := range out.Glyphs {
			l.advance[d] += g.Advance
		}
	}
	return l, nil
}

// draw centers digit in the cell at (x, y), in whichever of black or white
// contrasts with bg.
func (l *labeler) draw(pm *Pixmap, x, y int, digit byte, bg Color) {
	if digit < '0' || digit > '9' {
		return
	}
	d := font.Drawer{
		Dst:  pm,
		Src:  image.NewUniform(bg.Contrast()),
		Face: l.face,
	}
	adv := l.advance[digit-'0']
	d.Dot = fixed.Point26_6{
		X: fixed.I(x) + (fixed.I(l.cell)-adv)/2,
		Y: fixed.I(y + (l.cell-l.ascent-l.descent)/2 + l.ascent),
	}
	d.DrawString(string(digit))
}

func (l *labeler) close() {
	_ = l.face.Close()
}

// labelerFor returns a labeler for cfg, or nil when labels are off, cells
// are too small, or the font could not be loaded.
func labelerFor(on bool, cell int) *labeler {
	if !on {
		return nil
	}
	l, err := newLabeler(cell)
	if err != nil {
		Logger().Warn("digit labels disabled", slog.Any("error", err))
		return nil
	}
	return l
}
