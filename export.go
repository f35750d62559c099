package piart

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// ErrEmptyImage is returned when exporting a grid with no pixels.
var ErrEmptyImage = errors.New("piart: grid has no pixels")

// ExportFilename returns the conventional file name for an export of cfg:
// "pi-art-<start>-<count>.png".
func ExportFilename(cfg ViewConfig) string {
	return fmt.Sprintf("pi-art-%d-%d.png", cfg.StartOffset, cfg.DigitCount)
}

// EncodePNG writes the grid as a PNG with the grid's exact pixel size.
func (g *Grid) EncodePNG(w io.Writer) error {
	return g.EncodePNGScaled(w, 1)
}

// EncodePNGScaled writes the grid enlarged by an integer factor using
// nearest-neighbour sampling, so cell edges stay sharp. Factors below 1
// are treated as 1.
func (g *Grid) EncodePNGScaled(w io.Writer, scale int) error {
	if g.Width() == 0 || g.Height() == 0 {
		return ErrEmptyImage
	}
	scale = max(scale, 1)

	var img image.Image = g.pixmap.ToImage()
	if scale > 1 {
		dst := image.NewNRGBA(image.Rect(0, 0, g.Width()*scale, g.Height()*scale))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = dst
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("piart: encode PNG: %w", err)
	}
	return nil
}

// PNG returns the grid encoded as PNG bytes.
func (g *Grid) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := g.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SavePNG writes the grid to a PNG file, enlarged by scale.
func (g *Grid) SavePNG(path string, scale int) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("piart: create file: %w", err)
	}
	if err := g.EncodePNGScaled(f, scale); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("piart: close file: %w", err)
	}
	Logger().Info("exported grid",
		slog.String("path", path),
		slog.Int("width", g.Width()*max(scale, 1)),
		slog.Int("height", g.Height()*max(scale, 1)))
	return nil
}
