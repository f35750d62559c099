package main

import (
	"fmt"
	"path/filepath"

	"github.com/gogpu/piart"
)

func (a *app) render(args []string) error {
	fs := newFlagSet("render", a.stderr)
	var c common
	c.register(fs)
	out := fs.String("o", "", "output file (default pi-art-<start>-<count>.png in the export dir)")
	scale := fs.Int("scale", 0, "integer up-scaling factor")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	cfg, err := a.loadConfig(fs, &c)
	if err != nil {
		return err
	}
	pal, err := cfg.LoadPalette()
	if err != nil {
		return err
	}
	opts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}

	digits := piart.Pi()
	view := cfg.ViewConfig().Normalize(digits.Len())
	grid := piart.Render(view, pal, digits, opts...)

	path := *out
	if path == "" {
		path = filepath.Join(cfg.Export.Dir, piart.ExportFilename(view))
	}
	s := cfg.Export.Scale
	if *scale > 0 {
		s = *scale
	}
	if err := grid.SavePNG(path, s); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s\n%s\n", path, piart.Summary(view))
	return nil
}

func (a *app) hit(args []string) error {
	fs := newFlagSet("hit", a.stderr)
	var c common
	c.register(fs)
	x := fs.Float64("x", 0, "pixel x coordinate")
	y := fs.Float64("y", 0, "pixel y coordinate")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	cfg, err := a.loadConfig(fs, &c)
	if err != nil {
		return err
	}
	pal, err := cfg.LoadPalette()
	if err != nil {
		return err
	}

	digits := piart.Pi()
	view := cfg.ViewConfig().Normalize(digits.Len())
	h, ok := piart.HitTest(*x, *y, view, pal, digits)
	if !ok {
		fmt.Fprintln(a.stdout, "no digit")
		return nil
	}
	fmt.Fprintln(a.stdout, h.String())
	return nil
}
