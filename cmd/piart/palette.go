package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gogpu/piart"
	"github.com/gogpu/piart/palettegen"
	"github.com/gogpu/piart/session"
)

func (a *app) palette(args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.stderr, "usage: piart palette list|show|generate|convert [flags]")
		return errUsage
	}
	switch args[0] {
	case "list":
		for _, name := range piart.PresetNames() {
			p, _ := piart.Preset(name)
			fmt.Fprintf(a.stdout, "%-10s %s\n", name, p)
		}
		return nil
	case "show":
		return a.paletteShow(args[1:])
	case "generate":
		return a.paletteGenerate(args[1:])
	case "convert":
		return a.paletteConvert(args[1:])
	default:
		fmt.Fprintf(a.stderr, "piart palette: unknown command %q\n", args[0])
		return errUsage
	}
}

func (a *app) paletteShow(args []string) error {
	fs := newFlagSet("palette show", a.stderr)
	var c common
	c.register(fs)
	format := fs.String("format", "json", "output format: json or yaml")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	cfg, err := a.loadConfig(fs, &c)
	if err != nil {
		return err
	}
	p, err := cfg.LoadPalette()
	if err != nil {
		return err
	}
	data, err := piart.EncodePalette(p, "."+strings.TrimPrefix(*format, "."))
	if err != nil {
		return err
	}
	_, err = a.stdout.Write(data)
	return err
}

func (a *app) paletteGenerate(args []string) error {
	fs := newFlagSet("palette generate", a.stderr)
	var c common
	c.register(fs)
	c.registerProvider(fs)
	out := fs.String("o", "", "write the palette to this file (.json, .yaml)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	theme := strings.Join(fs.Args(), " ")

	cfg, err := a.loadConfig(fs, &c)
	if err != nil {
		return err
	}
	gc, err := cfg.GeneratorConfig()
	if err != nil {
		return err
	}
	gen, err := palettegen.New(gc)
	if err != nil {
		return err
	}

	sess := session.New(session.WithGenerator(gen))
	defer sess.Close()

	p, err := sess.Generate(context.Background(), theme)
	if err != nil {
		var genErr *palettegen.GenerationError
		if errors.As(err, &genErr) || errors.Is(err, palettegen.ErrEmptyTheme) {
			return errors.New(palettegen.UserMessage(err))
		}
		return err
	}

	if *out == "" {
		data, err := piart.EncodePalette(p, ".json")
		if err != nil {
			return err
		}
		_, err = a.stdout.Write(data)
		return err
	}
	if err := piart.SavePalette(*out, p); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, *out)
	return nil
}

func (a *app) paletteConvert(args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(a.stderr, "usage: piart palette convert <in> <out>")
		return errUsage
	}
	p, err := piart.LoadPalette(args[0])
	if err != nil {
		return err
	}
	if err := piart.SavePalette(args[1], p); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s -> %s (%s)\n", args[0], args[1], strings.TrimPrefix(filepath.Ext(args[1]), "."))
	return nil
}
