package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/piart"
	"github.com/gogpu/piart/palettegen"
	"github.com/gogpu/piart/session"
	"github.com/gogpu/piart/tui"
)

func (a *app) view(args []string) error {
	fs := newFlagSet("view", a.stderr)
	var c common
	c.register(fs)
	c.registerProvider(fs)
	watch := fs.Bool("watch", false, "reload the palette file when it changes")
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
	renderOpts, err := cfg.RenderOptions()
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

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	// Logs would corrupt the terminal.
	piart.SetLogger(nil)

	sess := session.New(
		session.WithView(cfg.ViewConfig()),
		session.WithPalette(pal),
		session.WithGenerator(gen),
		session.WithRenderOptions(renderOpts...),
		session.WithExport(cfg.Export.Dir, max(cfg.Export.Scale, 1)),
		session.WithPaletteListener(func(piart.Palette) {
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		}),
	)
	defer sess.Close()

	if *watch && cfg.Palette.File != "" {
		if err := sess.WatchPalette(cfg.Palette.File); err != nil {
			return err
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		signal.Stop(signals)
		close(signals)
	}()
	go func() {
		if _, ok := <-signals; ok {
			screen.Fini()
		}
	}()

	seed := cfg.Generator.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	v := tui.New(screen, sess, seed)
	v.SetLabels(cfg.Render.Labels)
	v.Run()
	return nil
}
