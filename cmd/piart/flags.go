package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gogpu/piart"
	"github.com/gogpu/piart/config"
	"github.com/gogpu/piart/palettegen"
)

var (
	// errUsage reports a usage error that has already been printed.
	errUsage = errors.New("usage")

	// errHelp reports that help was requested and printed.
	errHelp = errors.New("help")
)

// common holds the flags shared by commands that render a view.
type common struct {
	configPath string
	start      int
	count      int
	width      int
	cell       int
	palette    string
	labels     bool
	logLevel   string
	provider   string
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "piart.toml", "configuration file")
	fs.IntVar(&c.start, "start", 0, "index of the first digit")
	fs.IntVar(&c.count, "count", 0, "number of digits")
	fs.IntVar(&c.width, "width", 0, "cells per row")
	fs.IntVar(&c.cell, "cell", 0, "cell size in pixels")
	fs.StringVar(&c.palette, "palette", "", "preset name or palette file (.json, .yaml)")
	fs.BoolVar(&c.labels, "labels", false, "draw digit glyphs in cells")
	fs.StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// registerProvider adds -provider for commands that generate palettes.
func (c *common) registerProvider(fs *flag.FlagSet) {
	fs.StringVar(&c.provider, "provider", "", "generator: "+strings.Join(palettegen.Providers(), ", "))
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("piart "+name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return errHelp
	case err != nil:
		return errUsage
	}
	return nil
}

// loadConfig reads the config file and environment, then applies the
// flags that were set explicitly.
func (a *app) loadConfig(fs *flag.FlagSet, c *common) (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.ApplyEnv(a.flagEnv(fs, c)); err != nil {
		return config.Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "start":
			cfg.View.Start = c.start
		case "count":
			cfg.View.Count = c.count
		case "width":
			cfg.View.Width = c.width
		case "cell":
			cfg.View.CellSize = c.cell
		case "labels":
			cfg.Render.Labels = c.labels
		case "log-level":
			cfg.Log.Level = c.logLevel
		case "palette":
			if _, err := piart.Preset(c.palette); err == nil {
				cfg.Palette.Preset, cfg.Palette.File = c.palette, ""
			} else {
				cfg.Palette.File = c.palette
			}
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if err := a.setupLogger(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// flagEnv returns the environment lookup with -provider, when set, standing
// in for PIART_PROVIDER, so the API key is resolved for the provider the
// command will use and a key from the config file is kept.
func (a *app) flagEnv(fs *flag.FlagSet, c *common) func(string) (string, bool) {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "provider" {
			set = true
		}
	})
	if !set {
		return a.lookupEnv
	}
	return func(name string) (string, bool) {
		if name == config.EnvProvider {
			return c.provider, true
		}
		return a.lookupEnv(name)
	}
}

// setupLogger installs the configured slog handler on stderr.
func (a *app) setupLogger(cfg config.Config) error {
	level, err := cfg.LogLevel()
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.Log.Format == "json" {
		h = slog.NewJSONHandler(a.stderr, opts)
	} else {
		h = slog.NewTextHandler(a.stderr, opts)
	}
	piart.SetLogger(slog.New(h))
	return nil
}
