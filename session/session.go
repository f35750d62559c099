// Package session holds the interactive state of a piart viewer: the
// current view and palette, palette generation and palette file reloads.
//
// A Session is safe for concurrent use. Edits replace the view or palette
// wholesale; Render and HitTest always see a consistent pair.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/piart"
	"github.com/gogpu/piart/palettegen"
)

var (
	// ErrGenerationPending is returned when a generation is already running.
	ErrGenerationPending = errors.New("session: palette generation already in progress")

	// ErrNoGenerator is returned by Generate when no generator is configured.
	ErrNoGenerator = errors.New("session: no palette generator configured")

	// ErrClosed is returned by operations on a closed session, and by a
	// generation whose result arrived after Close.
	ErrClosed = errors.New("session: closed")
)

// Session owns the view and palette of one viewer.
type Session struct {
	mu      sync.Mutex
	view    piart.ViewConfig
	palette piart.Palette
	pending bool
	closed  bool
	watcher *fsnotify.Watcher

	// Fixed after New.
	digits      piart.DigitSequence
	limits      *piart.Limits
	gen         palettegen.Generator
	renderOpts  []piart.RenderOption
	exportDir   string
	exportScale int
	onPalette   func(piart.Palette)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a session over the embedded pi digits with the default view,
// palette and limits.
func New(opts ...Option) *Session {
	l := piart.DefaultLimits()
	s := &Session{
		view:        piart.DefaultViewConfig(),
		palette:     piart.DefaultPalette(),
		digits:      piart.Pi(),
		limits:      &l,
		exportDir:   ".",
		exportScale: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.view = s.clamp(s.view)
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s
}

func (s *Session) clamp(cfg piart.ViewConfig) piart.ViewConfig {
	if s.limits == nil {
		return cfg.Normalize(s.digits.Len())
	}
	return s.limits.Apply(cfg, s.digits.Len())
}

// Digits returns the digit source.
func (s *Session) Digits() piart.DigitSequence {
	return s.digits
}

// Limits returns the limits applied to view edits and whether any apply.
func (s *Session) Limits() (piart.Limits, bool) {
	if s.limits == nil {
		return piart.Limits{}, false
	}
	return *s.limits, true
}

// View returns the current view.
func (s *Session) View() piart.ViewConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Palette returns the current palette.
func (s *Session) Palette() piart.Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.palette
}

// SetView replaces the view with cfg clamped into the session limits and
// returns the view actually applied.
func (s *Session) SetView(cfg piart.ViewConfig) piart.ViewConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = s.clamp(cfg)
	return s.view
}

// UpdateView applies fn to the current view and stores the clamped result.
func (s *Session) UpdateView(fn func(piart.ViewConfig) piart.ViewConfig) piart.ViewConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = s.clamp(fn(s.view))
	return s.view
}

// SetPalette replaces the palette.
func (s *Session) SetPalette(p piart.Palette) {
	s.mu.Lock()
	s.palette = p
	s.mu.Unlock()
	s.notify(p)
}

// SetColor changes the color of one digit (0-9). The color must be opaque.
func (s *Session) SetColor(digit int, c piart.Color) error {
	if digit < 0 || digit > 9 {
		return fmt.Errorf("%w: digit %d", piart.ErrIncompletePalette, digit)
	}
	if c.A != 255 {
		return fmt.Errorf("%w: digit %d color %s is not opaque", piart.ErrInvalidColor, digit, c)
	}
	s.mu.Lock()
	s.palette = s.palette.With(digit, c)
	p := s.palette
	s.mu.Unlock()
	s.notify(p)
	return nil
}

// ApplyPreset replaces the palette with a named preset.
func (s *Session) ApplyPreset(name string) error {
	p, err := piart.Preset(name)
	if err != nil {
		return err
	}
	s.SetPalette(p)
	return nil
}

func (s *Session) snapshot() (piart.ViewConfig, piart.Palette) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view, s.palette
}

// Render renders the current view and palette. Every call draws a new grid.
// Options in extra are applied after the session's render options.
func (s *Session) Render(extra ...piart.RenderOption) *piart.Grid {
	view, pal := s.snapshot()
	opts := append(slices.Clip(s.renderOpts), extra...)
	return piart.Render(view, pal, s.digits, opts...)
}

// HitTest maps a pixel of the current grid to its digit.
func (s *Session) HitTest(px, py float64) (piart.CellHit, bool) {
	view, pal := s.snapshot()
	return piart.HitTest(px, py, view, pal, s.digits)
}

// Summary describes the current grid, for example "Grid: 50x20 • 1,000 Digits".
func (s *Session) Summary() string {
	return piart.Summary(s.View())
}

// Export renders the current view to the export directory and returns the
// path of the written PNG.
func (s *Session) Export(extra ...piart.RenderOption) (string, error) {
	g := s.Render(extra...)
	path := filepath.Join(s.exportDir, piart.ExportFilename(g.Config()))
	if err := g.SavePNG(path, s.exportScale); err != nil {
		return "", err
	}
	return path, nil
}

// Pending reports whether a generation is in progress.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *Session) notify(p piart.Palette) {
	if s.onPalette != nil {
		s.onPalette(p)
	}
}

// Close cancels any running generation, stops palette watching and waits
// for background goroutines. Results that arrive afterwards are discarded.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	s.cancel()
	var err error
	if w != nil {
		err = w.Close()
	}
	s.wg.Wait()
	piart.Logger().Debug("session closed", slog.Bool("watching", w != nil))
	return err
}
