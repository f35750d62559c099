package session

import (
	"github.com/gogpu/piart"
	"github.com/gogpu/piart/palettegen"
)

// Option configures a Session.
type Option func(*Session)

// WithDigits replaces the pi digit source.
func WithDigits(d piart.DigitSequence) Option {
	return func(s *Session) {
		s.digits = d
	}
}

// WithView sets the initial view. It is clamped like any later edit.
func WithView(cfg piart.ViewConfig) Option {
	return func(s *Session) {
		s.view = cfg
	}
}

// WithPalette sets the initial palette.
func WithPalette(p piart.Palette) Option {
	return func(s *Session) {
		s.palette = p
	}
}

// WithLimits replaces the ranges applied to view edits.
func WithLimits(l piart.Limits) Option {
	return func(s *Session) {
		s.limits = &l
	}
}

// WithoutLimits applies only ViewConfig.Normalize to view edits, for
// non-interactive callers that want exact sizes.
func WithoutLimits() Option {
	return func(s *Session) {
		s.limits = nil
	}
}

// WithGenerator sets the palette generator used by Generate.
func WithGenerator(g palettegen.Generator) Option {
	return func(s *Session) {
		s.gen = g
	}
}

// WithRenderOptions sets the options passed to every Render.
func WithRenderOptions(opts ...piart.RenderOption) Option {
	return func(s *Session) {
		s.renderOpts = append(s.renderOpts[:0:0], opts...)
	}
}

// WithExport sets the export directory and PNG scale factor.
func WithExport(dir string, scale int) Option {
	return func(s *Session) {
		s.exportDir = dir
		s.exportScale = scale
	}
}

// WithPaletteListener registers fn to be called, outside the session lock,
// whenever the palette changes through generation or a file reload.
func WithPaletteListener(fn func(piart.Palette)) Option {
	return func(s *Session) {
		s.onPalette = fn
	}
}
