package piart

// RenderOption configures a Render call.
// Use functional options to customize the output.
//
// Example:
//
//	// Default rendering on the dark canvas color
//	g := piart.Render(cfg, pal, piart.Pi())
//
//	// Transparent background with digit glyphs in each cell
//	g := piart.Render(cfg, pal, piart.Pi(),
//	    piart.WithBackground(piart.Transparent),
//	    piart.WithDigitLabels(true))
type RenderOption func(*renderOptions)

// renderOptions holds optional configuration for Render.
type renderOptions struct {
	background Color
	labels     bool
}

// defaultRenderOptions returns the default render options.
func defaultRenderOptions() renderOptions {
	return renderOptions{
		background: Background,
	}
}

// WithBackground sets the color of unpainted pixels.
func WithBackground(c Color) RenderOption {
	return func(o *renderOptions) {
		o.background = c
	}
}

// WithDigitLabels draws each digit's glyph centered in its cell.
// Cells smaller than MinLabelCellSize are left without a label.
func WithDigitLabels(on bool) RenderOption {
	return func(o *renderOptions) {
		o.labels = on
	}
}
