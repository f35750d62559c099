package piart

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary describes the grid shape, for example "Grid: 50x20 • 1,000 Digits".
func Summary(cfg ViewConfig) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("Grid: %dx%d • %d Digits", cfg.GridWidth, cfg.Rows(), cfg.DigitCount)
}
