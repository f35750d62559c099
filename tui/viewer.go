// Package tui is an interactive terminal viewer for piart grids.
//
// Each digit occupies two terminal columns painted with its palette color.
// Hovering the mouse over a cell shows the digit and its position in pi.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/piart"
	"github.com/gogpu/piart/palettegen"
	"github.com/gogpu/piart/session"
)

// cellColumns is the terminal width of one digit cell.
const cellColumns = 2

// chromeRows are the rows below the grid: help and status.
const chromeRows = 2

// generated is delivered through an EventInterrupt when a background
// generation finishes.
type generated struct {
	theme string
	err   error
}

// Viewer draws a session on a tcell screen and handles its input.
type Viewer struct {
	screen tcell.Screen
	sess   *session.Session
	random *palettegen.Random

	scroll  int // first grid row shown
	hover   piart.CellHit
	hovered bool
	labels  bool
	status  string

	inputMode bool
	input     []rune
}

// New creates a viewer. The screen must already be initialized.
func New(screen tcell.Screen, sess *session.Session, seed int64) *Viewer {
	return &Viewer{
		screen: screen,
		sess:   sess,
		random: palettegen.NewRandom(seed),
	}
}

// Run processes events until the user quits or the screen is finalized.
func (v *Viewer) Run() {
	v.Draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		if v.HandleEvent(ev) {
			return
		}
		v.Draw()
	}
}

// SetLabels sets whether digits are drawn in cells, on screen and in exports.
func (v *Viewer) SetLabels(on bool) {
	v.labels = on
}

// Status returns the current status message.
func (v *Viewer) Status() string {
	return v.status
}

// Hover returns the cell under the mouse, if any.
func (v *Viewer) Hover() (piart.CellHit, bool) {
	return v.hover, v.hovered
}

// gridRows is the number of terminal rows available for the grid.
func (v *Viewer) gridRows() int {
	_, h := v.screen.Size()
	return max(h-chromeRows, 0)
}

func (v *Viewer) clampScroll(rows int) {
	v.scroll = max(0, min(v.scroll, rows-v.gridRows()))
}

// HandleEvent applies ev and reports whether the viewer should exit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventMouse:
		v.handleMouse(ev)
	case *tcell.EventKey:
		if v.inputMode {
			v.handleInput(ev)
			return false
		}
		return v.handleKey(ev)
	case *tcell.EventInterrupt:
		if res, ok := ev.Data().(generated); ok {
			if res.err != nil {
				v.status = palettegen.UserMessage(res.err)
			} else {
				v.status = fmt.Sprintf("Palette generated for %q", res.theme)
			}
		}
	}
	return false
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	v.hovered = false
	if x < 0 || y < 0 || y >= v.gridRows() {
		return
	}
	view := v.sess.View()
	col, row := x/cellColumns, y+v.scroll
	size := float64(view.CellSize)
	v.hover, v.hovered = v.sess.HitTest((float64(col)+0.5)*size, (float64(row)+0.5)*size)
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	limits, ok := v.sess.Limits()
	if !ok {
		limits = piart.DefaultLimits()
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		v.editView(func(c piart.ViewConfig) piart.ViewConfig { c.StartOffset -= limits.StartStep; return c })
	case tcell.KeyRight:
		v.editView(func(c piart.ViewConfig) piart.ViewConfig { c.StartOffset += limits.StartStep; return c })
	case tcell.KeyUp:
		v.scroll--
	case tcell.KeyDown:
		v.scroll++
	case tcell.KeyPgUp:
		v.scroll -= v.gridRows()
	case tcell.KeyPgDn:
		v.scroll += v.gridRows()
	case tcell.KeyRune:
		return v.handleRune(ev.Rune(), limits)
	}
	v.clampScroll(v.sess.View().Rows())
	return false
}

func (v *Viewer) handleRune(r rune, limits piart.Limits) bool {
	switch r {
	case 'q':
		return true
	case '+', '=':
		v.editView(func(c piart.ViewConfig) piart.ViewConfig { c.DigitCount += limits.CountStep; return c })
	case '-', '_':
		v.editView(func(c piart.ViewConfig) piart.ViewConfig { c.DigitCount -= limits.CountStep; return c })
	case ']':
		v.editView(func(c piart.ViewConfig) piart.ViewConfig { c.GridWidth++; return c })
	case '[':
		v.editView(func(c piart.ViewConfig) piart.ViewConfig { c.GridWidth--; return c })
	case '>', '.':
		v.editView(func(c piart.ViewConfig) piart.ViewConfig { c.CellSize++; return c })
	case '<', ',':
		v.editView(func(c piart.ViewConfig) piart.ViewConfig { c.CellSize--; return c })
	case '1', '2', '3':
		name := presetKeys[r-'1']
		if err := v.sess.ApplyPreset(name); err != nil {
			v.status = err.Error()
		} else {
			v.status = "Preset: " + name
		}
	case 'r':
		p, err := v.random.Generate(context.Background(), palettegen.Request{})
		if err != nil {
			v.status = palettegen.UserMessage(err)
			break
		}
		v.sess.SetPalette(p)
		v.status = "Random palette"
	case 'l':
		v.labels = !v.labels
	case 'g':
		v.inputMode = true
		v.input = v.input[:0]
	case 'e':
		path, err := v.sess.Export(piart.WithDigitLabels(v.labels))
		if err != nil {
			v.status = "Export failed: " + err.Error()
			piart.Logger().Warn("export failed", slog.Any("error", err))
		} else {
			v.status = "Saved " + path
		}
	}
	v.clampScroll(v.sess.View().Rows())
	return false
}

var presetKeys = [...]string{"default", "pastel", "monochrome"}

func (v *Viewer) editView(fn func(piart.ViewConfig) piart.ViewConfig) {
	v.sess.UpdateView(fn)
	v.hovered = false
}

// handleInput edits the theme prompt.
func (v *Viewer) handleInput(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		v.inputMode = false
	case tcell.KeyEnter:
		v.inputMode = false
		v.startGeneration(string(v.input))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if n := len(v.input); n > 0 {
			v.input = v.input[:n-1]
		}
	case tcell.KeyRune:
		v.input = append(v.input, ev.Rune())
	}
}

func (v *Viewer) startGeneration(theme string) {
	err := v.sess.GenerateAsync(theme, func(_ piart.Palette, err error) {
		_ = v.screen.PostEvent(tcell.NewEventInterrupt(generated{theme: theme, err: err}))
	})
	switch {
	case errors.Is(err, session.ErrGenerationPending):
		v.status = "Still generating the previous palette."
	case err != nil:
		v.status = palettegen.UserMessage(err)
	default:
		v.status = "Generating..."
	}
}
