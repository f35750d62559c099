package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/piart"
)

const helpText = "←/→ start  ↑/↓ scroll  +/- count  [/] width  </> cell  1-3 preset  r random  g theme  l labels  e export  q quit"

// Draw renders the grid, help line and status line, then shows the screen.
func (v *Viewer) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	view := v.sess.View()
	pal := v.sess.Palette()
	_, seg := v.sess.Digits().Window(view)
	v.clampScroll(view.Rows())

	for y := 0; y < v.gridRows(); y++ {
		row := y + v.scroll
		for col := 0; col < view.GridWidth && col*cellColumns < w; col++ {
			i := row*view.GridWidth + col
			if i >= len(seg) {
				break
			}
			d := seg[i]
			c := pal.Color(d)
			style := tcell.StyleDefault.Background(tcellColor(c)).Foreground(tcellColor(c.Contrast()))
			if v.hovered && v.hover.LocalIndex == i {
				style = style.Reverse(true)
			}
			label := ' '
			if v.labels {
				label = rune(d)
			}
			x := col * cellColumns
			v.screen.SetContent(x, y, label, nil, style)
			v.screen.SetContent(x+1, y, ' ', nil, style)
		}
	}

	if h >= chromeRows {
		v.drawText(0, h-2, helpText, tcell.StyleDefault.Dim(true))
		v.drawText(0, h-1, v.statusLine(), tcell.StyleDefault.Bold(true))
	}
	if v.inputMode {
		v.screen.ShowCursor(len("Theme: ")+len(v.input), h-1)
	} else {
		v.screen.HideCursor()
	}
	v.screen.Show()
}

func (v *Viewer) statusLine() string {
	if v.inputMode {
		return "Theme: " + string(v.input)
	}
	line := v.sess.Summary()
	if v.hovered {
		line = v.hover.String() + "  |  " + line
	}
	if v.sess.Pending() {
		line += "  |  generating..."
	}
	if v.status != "" {
		line += "  |  " + v.status
	}
	return line
}

func (v *Viewer) drawText(x, y int, s string, style tcell.Style) {
	w, _ := v.screen.Size()
	for _, r := range s {
		if x >= w {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func tcellColor(c piart.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
