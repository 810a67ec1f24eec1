package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// handleMouse gives key caps real press/release pairs and lets the pointer
// move the caret and select text. The text area stays the edit target after
// every pointer activation.
func (r *Runner) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	btn := ev.Buttons()
	if btn&(tcell.WheelUp|tcell.WheelDown|tcell.WheelLeft|tcell.WheelRight) != 0 {
		return
	}
	down := btn&tcell.Button1 != 0

	switch {
	case down && r.pointerKey != "":
		// still holding a cap; a drag off it does not release it
		return
	case down && r.selecting:
		if pos, ok := r.textPos(x, y, true); ok {
			t := r.Session.Text
			t.Select(t.anchor, pos)
		}
	case down:
		if def, ok := r.layout.hit(x, y); ok {
			r.Logger.Event("mouse", map[string]any{"action": "press", "code": string(def.Code), "x": x, "y": y})
			r.pointerKey = def.Code
			r.Session.Press(def.Code)
			break
		}
		pos, ok := r.textPos(x, y, false)
		if !ok {
			return
		}
		r.Logger.Event("mouse", map[string]any{"action": "click", "pos": pos, "x": x, "y": y})
		if pos == r.clickPos && !r.lastClick.IsZero() && ev.When().Sub(r.lastClick) <= doubleClickInterval {
			r.Session.Text.SelectWord(pos)
			r.lastClick = ev.When().Add(-doubleClickInterval) // a third click starts over
			r.clickPos = -1
			break
		}
		r.lastClick, r.clickPos = ev.When(), pos
		r.Session.Text.SetCaret(pos)
		r.selecting = true
	default:
		if r.pointerKey != "" {
			r.Logger.Event("mouse", map[string]any{"action": "release", "code": string(r.pointerKey), "x": x, "y": y})
			r.Session.Release(r.pointerKey)
			r.pointerKey = ""
		}
		r.selecting = false
	}
	r.draw()
}

// textPos maps a screen cell to a text offset. With clamp, cells outside
// the text area map to the nearest offset instead of failing.
func (r *Runner) textPos(x, y int, clamp bool) (int, bool) {
	a := r.textArea
	if !a.contains(x, y) {
		if !clamp || a.h == 0 {
			return 0, false
		}
		if y < a.y {
			return 0, true
		}
		if y >= a.y+a.h {
			y = a.y + a.h - 1
		}
	}
	line := r.topLine + y - a.y
	lines := r.Session.Text.Lines()
	if line >= len(lines) {
		return r.Session.Text.Len(), true
	}
	// walk cell widths to find the rune under column x
	col, cells := 0, a.x
	for _, ch := range lines[line] {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			w = 1
		}
		if x < cells+w {
			break
		}
		cells += w
		col++
	}
	return r.Session.Text.PosAt(line, col), true
}
