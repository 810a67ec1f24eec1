package app

import (
	"fmt"
	"strings"

	"example.com/vkbd/pkg/config"
	"example.com/vkbd/pkg/keys"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	titleRows  = 1
	statusRows = 1
	capGap     = 1
	capsLight  = '●'
)

// capWidths is the cell width of a cap per size class.
var capWidths = map[keys.Size]int{keys.Small: 3, keys.Medium: 6, keys.Large: 11}

type rect struct{ x, y, w, h int }

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// capRect is where one key cap was drawn.
type capRect struct {
	def keys.Definition
	rect
}

type keyboardLayout []capRect

// hit returns the key whose cap covers cell (x, y).
func (l keyboardLayout) hit(x, y int) (keys.Definition, bool) {
	for _, c := range l {
		if c.contains(x, y) {
			return c.def, true
		}
	}
	return keys.Definition{}, false
}

// find returns the cap drawn for code.
func (l keyboardLayout) find(code keys.Code) (capRect, bool) {
	for _, c := range l {
		if c.def.Code == code {
			return c, true
		}
	}
	return capRect{}, false
}

func rowWidth(row []keys.Definition) int {
	w := 0
	for i, d := range row {
		if i > 0 {
			w += capGap
		}
		w += capWidths[d.Size]
	}
	return w
}

// layoutKeyboard places the catalog rows one terminal line each, centred in
// width, starting at line top.
func layoutKeyboard(c *keys.Catalog, width, top int) keyboardLayout {
	rows := c.Rows()
	widest := 0
	for _, row := range rows {
		if w := rowWidth(row); w > widest {
			widest = w
		}
	}
	x0 := (width - widest) / 2
	if x0 < 0 {
		x0 = 0
	}
	var out keyboardLayout
	for i, row := range rows {
		x := x0
		for _, d := range row {
			w := capWidths[d.Size]
			out = append(out, capRect{def: d, rect: rect{x: x, y: top + i, w: w, h: 1}})
			x += w + capGap
		}
	}
	return out
}

// drawString writes s at (x, y) clipped to maxX and returns the next column.
func drawString(s tcell.Screen, x, y, maxX int, str string, st tcell.Style) int {
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		if x+w > maxX {
			break
		}
		s.SetContent(x, y, r, nil, st)
		x += w
	}
	return x
}

func fillRow(s tcell.Screen, y, width int, st tcell.Style) {
	for x := 0; x < width; x++ {
		s.SetContent(x, y, ' ', nil, st)
	}
}

func drawCap(s tcell.Screen, c capRect, label string, st tcell.Style) {
	for i := 0; i < c.w; i++ {
		s.SetContent(c.x+i, c.y, ' ', nil, st)
	}
	label = runewidth.Truncate(label, c.w, "")
	x := c.x + (c.w-runewidth.StringWidth(label))/2
	drawString(s, x, c.y, c.x+c.w, label, st)
}

func (r *Runner) title() string {
	km := r.keymap()
	combo := r.Session.Machine.Combo()
	names := make([]string, 0, 2)
	for _, code := range combo {
		name := string(code)
		if d, ok := r.Session.Machine.Catalog().Lookup(code); ok && d.Label != "" {
			name = d.Label
		}
		names = append(names, strings.ToLower(name))
	}
	return fmt.Sprintf("To switch the language, press left %s + %s (%s) | Caps Lock: %s | Help: %s | Quit: %s",
		names[0], names[1], km["language"], km["caps_lock"], km["help"], km["quit"])
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (r *Runner) status() string {
	st := r.Session.Machine.State()
	start, end := r.Session.Text.Selection()
	sel := fmt.Sprintf("%d", start)
	if start != end {
		sel = fmt.Sprintf("%d-%d", start, end)
	}
	return fmt.Sprintf(" %s | Caps Lock: %s | Shift: %s | %s", st.Language.DisplayName(), onOff(st.CapsLock), onOff(st.Shift), sel)
}

func drawHelp(s tcell.Screen, km map[string]config.Keybinding, th config.Theme) {
	width, height := s.Size()
	lines := []string{
		"Help:",
		"- Type on your keyboard or click the keys on screen",
		fmt.Sprintf("- %s: Show this help", km["help"]),
		fmt.Sprintf("- %s: Switch language", km["language"]),
		fmt.Sprintf("- %s: Caps Lock", km["caps_lock"]),
		fmt.Sprintf("- %s: Quit", km["quit"]),
		"- Ctrl+Alt+<key>: Switch language",
		"- Click in the text to move the caret, drag to select, double-click to select a word",
		"- Hold Shift on screen with the mouse for upper case",
	}
	st := tcell.StyleDefault.Foreground(th.UIForeground).Background(th.UIBackground)
	y := (height - len(lines)) / 2
	for i, line := range lines {
		x := (width - runewidth.StringWidth(line)) / 2
		if x < 0 {
			x = 0
		}
		drawString(s, x, y+i, width, line, st)
	}
}

// ensureCaretVisible scrolls the text area so the caret line is shown.
func (r *Runner) ensureCaretVisible(height int) {
	line, _ := r.Session.Text.LineCol(r.Session.Text.Caret())
	if line < r.topLine {
		r.topLine = line
	}
	if height > 0 && line >= r.topLine+height {
		r.topLine = line - height + 1
	}
}

func (r *Runner) drawText(s tcell.Screen, area rect) {
	th := r.Theme
	base := tcell.StyleDefault.Foreground(th.UIForeground).Background(th.UIBackground)
	selStyle := tcell.StyleDefault.Foreground(th.SelectionForeground).Background(th.SelectionBackground)
	cursorStyle := tcell.StyleDefault.Foreground(th.CursorText).Background(th.CursorBackground)

	text := r.Session.Text
	caret := text.Caret()
	selStart, selEnd := text.Selection()
	lines := text.Lines()

	lineStart := text.PosAt(r.topLine, 0)
	for i := 0; i < area.h && r.topLine+i < len(lines); i++ {
		runes := []rune(lines[r.topLine+i])
		y := area.y + i
		x := area.x
		for j, ch := range runes {
			w := runewidth.RuneWidth(ch)
			if w == 0 {
				w = 1
			}
			if x+w > area.x+area.w {
				break
			}
			idx := lineStart + j
			st := base
			switch {
			case idx == caret:
				st = cursorStyle
			case idx >= selStart && idx < selEnd:
				st = selStyle
			}
			s.SetContent(x, y, ch, nil, st)
			x += w
		}
		// caret at end of line gets a placeholder cell
		if lineStart+len(runes) == caret && x < area.x+area.w {
			s.SetContent(x, y, ' ', nil, cursorStyle)
		}
		lineStart += len(runes) + 1
	}
}

// draw renders the title, text area, keyboard and status line. Labels are
// re-derived from the keyboard state on every call.
func (r *Runner) draw() {
	if r.Screen == nil {
		return
	}
	s := r.Screen
	th := r.Theme
	width, height := s.Size()
	base := tcell.StyleDefault.Foreground(th.UIForeground).Background(th.UIBackground)
	s.SetStyle(base)
	s.Clear()
	if r.ShowHelp {
		drawHelp(s, r.keymap(), th)
		s.Show()
		return
	}

	m := r.Session.Machine
	catalog := m.Catalog()
	kbTop := height - statusRows - len(catalog.Rows())
	if kbTop < titleRows {
		kbTop = titleRows
	}
	textH := kbTop - titleRows - 1
	if textH < 0 {
		textH = 0
	}

	drawString(s, 0, 0, width, r.title(), base.Bold(true))

	r.textArea = rect{x: 0, y: titleRows, w: width, h: textH}
	r.ensureCaretVisible(textH)
	r.drawText(s, r.textArea)

	r.layout = layoutKeyboard(catalog, width, kbTop)
	labels := m.Labels()
	st := m.State()
	for _, c := range r.layout {
		style := tcell.StyleDefault.Foreground(th.KeyForeground).Background(th.KeyBackground)
		if c.def.Class != keys.Standard {
			style = style.Background(th.KeyModifierBackground)
		}
		if m.IsDown(c.def.Code) {
			style = tcell.StyleDefault.Foreground(th.KeyPressedForeground).Background(th.KeyPressedBackground)
		}
		drawCap(s, c, labels[c.def.Code], style)
		if c.def.Class == keys.CapsLock {
			light := th.CapsLightOff
			if st.CapsLock {
				light = th.CapsLightOn
			}
			s.SetContent(c.x, c.y, capsLight, nil, style.Foreground(light))
		}
	}

	statusStyle := tcell.StyleDefault.Foreground(th.StatusForeground).Background(th.StatusBackground)
	fillRow(s, height-1, width, statusStyle)
	drawString(s, 0, height-1, width, r.status(), statusStyle)
	s.Show()
}
