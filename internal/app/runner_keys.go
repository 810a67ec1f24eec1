package app

import (
	"example.com/vkbd/pkg/keys"
	"github.com/gdamore/tcell/v2"
)

// namedKeys maps terminal keys that have a cap of their own.
var namedKeys = map[tcell.Key]keys.Code{
	tcell.KeyEnter:      "Enter",
	tcell.KeyTab:        "Tab",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyDelete:     "Delete",
	tcell.KeyUp:         "ArrowUp",
	tcell.KeyDown:       "ArrowDown",
	tcell.KeyLeft:       "ArrowLeft",
	tcell.KeyRight:      "ArrowRight",
}

// handleKeyEvent processes a key event. It returns true if the event signals
// the runner should quit.
func (r *Runner) handleKeyEvent(ev *tcell.EventKey) bool {
	km := r.keymap()
	switch {
	case km["quit"].Matches(ev):
		return true
	case km["help"].Matches(ev):
		r.ShowHelp = true
	case km["language"].Matches(ev):
		// terminals never report a bare Ctrl or Alt, so the binding plays
		// the switch combination
		combo := r.Session.Machine.Combo()
		r.Session.Chord(combo[0], combo[1])
	case km["caps_lock"].Matches(ev):
		r.Session.Tap("CapsLock")
	default:
		r.typeKey(ev)
	}
	r.draw()
	return false
}

// typeKey turns a terminal key into taps on the virtual keyboard.
func (r *Runner) typeKey(ev *tcell.EventKey) {
	s := r.Session
	mods := ev.Modifiers()
	if mods&tcell.ModCtrl != 0 && mods&tcell.ModAlt != 0 {
		s.Chord("ControlLeft", "AltLeft")
		return
	}
	if ev.Key() != tcell.KeyRune {
		code, ok := namedKeys[ev.Key()]
		if !ok {
			r.Logger.Event("key.miss", map[string]any{"key": int(ev.Key()), "modifiers": int(mods)})
			return
		}
		s.Tap(code)
		return
	}

	if ev.Rune() == ' ' {
		s.Tap("Space")
		return
	}
	st := s.Machine.State()
	code, upper, ok := s.Machine.Catalog().Reverse(ev.Rune(), st.Language)
	if !ok {
		r.Logger.Event("key.miss", map[string]any{"rune": string(ev.Rune())})
		return
	}
	// hold shift when the current caps lock state would give the other case
	if upper != st.CapsLock && !st.Shift {
		s.Press("ShiftLeft")
		s.Tap(code)
		s.Release("ShiftLeft")
		return
	}
	s.Tap(code)
}
