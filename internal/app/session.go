package app

import (
	"example.com/vkbd/pkg/keyboard"
	"example.com/vkbd/pkg/keys"
	"example.com/vkbd/pkg/logs"
	"example.com/vkbd/pkg/prefs"
)

// Session binds the keyboard state machine to a text area. Every key event,
// whether it comes from the terminal, the pointer or a script, goes through
// a Session so the machine, the text and the log stay in step.
type Session struct {
	Machine *keyboard.Machine
	Text    *TextArea
	Logger  *logs.Logger
}

// NewSession returns a Session editing text. logger may be nil.
func NewSession(m *keyboard.Machine, text *TextArea, logger *logs.Logger) *Session {
	if text == nil {
		text = NewTextArea("")
	}
	return &Session{Machine: m, Text: text, Logger: logger}
}

// Press delivers a key-down event.
func (s *Session) Press(code keys.Code) keyboard.Result {
	res := s.Machine.Press(code)
	s.observe(res)
	return res
}

// Release delivers a key-up event.
func (s *Session) Release(code keys.Code) keyboard.Result {
	res := s.Machine.Release(code)
	s.observe(res)
	return res
}

// Tap presses and releases code and returns the press result.
func (s *Session) Tap(code keys.Code) keyboard.Result {
	res := s.Press(code)
	s.Release(code)
	return res
}

// Chord presses codes in order and releases them in reverse order.
func (s *Session) Chord(codes ...keys.Code) {
	for _, c := range codes {
		s.Press(c)
	}
	for i := len(codes) - 1; i >= 0; i-- {
		s.Release(codes[i])
	}
}

func (s *Session) observe(res keyboard.Result) {
	if !res.Known {
		s.Logger.Event("key.miss", map[string]any{"code": string(res.Code), "kind": res.Kind.String()})
		return
	}
	if res.CapsChanged {
		s.Logger.Event("caps.toggle", map[string]any{"caps": res.State.CapsLock})
	}
	if res.LanguageChanged {
		s.Logger.Event("language.switch", map[string]any{"language": string(res.State.Language)})
	}
	if res.PersistErr != nil {
		s.Logger.Warn("prefs.write", map[string]any{"key": prefs.LanguageKey, "error": res.PersistErr.Error()})
	}
	if res.Defect != nil {
		s.Logger.Warn("catalog.defect", map[string]any{"code": string(res.Code), "error": res.Defect.Error()})
	}
	if res.Activated == nil {
		return
	}

	act := res.Activated
	before := s.Text.Snapshot()
	change, clamped := s.Text.Activate(act.Def.Class, act.Glyph)
	if clamped {
		s.Logger.Warn("selection.clamped", map[string]any{
			"sel_start":  before.SelStart,
			"sel_end":    before.SelEnd,
			"buffer_len": before.Len(),
		})
	}
	s.Logger.Event("action", map[string]any{
		"code":       string(act.Def.Code),
		"class":      act.Def.Class.String(),
		"glyph":      act.Glyph,
		"repeat":     res.Repeat,
		"noop":       change.NoOp,
		"language":   string(res.State.Language),
		"caps":       res.State.CapsLock,
		"shift":      res.State.Shift,
		"caret":      s.Text.Caret(),
		"buffer_len": s.Text.Len(),
	})
}
