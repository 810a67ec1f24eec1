// Package keys holds the static key catalog of the virtual keyboard and the
// resolver that turns a key plus the current language and case into the glyph
// shown on its cap.
package keys

// Code is a stable identifier for one physical or virtual key, independent of
// language or case (for example "KeyA", "ShiftLeft", "ArrowUp").
type Code string

// Class decides how an activation of the key is handled.
type Class int

const (
	Standard Class = iota
	Shift
	CapsLock
	ControlLeft
	AltLeft
	Space
	Tab
	Enter
	Backspace
	Delete
	Arrow
)

var classNames = map[Class]string{
	Standard:    "standard",
	Shift:       "shift",
	CapsLock:    "capsLock",
	ControlLeft: "controlLeft",
	AltLeft:     "altLeft",
	Space:       "space",
	Tab:         "tab",
	Enter:       "enter",
	Backspace:   "backspace",
	Delete:      "delete",
	Arrow:       "arrows",
}

func (c Class) String() string {
	if n, ok := classNames[c]; ok {
		return n
	}
	return "unknown"
}

// IsModifier reports whether keys of this class only change keyboard state
// and never edit the text.
func (c Class) IsModifier() bool {
	switch c {
	case Shift, CapsLock, ControlLeft, AltLeft:
		return true
	}
	return false
}

// Size is the display width class of a key cap.
type Size int

const (
	Small Size = iota
	Medium
	Large
)

func (s Size) String() string {
	switch s {
	case Medium:
		return "medium"
	case Large:
		return "large"
	default:
		return "small"
	}
}

// Pair is the lower and upper glyph of a Standard key in one language.
type Pair struct {
	Lower string
	Upper string
}

// Definition describes one key. Definitions are built once by the catalog
// and never mutated.
type Definition struct {
	Code  Code
	Class Class
	Size  Size
	Row   int
	// Label is the fixed cap text of non-Standard keys.
	Label string
	// Glyphs is set for Standard keys only.
	Glyphs map[Language]Pair
}
