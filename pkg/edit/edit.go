// Package edit maps one key activation onto a text buffer. It is pure: the
// caller passes the buffer in and gets the new buffer (or the change to make)
// back.
package edit

import (
	"unicode/utf8"

	"example.com/vkbd/pkg/keys"
)

// TabText is inserted by the Tab key.
const TabText = "    "

// Buffer is a snapshot of the hosting text surface. Offsets count runes and
// satisfy 0 <= SelStart <= SelEnd <= rune length of Text.
type Buffer struct {
	Text     string
	SelStart int
	SelEnd   int
}

// Collapsed reports whether nothing is selected.
func (b Buffer) Collapsed() bool { return b.SelStart == b.SelEnd }

// Len returns the text length in runes.
func (b Buffer) Len() int { return utf8.RuneCountInString(b.Text) }

// Change replaces the runes in [Start,End) with Insert and leaves a
// collapsed caret at Caret.
type Change struct {
	Start  int
	End    int
	Insert string
	Caret  int
	NoOp   bool
}

// Clamp forces the selection inside the text and orders its ends. fixed
// reports whether anything had to change.
func Clamp(b Buffer) (out Buffer, fixed bool) {
	n := b.Len()
	s, e := b.SelStart, b.SelEnd
	if s > e {
		s, e = e, s
	}
	if s < 0 {
		s = 0
	}
	if e < 0 {
		e = 0
	}
	if s > n {
		s = n
	}
	if e > n {
		e = n
	}
	out = Buffer{Text: b.Text, SelStart: s, SelEnd: e}
	return out, s != b.SelStart || e != b.SelEnd
}

// Plan computes the change an activation of a key of the given class makes
// to b. glyph is the resolved cap text and is only used by Standard and
// Arrow keys. b is clamped first.
func Plan(b Buffer, class keys.Class, glyph string) Change {
	b, _ = Clamp(b)
	start, end := b.SelStart, b.SelEnd
	noop := Change{Start: start, End: start, Caret: start, NoOp: true}

	replace := func(text string) Change {
		return Change{Start: start, End: end, Insert: text, Caret: start + utf8.RuneCountInString(text)}
	}

	switch class {
	case keys.Standard, keys.Arrow:
		return replace(glyph)
	case keys.Space:
		return replace(" ")
	case keys.Tab:
		return replace(TabText)
	case keys.Enter:
		return replace("\n")
	case keys.Backspace:
		if start != end {
			return Change{Start: start, End: end, Caret: start}
		}
		if start == 0 {
			return noop
		}
		return Change{Start: start - 1, End: start, Caret: start - 1}
	case keys.Delete:
		if start == end {
			if start == b.Len() {
				return noop
			}
			return Change{Start: start, End: start + 1, Caret: start}
		}
		return Change{Start: start, End: end, Caret: start}
	}
	// modifiers only touch keyboard state
	return noop
}

// ApplyChange performs c on b. A NoOp change returns b unchanged.
func ApplyChange(b Buffer, c Change) Buffer {
	if c.NoOp {
		return b
	}
	runes := []rune(b.Text)
	out := make([]rune, 0, len(runes)-(c.End-c.Start)+utf8.RuneCountInString(c.Insert))
	out = append(out, runes[:c.Start]...)
	out = append(out, []rune(c.Insert)...)
	out = append(out, runes[c.End:]...)
	return Buffer{Text: string(out), SelStart: c.Caret, SelEnd: c.Caret}
}

// Apply returns the buffer after activating a key of the given class.
func Apply(b Buffer, class keys.Class, glyph string) Buffer {
	b, _ = Clamp(b)
	return ApplyChange(b, Plan(b, class, glyph))
}
