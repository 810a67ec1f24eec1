package app

import (
	"example.com/vkbd/pkg/buffer"
	"example.com/vkbd/pkg/edit"
	"example.com/vkbd/pkg/keys"
)

// TextArea is the edit target of the keyboard: a gap buffer plus a
// selection. anchor is where a selection started and head is where the
// caret is; either may be the larger.
type TextArea struct {
	buf    *buffer.GapBuffer
	anchor int
	head   int
}

// NewTextArea returns a text area holding text with the caret at the end.
func NewTextArea(text string) *TextArea {
	b := buffer.NewGapBufferFromString(text)
	return &TextArea{buf: b, anchor: b.Len(), head: b.Len()}
}

// String returns the text.
func (t *TextArea) String() string { return t.buf.String() }

// Len returns the text length in runes.
func (t *TextArea) Len() int { return t.buf.Len() }

// Lines returns the text split on newlines.
func (t *TextArea) Lines() []string { return t.buf.Lines() }

// Caret returns the caret position.
func (t *TextArea) Caret() int { return t.head }

// Selection returns the selected range in ascending order.
func (t *TextArea) Selection() (start, end int) {
	if t.anchor <= t.head {
		return t.anchor, t.head
	}
	return t.head, t.anchor
}

// SetCaret collapses the selection at pos.
func (t *TextArea) SetCaret(pos int) { t.anchor, t.head = pos, pos }

// Select sets the selection. Values are stored as given; out of range
// values are clamped on the next activation.
func (t *TextArea) Select(anchor, head int) { t.anchor, t.head = anchor, head }

// SelectWord selects the word touching pos, or places the caret at pos when
// there is none.
func (t *TextArea) SelectWord(pos int) {
	start, end := buffer.WordAt(t.buf, pos)
	t.anchor, t.head = start, end
}

// SetText replaces the text and puts the caret at the end.
func (t *TextArea) SetText(s string) {
	t.buf.SetText(s)
	t.SetCaret(t.buf.Len())
}

// Snapshot returns the text and ordered selection as an edit.Buffer.
func (t *TextArea) Snapshot() edit.Buffer {
	start, end := t.Selection()
	return edit.Buffer{Text: t.buf.String(), SelStart: start, SelEnd: end}
}

// Activate applies a key of the given class to the text. clamped reports
// that the selection was outside the text and had to be repaired first.
func (t *TextArea) Activate(class keys.Class, glyph string) (c edit.Change, clamped bool) {
	b, clamped := edit.Clamp(t.Snapshot())
	if clamped {
		t.anchor, t.head = b.SelStart, b.SelEnd
	}
	c = edit.Plan(b, class, glyph)
	if c.NoOp {
		return c, clamped
	}
	// b is clamped so the range is always valid
	_ = t.buf.Replace(c.Start, c.End, c.Insert)
	t.SetCaret(c.Caret)
	return c, clamped
}

// PosAt converts a line and a rune column into a text offset. Columns past
// the end of the line land on the line end; lines past the end land on the
// end of the text.
func (t *TextArea) PosAt(line, col int) int {
	lines := t.buf.Lines()
	if line < 0 {
		return 0
	}
	if line >= len(lines) {
		return t.buf.Len()
	}
	pos := 0
	for i := 0; i < line; i++ {
		pos += len([]rune(lines[i])) + 1
	}
	n := len([]rune(lines[line]))
	if col < 0 {
		col = 0
	}
	if col > n {
		col = n
	}
	return pos + col
}

// LineCol converts a text offset into a line and rune column.
func (t *TextArea) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	}
	for _, l := range t.buf.Lines() {
		n := len([]rune(l))
		if pos <= n {
			return line, pos
		}
		pos -= n + 1
		line++
	}
	// past the end: last line end
	lines := t.buf.Lines()
	last := len(lines) - 1
	return last, len([]rune(lines[last]))
}
