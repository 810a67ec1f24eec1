// Package buffer provides the rune storage behind the keyboard's text area.
package buffer

import (
	"fmt"
	"strings"
)

// GapBuffer stores runes with a movable gap at the last edit position, so
// consecutive keystrokes at the caret do not shift the whole text.
type GapBuffer struct {
	buf      []rune
	gapStart int
	gapEnd   int

	cacheString string
	cacheLines  []string
	cacheValid  bool
}

// NewGapBuffer creates an empty GapBuffer with an initial capacity.
func NewGapBuffer(capacity int) *GapBuffer {
	if capacity < 1 {
		capacity = 128
	}
	return &GapBuffer{buf: make([]rune, capacity), gapEnd: capacity}
}

// NewGapBufferFromString initializes a GapBuffer with s and the gap at the end.
func NewGapBufferFromString(s string) *GapBuffer {
	runes := []rune(s)
	g := NewGapBuffer(len(runes) + 128)
	copy(g.buf, runes)
	g.gapStart = len(runes)
	return g
}

// Len returns the number of runes stored.
func (g *GapBuffer) Len() int {
	return len(g.buf) - (g.gapEnd - g.gapStart)
}

func (g *GapBuffer) ensureGap(n int) {
	if g.gapEnd-g.gapStart >= n {
		return
	}
	newCap := len(g.buf)*2 + n
	nb := make([]rune, newCap)
	copy(nb, g.buf[:g.gapStart])
	suffix := len(g.buf) - g.gapEnd
	copy(nb[newCap-suffix:], g.buf[g.gapEnd:])
	g.gapEnd = newCap - suffix
	g.buf = nb
}

// moveGap moves the gap so that gapStart == pos.
func (g *GapBuffer) moveGap(pos int) {
	switch {
	case pos < g.gapStart:
		d := g.gapStart - pos
		copy(g.buf[g.gapEnd-d:g.gapEnd], g.buf[pos:g.gapStart])
		g.gapStart -= d
		g.gapEnd -= d
	case pos > g.gapStart:
		d := pos - g.gapStart
		copy(g.buf[g.gapStart:g.gapStart+d], g.buf[g.gapEnd:g.gapEnd+d])
		g.gapStart += d
		g.gapEnd += d
	}
}

// Replace swaps the runes in [start,end) for s. It is the single mutation
// the text area performs per key activation.
func (g *GapBuffer) Replace(start, end int, s string) error {
	if start < 0 || end < start || end > g.Len() {
		return fmt.Errorf("replace [%d,%d): out of range (len %d)", start, end, g.Len())
	}
	ins := []rune(s)
	g.moveGap(start)
	g.gapEnd += end - start
	g.ensureGap(len(ins))
	copy(g.buf[g.gapStart:], ins)
	g.gapStart += len(ins)
	g.cacheValid = false
	return nil
}

// Insert inserts runes at pos (0..Len()).
func (g *GapBuffer) Insert(pos int, s []rune) error {
	return g.Replace(pos, pos, string(s))
}

// Delete removes runes in [start,end).
func (g *GapBuffer) Delete(start, end int) error {
	return g.Replace(start, end, "")
}

// SetText replaces the whole content.
func (g *GapBuffer) SetText(s string) {
	*g = *NewGapBufferFromString(s)
}

// RuneAt returns the rune at index i, or 0 when i is out of range.
func (g *GapBuffer) RuneAt(i int) rune {
	if i < 0 || i >= g.Len() {
		return 0
	}
	if i < g.gapStart {
		return g.buf[i]
	}
	return g.buf[g.gapEnd+(i-g.gapStart)]
}

// Slice returns a copy of the runes in [start,end), clamped to the content.
func (g *GapBuffer) Slice(start, end int) []rune {
	if start < 0 {
		start = 0
	}
	if end > g.Len() {
		end = g.Len()
	}
	if start >= end {
		return []rune{}
	}
	out := make([]rune, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, g.RuneAt(i))
	}
	return out
}

// String returns the content. The result is cached until the next edit.
func (g *GapBuffer) String() string {
	if g.cacheValid {
		return g.cacheString
	}
	out := make([]rune, 0, g.Len())
	out = append(out, g.buf[:g.gapStart]...)
	out = append(out, g.buf[g.gapEnd:]...)
	g.cacheString = string(out)
	g.cacheLines = strings.Split(g.cacheString, "\n")
	g.cacheValid = true
	return g.cacheString
}

// Lines returns the content split on '\n'. Cached like String.
func (g *GapBuffer) Lines() []string {
	if !g.cacheValid {
		_ = g.String()
	}
	return g.cacheLines
}
