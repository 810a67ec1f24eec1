package app

import (
	"errors"
	"strings"

	"github.com/gdamore/tcell/v2"
)

var errBadConfig = errors.New("bad config")

// screenRow returns the runes drawn on line y.
func screenRow(s tcell.Screen, y int) string {
	width, _ := s.Size()
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

// screenText returns every line of the screen joined with newlines.
func screenText(s tcell.Screen) string {
	_, height := s.Size()
	rows := make([]string, height)
	for y := range rows {
		rows[y] = screenRow(s, y)
	}
	return strings.Join(rows, "\n")
}
