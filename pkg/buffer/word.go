package buffer

import "unicode"

// IsWordRune reports whether r is considered part of a word: letters of any
// script, digits and underscore.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// WordAt returns the bounds [start,end) of the word touching pos. A caret
// right after a word selects that word. When pos touches no word, start and
// end are both pos.
func WordAt(g *GapBuffer, pos int) (start, end int) {
	if g == nil || g.Len() == 0 {
		return 0, 0
	}
	if pos < 0 {
		pos = 0
	}
	if pos > g.Len() {
		pos = g.Len()
	}
	if !IsWordRune(g.RuneAt(pos)) {
		if pos == 0 || !IsWordRune(g.RuneAt(pos-1)) {
			return pos, pos
		}
		pos--
	}
	start, end = pos, pos
	for start > 0 && IsWordRune(g.RuneAt(start-1)) {
		start--
	}
	for end < g.Len() && IsWordRune(g.RuneAt(end)) {
		end++
	}
	return start, end
}
