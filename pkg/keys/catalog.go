package keys

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

type reverseEntry struct {
	code  Code
	upper bool
}

// Catalog is the read-only key table. The zero value is empty; use Default
// or NewCatalog.
type Catalog struct {
	defs    []Definition
	byCode  map[Code]int
	reverse map[Language]map[rune]reverseEntry
	rows    int
	dups    []Code
}

// Default returns the built-in en/ru catalog.
func Default() *Catalog {
	return NewCatalog(defaultLayout())
}

// NewCatalog indexes defs in the given order. Later duplicates of a code are
// ignored; Validate reports them.
func NewCatalog(defs []Definition) *Catalog {
	c := &Catalog{
		defs:    make([]Definition, 0, len(defs)),
		byCode:  make(map[Code]int, len(defs)),
		reverse: make(map[Language]map[rune]reverseEntry),
	}
	for _, d := range defs {
		if _, dup := c.byCode[d.Code]; dup {
			c.dups = append(c.dups, d.Code)
			continue
		}
		c.byCode[d.Code] = len(c.defs)
		c.defs = append(c.defs, d)
		if d.Row+1 > c.rows {
			c.rows = d.Row + 1
		}
		if d.Class != Standard {
			continue
		}
		for lang, p := range d.Glyphs {
			m := c.reverse[lang]
			if m == nil {
				m = make(map[rune]reverseEntry)
				c.reverse[lang] = m
			}
			// lower form wins when both forms are the same rune
			if r, ok := singleRune(p.Upper); ok {
				if _, taken := m[r]; !taken {
					m[r] = reverseEntry{code: d.Code, upper: true}
				}
			}
			if r, ok := singleRune(p.Lower); ok {
				if e, taken := m[r]; !taken || e.upper {
					m[r] = reverseEntry{code: d.Code}
				}
			}
		}
	}
	return c
}

func singleRune(s string) (rune, bool) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, true
}

// Lookup returns the definition for code. ok is false for unmapped codes;
// callers ignore such activations.
func (c *Catalog) Lookup(code Code) (Definition, bool) {
	if c == nil {
		return Definition{}, false
	}
	i, ok := c.byCode[code]
	if !ok {
		return Definition{}, false
	}
	return c.defs[i], true
}

// All returns every definition in layout order.
func (c *Catalog) All() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Rows groups the definitions by layout row.
func (c *Catalog) Rows() [][]Definition {
	rows := make([][]Definition, c.rows)
	for _, d := range c.defs {
		rows[d.Row] = append(rows[d.Row], d)
	}
	return rows
}

// Codes returns all codes of the given class in layout order.
func (c *Catalog) Codes(class Class) []Code {
	var out []Code
	for _, d := range c.defs {
		if d.Class == class {
			out = append(out, d.Code)
		}
	}
	return out
}

// Reverse finds the Standard key that types r. The preferred language is
// searched first so that a rune present in several layouts keeps its
// meaning for the active language. upper reports whether r is the upper
// glyph of that key.
func (c *Catalog) Reverse(r rune, preferred Language) (code Code, upper bool, ok bool) {
	if e, found := c.reverse[preferred][r]; found {
		return e.code, e.upper, true
	}
	for _, lang := range Supported {
		if lang == preferred {
			continue
		}
		if e, found := c.reverse[lang][r]; found {
			return e.code, e.upper, true
		}
	}
	return "", false, false
}

// Validate checks the catalog data: unique codes, labels on non-Standard
// keys and both glyphs for every supported language on Standard keys.
func (c *Catalog) Validate() error {
	var errs []error
	for _, code := range c.dups {
		errs = append(errs, fmt.Errorf("%s: duplicate code", code))
	}
	for _, d := range c.defs {
		if d.Code == "" {
			errs = append(errs, errors.New("key with empty code"))
			continue
		}
		if d.Class != Standard {
			if d.Label == "" {
				errs = append(errs, fmt.Errorf("%s: missing label", d.Code))
			}
			continue
		}
		for _, lang := range Supported {
			p, ok := d.Glyphs[lang]
			if !ok {
				errs = append(errs, &DefectError{Code: d.Code, Language: lang})
				continue
			}
			if p.Lower == "" || p.Upper == "" {
				errs = append(errs, &DefectError{Code: d.Code, Language: lang, Upper: p.Upper == ""})
			}
		}
	}
	return errors.Join(errs...)
}
