package keys

import "fmt"

// DefectError reports a Standard key that has no glyph for a language. It
// points at bad catalog data, not at bad input.
type DefectError struct {
	Code     Code
	Language Language
	Upper    bool
}

func (e *DefectError) Error() string {
	form := "lower"
	if e.Upper {
		form = "upper"
	}
	return fmt.Sprintf("catalog defect: %s has no %s glyph for %q", e.Code, form, e.Language)
}

// GlyphFor returns the cap text of def for the language and case. upper is
// the effective case (caps lock XOR shift). Non-Standard keys return their
// fixed label.
//
// When a Standard key has no glyph for lang the key code is returned along
// with a *DefectError. Binaries built with the vkbddebug tag panic instead.
func GlyphFor(def Definition, lang Language, upper bool) (string, error) {
	if def.Class != Standard {
		return def.Label, nil
	}
	p, ok := def.Glyphs[lang]
	g := p.Lower
	if upper {
		g = p.Upper
	}
	if ok && g != "" {
		return g, nil
	}
	err := &DefectError{Code: def.Code, Language: lang, Upper: upper}
	if debugBuild {
		panic(err)
	}
	return string(def.Code), err
}
