package keys

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language is a supported input language code such as "en" or "ru".
type Language string

const (
	English Language = "en"
	Russian Language = "ru"
)

// Supported lists the languages every Standard key carries glyphs for.
var Supported = []Language{English, Russian}

// ErrUnknownLanguage is returned for codes outside Supported.
var ErrUnknownLanguage = errors.New("unknown language")

// ParseLanguage normalizes s (e.g. "RU", "ru-RU") to a supported Language.
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty code", ErrUnknownLanguage)
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnknownLanguage, s, err)
	}
	base, _ := tag.Base()
	l := Language(base.String())
	for _, sup := range Supported {
		if sup == l {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

// DisplayName returns the language name in the language itself, e.g.
// "English" or "русский". Unparseable codes are returned as is.
func (l Language) DisplayName() string {
	tag, err := language.Parse(string(l))
	if err != nil {
		return string(l)
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return string(l)
}
