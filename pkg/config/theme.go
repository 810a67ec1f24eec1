package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Theme holds the colors of the text area, the key caps and the status line.
type Theme struct {
	// Base UI and text area
	UIBackground tcell.Color
	UIForeground tcell.Color

	// Status line and title
	StatusBackground tcell.Color
	StatusForeground tcell.Color

	// Key caps
	KeyBackground         tcell.Color
	KeyForeground         tcell.Color
	KeyModifierBackground tcell.Color
	KeyPressedBackground  tcell.Color
	KeyPressedForeground  tcell.Color

	// Caps lock indicator light
	CapsLightOn  tcell.Color
	CapsLightOff tcell.Color

	// Caret and selection in the text area
	CursorText          tcell.Color
	CursorBackground    tcell.Color
	SelectionBackground tcell.Color
	SelectionForeground tcell.Color
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		UIBackground: tcell.ColorBlack,
		UIForeground: tcell.ColorWhite,

		StatusBackground: tcell.ColorWhite,
		StatusForeground: tcell.ColorBlack,

		KeyBackground:         tcell.ColorDarkSlateGray,
		KeyForeground:         tcell.ColorWhite,
		KeyModifierBackground: tcell.ColorDimGray,
		KeyPressedBackground:  tcell.ColorYellow,
		KeyPressedForeground:  tcell.ColorBlack,

		CapsLightOn:  tcell.ColorLime,
		CapsLightOff: tcell.ColorGray,

		CursorText:          tcell.ColorBlack,
		CursorBackground:    tcell.ColorGreen,
		SelectionBackground: tcell.ColorBlue,
		SelectionForeground: tcell.ColorWhite,
	}
}

// TerminalTheme leans on the terminal's default colors and the ANSI palette
// so the keyboard follows the user's terminal theme.
func TerminalTheme() Theme {
	return Theme{
		UIBackground: tcell.ColorDefault,
		UIForeground: tcell.ColorDefault,

		StatusBackground: tcell.ColorGray,
		StatusForeground: tcell.ColorDefault,

		KeyBackground:         tcell.ColorGray,
		KeyForeground:         tcell.ColorDefault,
		KeyModifierBackground: tcell.ColorNavy,
		KeyPressedBackground:  tcell.ColorYellow,
		KeyPressedForeground:  tcell.ColorBlack,

		CapsLightOn:  tcell.ColorGreen,
		CapsLightOff: tcell.ColorDefault,

		CursorText:          tcell.ColorDefault,
		CursorBackground:    tcell.ColorGreen,
		SelectionBackground: tcell.ColorBlue,
		SelectionForeground: tcell.ColorDefault,
	}
}

// BuiltinThemes exposes the presets by name.
var BuiltinThemes = map[string]Theme{
	"default":  DefaultTheme(),
	"terminal": TerminalTheme(),
	"dark": {
		UIBackground: tcell.ColorBlack,
		UIForeground: tcell.ColorSilver,

		StatusBackground: tcell.ColorGray,
		StatusForeground: tcell.ColorWhite,

		KeyBackground:         tcell.NewRGBColor(0x30, 0x30, 0x30),
		KeyForeground:         tcell.ColorSilver,
		KeyModifierBackground: tcell.NewRGBColor(0x20, 0x20, 0x38),
		KeyPressedBackground:  tcell.ColorDarkOliveGreen,
		KeyPressedForeground:  tcell.ColorWhite,

		CapsLightOn:  tcell.ColorLightGreen,
		CapsLightOff: tcell.ColorDimGray,

		CursorText:          tcell.ColorBlack,
		CursorBackground:    tcell.ColorLightBlue,
		SelectionBackground: tcell.ColorDarkBlue,
		SelectionForeground: tcell.ColorWhite,
	},
}

// ResolveTheme returns the builtin theme called name or, when name is not a
// builtin, imports it as a theme file.
func ResolveTheme(name string) (Theme, error) {
	if name == "" {
		return DefaultTheme(), nil
	}
	if t, ok := BuiltinThemes[strings.ToLower(name)]; ok {
		return t, nil
	}
	if _, err := os.Stat(name); err != nil {
		return DefaultTheme(), fmt.Errorf("theme %q: not a builtin and not a readable file", name)
	}
	return ImportTheme(name)
}

// ParseColor returns a tcell.Color from a name or hex like "#aabbcc".
// If parsing fails, it returns the provided fallback.
func ParseColor(s string, fallback tcell.Color) tcell.Color {
	if s == "" {
		return fallback
	}
	c := tcell.GetColor(strings.ToLower(s))
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
