package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

// ImportTheme reads a theme file and converts it to a Theme.
// Supported:
// - Base16 YAML (keys base00..base0F)
// - Alacritty YAML (colors.primary/normal/bright/cursor/selection)
func ImportTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Theme{}, fmt.Errorf("theme %s: %w", filepath.Base(path), err)
	}
	kv := map[string]string{}
	flatten("", doc, kv)
	switch {
	case kv["base00"] != "":
		return importBase16(kv), nil
	case kv["colors.primary.background"] != "" || kv["colors.primary.foreground"] != "":
		return importAlacritty(kv), nil
	default:
		return Theme{}, errors.New("unrecognized theme format: " + filepath.Base(path))
	}
}

// flatten turns nested YAML maps into lower-case dotted keys.
func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := strings.ToLower(k)
		if prefix != "" {
			key = prefix + "." + key
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		case int:
			// unquoted hex like 181818 decodes as a number
			out[key] = fmt.Sprintf("%06d", val)
		}
	}
}

func parseHexToColor(v string, fallback tcell.Color) tcell.Color {
	v = strings.TrimSpace(v)
	switch {
	case strings.HasPrefix(v, "#"):
		v = v[1:]
	case strings.HasPrefix(strings.ToLower(v), "0x"):
		v = v[2:]
	}
	if len(v) != 6 {
		return fallback
	}
	if _, err := strconv.ParseInt(v, 16, 32); err != nil {
		return fallback
	}
	return ParseColor("#"+strings.ToLower(v), fallback)
}

func importBase16(kv map[string]string) Theme {
	t := DefaultTheme()
	get := func(k string, fb tcell.Color) tcell.Color { return parseHexToColor(kv[k], fb) }

	t.UIBackground = get("base00", t.UIBackground)
	t.UIForeground = get("base05", t.UIForeground)

	t.StatusBackground = get("base02", t.StatusBackground)
	t.StatusForeground = t.UIForeground

	t.KeyBackground = get("base01", t.KeyBackground)
	t.KeyForeground = t.UIForeground
	t.KeyModifierBackground = get("base02", t.KeyModifierBackground)
	t.KeyPressedBackground = get("base0a", t.KeyPressedBackground)
	t.KeyPressedForeground = t.UIBackground

	t.CapsLightOn = get("base0b", t.CapsLightOn)
	t.CapsLightOff = get("base03", t.CapsLightOff)

	t.CursorBackground = get("base0d", t.CursorBackground)
	t.CursorText = t.UIBackground
	t.SelectionBackground = get("base02", t.SelectionBackground)
	t.SelectionForeground = t.UIForeground
	return t
}

func importAlacritty(kv map[string]string) Theme {
	t := DefaultTheme()
	get := func(k string, fb tcell.Color) tcell.Color { return parseHexToColor(kv[k], fb) }

	t.UIBackground = get("colors.primary.background", t.UIBackground)
	t.UIForeground = get("colors.primary.foreground", t.UIForeground)

	t.StatusBackground = get("colors.bright.black", t.UIBackground)
	t.StatusForeground = t.UIForeground

	t.KeyBackground = get("colors.normal.black", t.KeyBackground)
	t.KeyForeground = t.UIForeground
	t.KeyModifierBackground = get("colors.bright.black", t.KeyModifierBackground)
	t.KeyPressedBackground = get("colors.normal.yellow", t.KeyPressedBackground)
	t.KeyPressedForeground = t.UIBackground

	t.CapsLightOn = get("colors.normal.green", t.CapsLightOn)
	t.CapsLightOff = get("colors.bright.black", t.CapsLightOff)

	t.CursorBackground = get("colors.cursor.cursor", get("colors.normal.blue", t.CursorBackground))
	t.CursorText = get("colors.cursor.text", t.UIBackground)
	t.SelectionBackground = get("colors.selection.background", get("colors.normal.blue", t.SelectionBackground))
	t.SelectionForeground = get("colors.selection.text", t.UIForeground)
	return t
}
