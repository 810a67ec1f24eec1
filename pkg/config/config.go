// Package config loads the keyboard's configuration: languages, the language
// switch combination, the preference backend, the theme and command
// keybindings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"example.com/vkbd/pkg/keys"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/viper"
)

// Keybinding represents a single key combination.
type Keybinding struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// Prefs selects the preference store.
type Prefs struct {
	Backend string
	Path    string
}

// Config holds validated configuration values.
type Config struct {
	// Language is used when no language preference has been stored yet.
	Language  keys.Language
	Languages [2]keys.Language
	Combo     [2]keys.Code
	Prefs     Prefs
	// Theme is a builtin theme name or a path to a theme file.
	Theme  string
	Keymap map[string]Keybinding
	// File is the config file that was read, empty when none was found.
	File string
}

type fileConfig struct {
	Language    string            `mapstructure:"language"`
	Languages   []string          `mapstructure:"languages"`
	SwitchCombo []string          `mapstructure:"switch_combo"`
	Theme       string            `mapstructure:"theme"`
	Keymap      map[string]string `mapstructure:"keymap"`
	Prefs       struct {
		Backend string `mapstructure:"backend"`
		Path    string `mapstructure:"path"`
	} `mapstructure:"prefs"`
}

// Default returns a Config with built-in values.
func Default() *Config {
	return &Config{
		Language:  keys.English,
		Languages: [2]keys.Language{keys.English, keys.Russian},
		Combo:     [2]keys.Code{"ControlLeft", "AltLeft"},
		Prefs:     Prefs{Backend: "json"},
		Theme:     "default",
		Keymap:    DefaultKeymap(),
	}
}

// DefaultKeymap provides builtin command bindings. "language" and
// "caps_lock" stand in for modifier keys terminals cannot report on their
// own.
func DefaultKeymap() map[string]Keybinding {
	return map[string]Keybinding{
		"quit":      mustParse("Ctrl+Q"),
		"help":      mustParse("F1"),
		"language":  mustParse("F2"),
		"caps_lock": mustParse("F4"),
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("language", string(d.Language))
	v.SetDefault("languages", []string{string(d.Languages[0]), string(d.Languages[1])})
	v.SetDefault("switch_combo", []string{string(d.Combo[0]), string(d.Combo[1])})
	v.SetDefault("theme", d.Theme)
	v.SetDefault("prefs.backend", d.Prefs.Backend)
	v.SetDefault("prefs.path", "")
	v.SetDefault("keymap", map[string]string{})
}

// Load loads configuration from path (YAML, TOML or JSON by extension) and
// VKBD_* environment variables. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("VKBD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	used := ""
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
			used = path
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg, err := fc.resolve()
	if err != nil {
		if used != "" {
			return nil, fmt.Errorf("config %s: %w", used, err)
		}
		return nil, err
	}
	cfg.File = used
	return cfg, nil
}

// DefaultPath returns ~/.vkbd/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vkbd", "config.yaml")
}

// LoadDefault attempts to read ~/.vkbd/config.yaml.
func LoadDefault() (*Config, error) {
	return Load(DefaultPath())
}

func (fc fileConfig) resolve() (*Config, error) {
	cfg := Default()

	lang, err := keys.ParseLanguage(fc.Language)
	if err != nil {
		return nil, fmt.Errorf("language: %w", err)
	}
	cfg.Language = lang

	if len(fc.Languages) != 2 {
		return nil, fmt.Errorf("languages: need exactly two, got %d", len(fc.Languages))
	}
	for i, s := range fc.Languages {
		l, err := keys.ParseLanguage(s)
		if err != nil {
			return nil, fmt.Errorf("languages: %w", err)
		}
		cfg.Languages[i] = l
	}
	if cfg.Languages[0] == cfg.Languages[1] {
		return nil, errors.New("languages: both entries are " + string(cfg.Languages[0]))
	}

	if len(fc.SwitchCombo) != 2 {
		return nil, fmt.Errorf("switch_combo: need exactly two keys, got %d", len(fc.SwitchCombo))
	}
	catalog := keys.Default()
	for i, s := range fc.SwitchCombo {
		code := keys.Code(strings.TrimSpace(s))
		if _, ok := catalog.Lookup(code); !ok {
			return nil, fmt.Errorf("switch_combo: unknown key %q", s)
		}
		cfg.Combo[i] = code
	}

	cfg.Prefs = Prefs{Backend: strings.ToLower(fc.Prefs.Backend), Path: expandHome(fc.Prefs.Path)}
	cfg.Theme = expandHome(fc.Theme)

	for cmd, binding := range fc.Keymap {
		kb, err := ParseKeybinding(binding)
		if err != nil {
			return nil, fmt.Errorf("keymap.%s: %w", cmd, err)
		}
		cfg.Keymap[strings.ToLower(cmd)] = kb
	}
	return cfg, nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// ParseKeybinding converts a textual key description into a Keybinding.
// Supported forms are "Ctrl+<letter>" and "F1".."F12".
func ParseKeybinding(s string) (Keybinding, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == 'F' || s[0] == 'f') {
		n, err := strconv.Atoi(s[1:])
		if err == nil {
			if n < 1 || n > 12 {
				return Keybinding{}, errors.New("invalid function key in keybinding: " + s)
			}
			return Keybinding{Key: tcell.KeyF1 + tcell.Key(n-1)}, nil
		}
	}
	parts := strings.Split(s, "+")
	if len(parts) != 2 {
		return Keybinding{}, errors.New("invalid keybinding: " + s)
	}
	if !strings.EqualFold(parts[0], "ctrl") {
		return Keybinding{}, errors.New("invalid modifier in keybinding: " + s)
	}
	r := []rune(strings.ToLower(parts[1]))
	if len(r) != 1 || r[0] < 'a' || r[0] > 'z' {
		return Keybinding{}, errors.New("invalid key in keybinding: " + s)
	}
	return Keybinding{Key: tcell.KeyRune, Rune: r[0], Mod: tcell.ModCtrl}, nil
}

// String renders the binding in the form ParseKeybinding accepts.
func (k Keybinding) String() string {
	switch {
	case k.Key >= tcell.KeyF1 && k.Key <= tcell.KeyF12:
		return "F" + strconv.Itoa(int(k.Key-tcell.KeyF1)+1)
	case k.Key == tcell.KeyRune && k.Mod == tcell.ModCtrl:
		return "Ctrl+" + strings.ToUpper(string(k.Rune))
	}
	return ""
}

func mustParse(s string) Keybinding {
	kb, err := ParseKeybinding(s)
	if err != nil {
		panic(err)
	}
	return kb
}

// Matches returns true if the binding matches the provided event.
func (k Keybinding) Matches(ev *tcell.EventKey) bool {
	if k.Key == tcell.KeyRune {
		if ev.Key() == tcell.KeyRune && ev.Rune() == k.Rune && ev.Modifiers() == k.Mod {
			return true
		}
		// terminals usually report Ctrl+<letter> as a control key
		if k.Mod == tcell.ModCtrl && k.Rune >= 'a' && k.Rune <= 'z' {
			return ev.Key() == tcell.KeyCtrlA+tcell.Key(k.Rune-'a')
		}
		return false
	}
	return k.Key != 0 && ev.Key() == k.Key
}
