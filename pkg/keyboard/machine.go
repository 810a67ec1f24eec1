// Package keyboard tracks modifier and language state of the virtual keyboard
// and turns press/release events into key activations.
//
// Caps lock is edge-triggered: it toggles on the down edge and ignores
// auto-repeated downs until the key is released. Shift is level-triggered:
// it is active while any shift key is held. The language switch fires once
// when both keys of its combination are down and stays consumed until one of
// them is released.
package keyboard

import (
	"example.com/vkbd/pkg/keys"
	"example.com/vkbd/pkg/prefs"
)

// State is the user-visible keyboard state.
type State struct {
	Language keys.Language
	CapsLock bool
	Shift    bool
}

// EffectiveUpper is the case used to pick glyphs: caps lock XOR shift.
func (s State) EffectiveUpper() bool { return s.CapsLock != s.Shift }

// EventKind distinguishes presses from releases.
type EventKind int

const (
	Press EventKind = iota
	Release
)

func (k EventKind) String() string {
	if k == Release {
		return "release"
	}
	return "press"
}

// Activation is a key that should be applied to the text buffer.
type Activation struct {
	Def   keys.Definition
	Glyph string
}

// Result describes what one event did.
type Result struct {
	Code keys.Code
	Kind EventKind
	// Known is false when the code is not in the catalog (lookup miss).
	Known bool
	// Repeat is set for a press of a key that is already held.
	Repeat bool
	// Activated is set on presses of any known key, modifiers included.
	Activated *Activation
	// Defect is the catalog error hit while resolving the glyph, if any.
	Defect          error
	CapsChanged     bool
	ShiftChanged    bool
	LanguageChanged bool
	// PersistErr is set when storing a new language failed. State still
	// changed.
	PersistErr error
	State      State
}

// DefaultCombo is the language switch combination.
var DefaultCombo = [2]keys.Code{"ControlLeft", "AltLeft"}

// Options configure a Machine.
type Options struct {
	// Languages are the two languages the switch toggles between.
	// Defaults to keys.Supported.
	Languages [2]keys.Language
	// Language is the initial language when Store has none.
	Language keys.Language
	// Combo is the language switch combination. Defaults to DefaultCombo.
	Combo [2]keys.Code
	// Store persists the language. May be nil.
	Store    prefs.Store
	CapsLock bool
}

type handler func(m *Machine, def keys.Definition, res *Result)

type dispatchKey struct {
	kind  EventKind
	class keys.Class
}

// Machine is the keyboard state machine. It is not safe for concurrent use;
// events must be delivered in order from one goroutine.
type Machine struct {
	catalog   *keys.Catalog
	state     State
	languages [2]keys.Language
	combo     [2]keys.Code
	store     prefs.Store

	down          map[keys.Code]bool
	comboConsumed bool

	table map[dispatchKey]handler
}

// New builds a Machine. The stored language, when valid and one of the two
// configured languages, wins over opts.Language.
func New(catalog *keys.Catalog, opts Options) *Machine {
	if opts.Languages[0] == "" || opts.Languages[1] == "" {
		opts.Languages = [2]keys.Language{keys.Supported[0], keys.Supported[1]}
	}
	if opts.Combo[0] == "" || opts.Combo[1] == "" {
		opts.Combo = DefaultCombo
	}
	lang := opts.Language
	if opts.Store != nil {
		if v, ok := opts.Store.Get(prefs.LanguageKey); ok {
			if l, err := keys.ParseLanguage(v); err == nil {
				lang = l
			}
		}
	}
	if lang != opts.Languages[0] && lang != opts.Languages[1] {
		lang = opts.Languages[0]
	}
	m := &Machine{
		catalog:   catalog,
		state:     State{Language: lang, CapsLock: opts.CapsLock},
		languages: opts.Languages,
		combo:     opts.Combo,
		store:     opts.Store,
		down:      map[keys.Code]bool{},
	}
	m.table = defaultTable()
	return m
}

func defaultTable() map[dispatchKey]handler {
	return map[dispatchKey]handler{
		{Press, keys.Shift}:    (*Machine).shiftChanged,
		{Release, keys.Shift}:  (*Machine).shiftChanged,
		{Press, keys.CapsLock}: (*Machine).toggleCaps,
	}
}

// State returns the current keyboard state.
func (m *Machine) State() State { return m.state }

// Catalog returns the catalog the machine resolves codes with.
func (m *Machine) Catalog() *keys.Catalog { return m.catalog }

// Combo returns the language switch combination.
func (m *Machine) Combo() [2]keys.Code { return m.combo }

// IsDown reports whether code is currently held.
func (m *Machine) IsDown(code keys.Code) bool { return m.down[code] }

// Glyph resolves the cap text of def for the current state.
func (m *Machine) Glyph(def keys.Definition) (string, error) {
	return keys.GlyphFor(def, m.state.Language, m.state.EffectiveUpper())
}

// Labels re-derives the cap text of every key for the current state.
// Catalog defects fall back to the key code.
func (m *Machine) Labels() map[keys.Code]string {
	all := m.catalog.All()
	out := make(map[keys.Code]string, len(all))
	for _, d := range all {
		g, _ := m.Glyph(d)
		out[d.Code] = g
	}
	return out
}

// Press handles a key going down. Auto-repeated presses of a held key still
// activate it (typing repeats) but do not re-trigger caps lock or the
// language switch.
func (m *Machine) Press(code keys.Code) Result {
	return m.handle(Press, code)
}

// Release handles a key going up. Releasing a key that is not held is
// harmless.
func (m *Machine) Release(code keys.Code) Result {
	return m.handle(Release, code)
}

func (m *Machine) handle(kind EventKind, code keys.Code) Result {
	res := Result{Code: code, Kind: kind}
	def, ok := m.catalog.Lookup(code)
	if !ok {
		res.State = m.state
		return res
	}
	res.Known = true

	switch kind {
	case Press:
		res.Repeat = m.down[code]
		m.down[code] = true
	case Release:
		delete(m.down, code)
	}

	if h := m.table[dispatchKey{kind, def.Class}]; h != nil {
		h(m, def, &res)
	}
	m.checkCombo(&res)

	if kind == Press {
		g, err := m.Glyph(def)
		res.Activated = &Activation{Def: def, Glyph: g}
		res.Defect = err
	}
	res.State = m.state
	return res
}

func (m *Machine) shiftChanged(_ keys.Definition, res *Result) {
	held := false
	for _, c := range m.catalog.Codes(keys.Shift) {
		if m.down[c] {
			held = true
			break
		}
	}
	if held != m.state.Shift {
		m.state.Shift = held
		res.ShiftChanged = true
	}
}

func (m *Machine) toggleCaps(_ keys.Definition, res *Result) {
	if res.Repeat {
		return
	}
	m.state.CapsLock = !m.state.CapsLock
	res.CapsChanged = true
}

func (m *Machine) checkCombo(res *Result) {
	both := m.down[m.combo[0]] && m.down[m.combo[1]]
	if !both {
		m.comboConsumed = false
		return
	}
	if m.comboConsumed {
		return
	}
	m.comboConsumed = true
	m.toggleLanguage(res)
}

// toggleLanguage switches to the other configured language and persists it.
func (m *Machine) toggleLanguage(res *Result) {
	next := m.languages[0]
	if m.state.Language == m.languages[0] {
		next = m.languages[1]
	}
	m.state.Language = next
	var err error
	if m.store != nil {
		err = m.store.Set(prefs.LanguageKey, string(next))
	}
	res.LanguageChanged = true
	res.PersistErr = err
}
