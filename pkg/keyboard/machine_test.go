package keyboard

import (
	"errors"
	"testing"

	"example.com/vkbd/pkg/keys"
	"example.com/vkbd/pkg/prefs"
	mock_prefs "example.com/vkbd/pkg/prefs/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newMachine(t *testing.T, opts Options) *Machine {
	t.Helper()
	if opts.Language == "" {
		opts.Language = keys.English
	}
	return New(keys.Default(), opts)
}

func TestEffectiveUpper(t *testing.T) {
	assert.False(t, State{}.EffectiveUpper())
	assert.True(t, State{CapsLock: true}.EffectiveUpper())
	assert.True(t, State{Shift: true}.EffectiveUpper())
	assert.False(t, State{CapsLock: true, Shift: true}.EffectiveUpper())
}

func TestCapsLock_TogglesOncePerPress(t *testing.T) {
	m := newMachine(t, Options{})

	res := m.Press("CapsLock")
	assert.True(t, res.CapsChanged)
	assert.True(t, m.State().CapsLock)

	// auto-repeat while held
	res = m.Press("CapsLock")
	assert.True(t, res.Repeat)
	assert.False(t, res.CapsChanged)
	assert.True(t, m.State().CapsLock)

	m.Release("CapsLock")
	m.Press("CapsLock")
	m.Release("CapsLock")
	assert.False(t, m.State().CapsLock, "two toggles restore the original case")
	assert.False(t, m.State().EffectiveUpper())
}

func TestShift_LevelTriggered(t *testing.T) {
	m := newMachine(t, Options{})

	res := m.Press("ShiftLeft")
	assert.True(t, res.ShiftChanged)
	res = m.Press("KeyA")
	require.NotNil(t, res.Activated)
	assert.Equal(t, "A", res.Activated.Glyph)

	res = m.Release("ShiftLeft")
	assert.True(t, res.ShiftChanged)
	assert.False(t, m.State().Shift)
	assert.False(t, m.State().CapsLock, "shift does not touch caps lock")

	res = m.Press("KeyA")
	assert.Equal(t, "a", res.Activated.Glyph)
}

func TestShift_BothShiftsHeld(t *testing.T) {
	m := newMachine(t, Options{})
	m.Press("ShiftLeft")
	m.Press("ShiftRight")
	res := m.Release("ShiftLeft")
	assert.False(t, res.ShiftChanged)
	assert.True(t, m.State().Shift)
	m.Release("ShiftRight")
	assert.False(t, m.State().Shift)
}

func TestShiftWithCapsLock_Lowercases(t *testing.T) {
	m := newMachine(t, Options{CapsLock: true})
	assert.Equal(t, "A", m.Press("KeyA").Activated.Glyph)
	m.Press("ShiftLeft")
	assert.Equal(t, "a", m.Press("KeyA").Activated.Glyph)
}

func TestLanguageCombo(t *testing.T) {
	store := prefs.NewMemory()
	m := newMachine(t, Options{Store: store})

	m.Press("ControlLeft")
	res := m.Press("AltLeft")
	assert.True(t, res.LanguageChanged)
	assert.Equal(t, keys.Russian, m.State().Language)
	assert.Equal(t, "ф", m.Labels()["KeyA"])
	v, _ := store.Get(prefs.LanguageKey)
	assert.Equal(t, "ru", v)

	// held combination with auto-repeat does not toggle again
	res = m.Press("AltLeft")
	assert.False(t, res.LanguageChanged)
	res = m.Press("ControlLeft")
	assert.False(t, res.LanguageChanged)
	assert.Equal(t, keys.Russian, m.State().Language)

	// release one member and press it again
	m.Release("AltLeft")
	res = m.Press("AltLeft")
	assert.True(t, res.LanguageChanged)
	assert.Equal(t, keys.English, m.State().Language)
	assert.Equal(t, "a", m.Labels()["KeyA"])
}

func TestLanguageCombo_OrderIndependent(t *testing.T) {
	m := newMachine(t, Options{})
	m.Press("AltLeft")
	res := m.Press("ControlLeft")
	assert.True(t, res.LanguageChanged)
}

func TestLanguageCombo_Custom(t *testing.T) {
	m := newMachine(t, Options{Combo: [2]keys.Code{"ShiftLeft", "AltLeft"}})
	m.Press("ControlLeft")
	assert.False(t, m.Press("AltLeft").LanguageChanged)
	m.Press("ShiftLeft")
	assert.Equal(t, keys.Russian, m.State().Language)
}

func TestLanguage_StoredPreferenceWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_prefs.NewMockStore(ctrl)
	store.EXPECT().Get(prefs.LanguageKey).Return("ru", true)
	store.EXPECT().Set(prefs.LanguageKey, "en").Return(nil).Times(1)

	m := newMachine(t, Options{Store: store})
	assert.Equal(t, keys.Russian, m.State().Language)

	m.Press("ControlLeft")
	m.Press("AltLeft")
	m.Press("AltLeft")
	assert.Equal(t, keys.English, m.State().Language)
}

func TestLanguage_InvalidStoredValueIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_prefs.NewMockStore(ctrl)
	store.EXPECT().Get(prefs.LanguageKey).Return("klingon", true)

	m := newMachine(t, Options{Store: store, Language: keys.Russian})
	assert.Equal(t, keys.Russian, m.State().Language)
}

func TestLanguage_PersistFailureIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_prefs.NewMockStore(ctrl)
	store.EXPECT().Get(gomock.Any()).Return("", false)
	store.EXPECT().Set(prefs.LanguageKey, "ru").Return(errors.New("disk full"))

	m := newMachine(t, Options{Store: store})
	m.Press("ControlLeft")
	res := m.Press("AltLeft")
	assert.True(t, res.LanguageChanged)
	assert.EqualError(t, res.PersistErr, "disk full")
	assert.Equal(t, keys.Russian, res.State.Language)
}

func TestLookupMiss(t *testing.T) {
	m := newMachine(t, Options{})
	before := m.State()
	res := m.Press("MetaLeft")
	assert.False(t, res.Known)
	assert.Nil(t, res.Activated)
	assert.Equal(t, before, m.State())
	assert.False(t, m.IsDown("MetaLeft"))
}

func TestActivation(t *testing.T) {
	m := newMachine(t, Options{})
	res := m.Press("Tab")
	require.NotNil(t, res.Activated)
	assert.Equal(t, keys.Tab, res.Activated.Def.Class)
	assert.True(t, m.IsDown("Tab"))
	res = m.Release("Tab")
	assert.Nil(t, res.Activated)
	assert.False(t, m.IsDown("Tab"))
}

func TestLabels_FullRerender(t *testing.T) {
	m := newMachine(t, Options{})
	m.Press("CapsLock")
	labels := m.Labels()
	assert.Len(t, labels, len(m.Catalog().All()))
	assert.Equal(t, "Q", labels["KeyQ"])
	assert.Equal(t, "!", labels["Digit1"])
	assert.Equal(t, "Tab", labels["Tab"])
}
