package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"example.com/vkbd/pkg/keyboard"
	"example.com/vkbd/pkg/keys"
	"example.com/vkbd/pkg/logs"
	"example.com/vkbd/pkg/prefs"
	mock_prefs "example.com/vkbd/pkg/prefs/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/mock/gomock"
)

func newSession(t *testing.T, text string, opts keyboard.Options) (*Session, string) {
	t.Helper()
	if opts.Language == "" {
		opts.Language = keys.English
	}
	path := filepath.Join(t.TempDir(), "vkbd.log")
	logger := logs.NewFile(path)
	t.Cleanup(logger.Close)
	m := keyboard.New(keys.Default(), opts)
	return NewSession(m, NewTextArea(text), logger), path
}

func readLog(t *testing.T, path string) []gjson.Result {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []gjson.Result
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, gjson.Parse(line))
		}
	}
	return out
}

func findEvent(evs []gjson.Result, name string) (gjson.Result, bool) {
	for _, e := range evs {
		if e.Get("event").String() == name {
			return e, true
		}
	}
	return gjson.Result{}, false
}

func typeCodes(s *Session, codes ...keys.Code) {
	for _, c := range codes {
		s.Tap(c)
	}
}

func TestSession_TypeAndEnter(t *testing.T) {
	s, _ := newSession(t, "", keyboard.Options{})
	typeCodes(s, "KeyH", "KeyE", "KeyL", "KeyL", "KeyO")
	require.Equal(t, "hello", s.Text.String())
	require.Equal(t, 5, s.Text.Caret())

	s.Tap("Enter")
	assert.Equal(t, "hello\n", s.Text.String())
	assert.Equal(t, 6, s.Text.Caret())
}

func TestSession_ShiftReplacesSelection(t *testing.T) {
	s, _ := newSession(t, "hello world", keyboard.Options{})
	s.Text.Select(0, 5)

	s.Press("ShiftLeft")
	s.Tap("KeyH")
	s.Release("ShiftLeft")

	assert.Equal(t, "H world", s.Text.String())
	start, end := s.Text.Selection()
	assert.Equal(t, 1, start)
	assert.Equal(t, 1, end)
	assert.False(t, s.Machine.State().Shift)
}

func TestSession_LanguageSwitchPersists(t *testing.T) {
	store := prefs.NewMemory()
	s, logPath := newSession(t, "", keyboard.Options{Store: store})

	s.Chord("ControlLeft", "AltLeft")
	s.Tap("KeyA")

	assert.Equal(t, "ф", s.Text.String())
	v, ok := store.Get(prefs.LanguageKey)
	require.True(t, ok)
	assert.Equal(t, "ru", v)

	ev, ok := findEvent(readLog(t, logPath), "language.switch")
	require.True(t, ok)
	assert.Equal(t, "ru", ev.Get("language").String())
}

func TestSession_CapsLockTwiceRestoresCase(t *testing.T) {
	s, logPath := newSession(t, "", keyboard.Options{})
	s.Tap("CapsLock")
	s.Tap("KeyQ")
	s.Tap("CapsLock")
	s.Tap("KeyQ")
	assert.Equal(t, "Qq", s.Text.String())

	n := 0
	for _, e := range readLog(t, logPath) {
		if e.Get("event").String() == "caps.toggle" {
			n++
		}
	}
	assert.Equal(t, 2, n)
}

func TestSession_LookupMissIsIgnored(t *testing.T) {
	s, logPath := newSession(t, "abc", keyboard.Options{})
	before := s.Machine.State()
	res := s.Tap("MetaLeft")
	assert.False(t, res.Known)
	assert.Equal(t, "abc", s.Text.String())
	assert.Equal(t, before, s.Machine.State())

	ev, ok := findEvent(readLog(t, logPath), "key.miss")
	require.True(t, ok)
	assert.Equal(t, "MetaLeft", ev.Get("code").String())
}

func TestSession_ClampsBadSelection(t *testing.T) {
	s, logPath := newSession(t, "abc", keyboard.Options{})
	s.Text.Select(7, 9)
	s.Tap("KeyD")
	assert.Equal(t, "abcd", s.Text.String())
	assert.Equal(t, 4, s.Text.Caret())

	ev, ok := findEvent(readLog(t, logPath), "selection.clamped")
	require.True(t, ok)
	assert.Equal(t, "warn", ev.Get("level").String())
	assert.Equal(t, int64(7), ev.Get("sel_start").Int())
}

func TestSession_PersistFailureKeepsRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_prefs.NewMockStore(ctrl)
	store.EXPECT().Get(prefs.LanguageKey).Return("", false)
	store.EXPECT().Set(prefs.LanguageKey, "ru").Return(errors.New("read-only file system"))

	s, logPath := newSession(t, "", keyboard.Options{Store: store})
	s.Chord("ControlLeft", "AltLeft")
	s.Tap("KeyB")
	assert.Equal(t, "и", s.Text.String())

	ev, ok := findEvent(readLog(t, logPath), "prefs.write")
	require.True(t, ok)
	assert.Equal(t, "warn", ev.Get("level").String())
	assert.Contains(t, ev.Get("error").String(), "read-only")
}

func TestSession_ModifiersLeaveText(t *testing.T) {
	s, _ := newSession(t, "abc", keyboard.Options{})
	s.Text.Select(1, 2)
	typeCodes(s, "ShiftLeft", "ShiftRight", "ControlLeft", "AltLeft")
	assert.Equal(t, "abc", s.Text.String())
	start, end := s.Text.Selection()
	assert.Equal(t, 1, start)
	assert.Equal(t, 2, end)
}

func TestSession_ActionLogged(t *testing.T) {
	s, logPath := newSession(t, "", keyboard.Options{})
	s.Tap("Tab")
	ev, ok := findEvent(readLog(t, logPath), "action")
	require.True(t, ok)
	assert.Equal(t, "Tab", ev.Get("code").String())
	assert.Equal(t, "tab", ev.Get("class").String())
	assert.Equal(t, int64(4), ev.Get("caret").Int())
}
