package app

import (
	"time"

	"example.com/vkbd/pkg/config"
	"example.com/vkbd/pkg/keys"
	"example.com/vkbd/pkg/logs"
	"github.com/gdamore/tcell/v2"
)

// Runner owns the terminal lifecycle and the event loop of the on-screen
// keyboard.
type Runner struct {
	Screen   tcell.Screen
	Session  *Session
	Keymap   map[string]config.Keybinding
	Theme    config.Theme
	ShowHelp bool
	Logger   *logs.Logger
	// ConfigPath is watched while running; changes re-apply the theme and
	// keymap.
	ConfigPath string

	layout   keyboardLayout
	textArea rect
	topLine  int

	// pointer state
	pointerKey keys.Code
	selecting  bool
	lastClick  time.Time
	clickPos   int
}

// doubleClickInterval is the longest gap between two clicks on the same
// spot that still selects a word.
const doubleClickInterval = 400 * time.Millisecond

// configEvent carries a reloaded config from the watcher goroutine into the
// event loop.
type configEvent struct {
	tcell.EventTime
	cfg *config.Config
	err error
}

// New creates a Runner for s with the default keymap and theme.
func New(s *Session) *Runner {
	return &Runner{Session: s, Keymap: config.DefaultKeymap(), Theme: config.DefaultTheme(), Logger: s.Logger}
}

// InitScreen initializes a tcell screen if one is not already set.
func (r *Runner) InitScreen() error {
	if r.Screen != nil {
		return nil
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.SetStyle(tcell.StyleDefault)
	s.Clear()
	r.Screen = s
	return nil
}

// Fini finalizes the screen if initialized.
func (r *Runner) Fini() {
	if r.Screen != nil {
		r.Screen.Fini()
		r.Screen = nil
	}
}

func (r *Runner) keymap() map[string]config.Keybinding {
	if r.Keymap == nil {
		r.Keymap = config.DefaultKeymap()
	}
	return r.Keymap
}

// Run starts the event loop. It will initialize the screen if needed and
// return when the user requests quit.
func (r *Runner) Run() error {
	if r.Screen == nil {
		if err := r.InitScreen(); err != nil {
			return err
		}
		defer r.Fini()
	}
	r.Screen.EnableMouse()

	if r.Logger == nil {
		r.Logger = logs.NewFromEnv()
	}
	st := r.Session.Machine.State()
	r.Logger.Event("run.start", map[string]any{"language": string(st.Language), "caps": st.CapsLock})
	defer func() {
		r.Logger.Event("run.end", map[string]any{"buffer_len": r.Session.Text.Len()})
	}()

	if r.ConfigPath != "" {
		s := r.Screen
		w, err := config.Watch(r.ConfigPath, func(cfg *config.Config, err error) {
			ev := &configEvent{cfg: cfg, err: err}
			ev.SetEventNow()
			_ = s.PostEvent(ev)
		})
		if err != nil {
			r.Logger.Warn("config.reload", map[string]any{"file": r.ConfigPath, "error": err.Error()})
		} else {
			defer w.Close()
		}
	}

	r.draw()

	for {
		ev := r.Screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			// screen finalized
			return nil
		case *tcell.EventKey:
			r.Logger.Event("key", map[string]any{
				"type":      "EventKey",
				"key":       int(ev.Key()),
				"rune":      string(ev.Rune()),
				"modifiers": int(ev.Modifiers()),
			})
			// If help is currently shown, consume this key to dismiss it
			if r.ShowHelp {
				r.ShowHelp = false
				r.draw()
				continue
			}
			if r.handleKeyEvent(ev) {
				r.Logger.Event("action", map[string]any{"name": "quit"})
				return nil
			}
		case *tcell.EventMouse:
			r.handleMouse(ev)
		case *tcell.EventResize:
			r.Screen.Sync()
			r.draw()
		case *configEvent:
			r.applyConfig(ev.cfg, ev.err)
		}
	}
}

// applyConfig takes the parts of a reloaded config that can change while
// running: the theme and the command keymap. Languages and the switch
// combination need a restart.
func (r *Runner) applyConfig(cfg *config.Config, err error) {
	if err != nil {
		r.Logger.Warn("config.reload", map[string]any{"file": r.ConfigPath, "error": err.Error()})
		return
	}
	th, err := config.ResolveTheme(cfg.Theme)
	if err != nil {
		r.Logger.Warn("config.reload", map[string]any{"file": cfg.File, "theme": cfg.Theme, "error": err.Error()})
	} else {
		r.Theme = th
	}
	r.Keymap = cfg.Keymap
	r.Logger.Event("config.reload", map[string]any{"file": cfg.File, "theme": cfg.Theme})
	r.draw()
}
