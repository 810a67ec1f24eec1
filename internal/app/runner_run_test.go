package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"example.com/vkbd/pkg/config"
	"github.com/gdamore/tcell/v2"
)

func startRun(t *testing.T, r *Runner) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- r.Run() }()
	// Give the loop a moment to start
	time.Sleep(10 * time.Millisecond)
	return done
}

func waitRun(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runner returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for runner to quit")
	}
}

func TestRun_TypeSwitchQuit_Simulation(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("initializing simulation screen failed: %v", err)
	}
	defer s.Fini()

	r := newRunner("")
	r.Screen = s
	done := startRun(t, r)

	s.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'h', 0))
	s.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'i', 0))
	s.PostEvent(tcell.NewEventKey(tcell.KeyRune, ' ', 0))
	s.PostEvent(tcell.NewEventKey(tcell.KeyF2, 0, 0))
	s.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'f', 0))
	s.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModCtrl))
	waitRun(t, done)

	if got := r.Session.Text.String(); got != "hi а" {
		t.Fatalf("expected buffer %q, got %q", "hi а", got)
	}
}

func TestRun_HelpIsDismissedByAnyKey(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("initializing simulation screen failed: %v", err)
	}
	defer s.Fini()

	r := newRunner("")
	r.Screen = s
	done := startRun(t, r)

	s.PostEvent(tcell.NewEventKey(tcell.KeyF1, 0, 0))
	// consumed by the help screen
	s.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'x', 0))
	s.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'y', 0))
	s.PostEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, 0))
	waitRun(t, done)

	if got := r.Session.Text.String(); got != "y" {
		t.Fatalf("expected buffer %q, got %q", "y", got)
	}
}

func TestRun_MouseTap_Simulation(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("initializing simulation screen failed: %v", err)
	}
	defer s.Fini()
	s.SetSize(80, 25)

	r := newRunner("")
	r.Screen = s
	// the layout only depends on the catalog and the screen size
	layout := layoutKeyboard(r.Session.Machine.Catalog(), 80, 25-statusRows-5)
	c, _ := layout.find("KeyZ")

	done := startRun(t, r)
	s.PostEvent(tcell.NewEventMouse(c.x+1, c.y, tcell.Button1, tcell.ModNone))
	s.PostEvent(tcell.NewEventMouse(c.x+1, c.y, tcell.ButtonNone, tcell.ModNone))
	s.PostEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, 0))
	waitRun(t, done)

	if got := r.Session.Text.String(); got != "z" {
		t.Fatalf("expected buffer %q, got %q", "z", got)
	}
}

func TestRun_ConfigReload(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("initializing simulation screen failed: %v", err)
	}
	defer s.Fini()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme: default\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	r := newRunner("")
	r.Screen = s
	r.ConfigPath = path
	done := startRun(t, r)
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(path, []byte("theme: dark\nkeymap:\n  quit: F10\n"), 0644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	// F10 only quits once the reload has been applied
	deadline := time.After(3 * time.Second)
	for {
		s.PostEvent(tcell.NewEventKey(tcell.KeyF10, 0, 0))
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("runner returned error: %v", err)
			}
			if r.Theme != config.BuiltinThemes["dark"] {
				t.Fatalf("expected dark theme after reload")
			}
			return
		case <-time.After(50 * time.Millisecond):
		case <-deadline:
			t.Fatalf("config reload never applied")
		}
	}
}
