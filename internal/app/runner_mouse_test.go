package app

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func click(r *Runner, x, y int) {
	r.handleMouse(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	r.handleMouse(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func TestMouse_CapPressRelease(t *testing.T) {
	r, s := newSimRunner(t, "")
	c, _ := r.layout.find("KeyA")

	r.handleMouse(tcell.NewEventMouse(c.x+1, c.y, tcell.Button1, tcell.ModNone))
	if got := r.Session.Text.String(); got != "a" {
		t.Fatalf("expected 'a' after cap press, got %q", got)
	}
	if !r.Session.Machine.IsDown("KeyA") {
		t.Fatalf("expected KeyA held while the button is down")
	}
	_, _, st, _ := s.GetContent(c.x, c.y)
	if _, bg, _ := st.Decompose(); bg != r.Theme.KeyPressedBackground {
		t.Fatalf("expected pressed highlight")
	}

	// dragging off the cap keeps it held
	r.handleMouse(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone))
	if !r.Session.Machine.IsDown("KeyA") {
		t.Fatalf("expected KeyA still held during drag")
	}

	r.handleMouse(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))
	if r.Session.Machine.IsDown("KeyA") {
		t.Fatalf("expected KeyA released")
	}
	if got := r.Session.Text.String(); got != "a" {
		t.Fatalf("release should not type, got %q", got)
	}
}

func TestMouse_ShiftHold(t *testing.T) {
	r, s := newSimRunner(t, "")
	shift, _ := r.layout.find("ShiftLeft")
	keyA, _ := r.layout.find("KeyA")

	r.handleMouse(tcell.NewEventMouse(shift.x, shift.y, tcell.Button1, tcell.ModNone))
	if !r.Session.Machine.State().Shift {
		t.Fatalf("expected shift active while held")
	}
	if ch, _, _, _ := s.GetContent(keyA.x+1, keyA.y); ch != 'A' {
		t.Fatalf("expected upper-case labels while shift is held, got %q", ch)
	}
	r.handleMouse(tcell.NewEventMouse(shift.x, shift.y, tcell.ButtonNone, tcell.ModNone))
	if r.Session.Machine.State().Shift {
		t.Fatalf("expected shift inactive after release")
	}
	if got := r.Session.Text.String(); got != "" {
		t.Fatalf("shift should not edit text, got %q", got)
	}
}

func TestMouse_ClickMovesCaret(t *testing.T) {
	r, _ := newSimRunner(t, "hello world")
	click(r, 6, r.textArea.y)
	if got := r.Session.Text.Caret(); got != 6 {
		t.Fatalf("expected caret 6, got %d", got)
	}
	r.Session.Tap("KeyX")
	if got := r.Session.Text.String(); got != "hello xworld" {
		t.Fatalf("expected insert at caret, got %q", got)
	}
}

func TestMouse_ClickPastLineEnd(t *testing.T) {
	r, _ := newSimRunner(t, "ab\ncd")
	r.Session.Text.SetCaret(0)
	click(r, 40, r.textArea.y)
	if got := r.Session.Text.Caret(); got != 2 {
		t.Fatalf("expected caret at end of first line, got %d", got)
	}
	click(r, 0, r.textArea.y+5)
	if got := r.Session.Text.Caret(); got != 5 {
		t.Fatalf("expected caret at end of text, got %d", got)
	}
}

func TestMouse_DragSelects(t *testing.T) {
	r, _ := newSimRunner(t, "hello world")
	y := r.textArea.y
	r.handleMouse(tcell.NewEventMouse(6, y, tcell.Button1, tcell.ModNone))
	r.handleMouse(tcell.NewEventMouse(11, y, tcell.Button1, tcell.ModNone))
	r.handleMouse(tcell.NewEventMouse(11, y, tcell.ButtonNone, tcell.ModNone))

	start, end := r.Session.Text.Selection()
	if start != 6 || end != 11 {
		t.Fatalf("expected selection 6-11, got %d-%d", start, end)
	}
	r.Session.Press("ShiftLeft")
	r.Session.Tap("KeyG")
	r.Session.Release("ShiftLeft")
	if got := r.Session.Text.String(); got != "hello G" {
		t.Fatalf("expected selection replaced, got %q", got)
	}
}

func TestMouse_DragBackwards(t *testing.T) {
	r, _ := newSimRunner(t, "hello world")
	y := r.textArea.y
	r.handleMouse(tcell.NewEventMouse(5, y, tcell.Button1, tcell.ModNone))
	r.handleMouse(tcell.NewEventMouse(0, y, tcell.Button1, tcell.ModNone))
	r.handleMouse(tcell.NewEventMouse(0, y, tcell.ButtonNone, tcell.ModNone))

	start, end := r.Session.Text.Selection()
	if start != 0 || end != 5 {
		t.Fatalf("expected selection 0-5, got %d-%d", start, end)
	}
	r.Session.Tap("Backspace")
	if got := r.Session.Text.String(); got != " world" {
		t.Fatalf("expected selection deleted, got %q", got)
	}
}

func TestMouse_DoubleClickSelectsWord(t *testing.T) {
	r, _ := newSimRunner(t, "привет мир")
	click(r, 8, r.textArea.y)
	click(r, 8, r.textArea.y)
	start, end := r.Session.Text.Selection()
	if start != 7 || end != 10 {
		t.Fatalf("expected word 7-10 selected, got %d-%d", start, end)
	}
}

func TestMouse_WheelIgnored(t *testing.T) {
	r, _ := newSimRunner(t, "abc")
	r.handleMouse(tcell.NewEventMouse(1, r.textArea.y, tcell.WheelDown, tcell.ModNone))
	if got := r.Session.Text.Caret(); got != 3 {
		t.Fatalf("wheel should not move the caret, got %d", got)
	}
}
