package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"example.com/vkbd/pkg/keys"
	"golang.org/x/sync/errgroup"
)

// StepKind is what a script step does with its keys.
type StepKind int

const (
	// StepTap presses and releases one key.
	StepTap StepKind = iota
	// StepPress holds a key down.
	StepPress
	// StepRelease lets a held key go.
	StepRelease
	// StepChord presses keys in order and releases them in reverse.
	StepChord
)

// Step is one token of a key script.
type Step struct {
	Kind  StepKind
	Codes []keys.Code
}

func (s Step) String() string {
	switch s.Kind {
	case StepPress:
		return "+" + string(s.Codes[0])
	case StepRelease:
		return "-" + string(s.Codes[0])
	}
	parts := make([]string, len(s.Codes))
	for i, c := range s.Codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, "+")
}

// ParseStep parses one script token:
//
//	KeyA                 tap
//	+ShiftLeft           press
//	-ShiftLeft           release
//	ControlLeft+AltLeft  chord
//
// Codes are not checked against a catalog; unknown codes are lookup misses
// when played.
func ParseStep(tok string) (Step, error) {
	switch {
	case tok == "":
		return Step{}, fmt.Errorf("empty step")
	case tok[0] == '+' || tok[0] == '-':
		code := tok[1:]
		if code == "" || strings.ContainsAny(code, "+-") {
			return Step{}, fmt.Errorf("bad step %q", tok)
		}
		kind := StepPress
		if tok[0] == '-' {
			kind = StepRelease
		}
		return Step{Kind: kind, Codes: []keys.Code{keys.Code(code)}}, nil
	case strings.Contains(tok, "+"):
		parts := strings.Split(tok, "+")
		codes := make([]keys.Code, 0, len(parts))
		for _, p := range parts {
			if p == "" {
				return Step{}, fmt.Errorf("bad chord %q", tok)
			}
			codes = append(codes, keys.Code(p))
		}
		return Step{Kind: StepChord, Codes: codes}, nil
	}
	return Step{Kind: StepTap, Codes: []keys.Code{keys.Code(tok)}}, nil
}

// ParseScript reads whitespace separated steps. '#' starts a comment that
// runs to the end of the line.
func ParseScript(r io.Reader) ([]Step, error) {
	var steps []Step
	err := scanSteps(r, func(st Step) error {
		steps = append(steps, st)
		return nil
	})
	return steps, err
}

func scanSteps(r io.Reader, fn func(Step) error) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		for _, tok := range strings.Fields(text) {
			st, err := ParseStep(tok)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			if err := fn(st); err != nil {
				return err
			}
		}
	}
	return sc.Err()
}

// Play performs one step.
func (s *Session) Play(st Step) {
	switch st.Kind {
	case StepPress:
		s.Press(st.Codes[0])
	case StepRelease:
		s.Release(st.Codes[0])
	case StepChord:
		s.Chord(st.Codes...)
	default:
		s.Tap(st.Codes[0])
	}
}

// RunScript streams steps from r into the session. Parsing and dispatch run
// on separate goroutines and only the dispatcher touches the session. It
// stops at the first parse error or when ctx is done.
func RunScript(ctx context.Context, r io.Reader, s *Session) error {
	g, ctx := errgroup.WithContext(ctx)
	steps := make(chan Step, 64)

	g.Go(func() error {
		defer close(steps)
		return scanSteps(r, func(st Step) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case steps <- st:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	})
	g.Go(func() error {
		for {
			select {
			case st, ok := <-steps:
				if !ok {
					return nil
				}
				s.Play(st)
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})
	return g.Wait()
}
