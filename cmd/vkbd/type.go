package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"example.com/vkbd/internal/app"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

func newTypeCmd(opts *rootOptions) *cobra.Command {
	var (
		text      string
		selection string
		showState bool
	)
	cmd := &cobra.Command{
		Use:   "type [step...]",
		Short: "Play a key script against a text buffer and print the result",
		Long: `Play a key script without a terminal. Steps are separated by whitespace:

  KeyA                 tap a key
  +ShiftLeft           hold a key
  -ShiftLeft           release a held key
  ControlLeft+AltLeft  press keys together, then release them

Steps are read from the arguments or, when there are none, from stdin.
'#' starts a comment.`,
		Example: `  vkbd type +ShiftLeft KeyH -ShiftLeft KeyI
  vkbd type --text "hello world" --select 0:5 KeyB KeyY KeyE
  echo "ControlLeft+AltLeft KeyG KeyH" | vkbd type --state`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			ta := app.NewTextArea(text)
			if selection != "" {
				start, end, err := parseSelection(selection)
				if err != nil {
					return err
				}
				ta.Select(start, end)
			}
			s := app.NewSession(e.machine, ta, e.logger)

			var in io.Reader = cmd.InOrStdin()
			if len(args) > 0 {
				in = strings.NewReader(strings.Join(args, " "))
			}
			if err := app.RunScript(cmd.Context(), in, s); err != nil {
				return fmt.Errorf("script: %w", err)
			}

			out := cmd.OutOrStdout()
			if !showState {
				_, err := fmt.Fprintln(out, ta.String())
				return err
			}
			doc, err := stateJSON(s)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, doc)
			return err
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "initial text (caret at the end)")
	cmd.Flags().StringVar(&selection, "select", "", "initial selection as start:end in runes")
	cmd.Flags().BoolVar(&showState, "state", false, "print text and keyboard state as JSON")
	return cmd
}

func parseSelection(s string) (start, end int, err error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("selection %q: want start:end", s)
	}
	if start, err = strconv.Atoi(strings.TrimSpace(a)); err != nil {
		return 0, 0, fmt.Errorf("selection %q: %w", s, err)
	}
	if end, err = strconv.Atoi(strings.TrimSpace(b)); err != nil {
		return 0, 0, fmt.Errorf("selection %q: %w", s, err)
	}
	return start, end, nil
}

func stateJSON(s *app.Session) (string, error) {
	st := s.Machine.State()
	start, end := s.Text.Selection()
	fields := []struct {
		path  string
		value any
	}{
		{"text", s.Text.String()},
		{"language", string(st.Language)},
		{"caps_lock", st.CapsLock},
		{"shift", st.Shift},
		{"selection.start", start},
		{"selection.end", end},
	}
	doc := "{}"
	for _, f := range fields {
		var err error
		if doc, err = sjson.Set(doc, f.path, f.value); err != nil {
			return "", fmt.Errorf("encode state: %w", err)
		}
	}
	return doc, nil
}
