package main

import (
	"errors"
	"fmt"
	"os"

	"example.com/vkbd/internal/app"
	"example.com/vkbd/pkg/config"
	"example.com/vkbd/pkg/keyboard"
	"example.com/vkbd/pkg/keys"
	"example.com/vkbd/pkg/logs"
	"example.com/vkbd/pkg/prefs"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type rootOptions struct {
	configPath string
}

// env is what every command needs: config, preference store, logger and a
// keyboard machine with the stored language applied.
type env struct {
	cfg     *config.Config
	store   prefs.Store
	logger  *logs.Logger
	machine *keyboard.Machine
}

func setup(opts *rootOptions) (*env, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	path := cfg.Prefs.Path
	if path == "" {
		path = prefs.DefaultPath(cfg.Prefs.Backend)
	}
	store, err := prefs.Open(cfg.Prefs.Backend, path)
	if err != nil {
		return nil, fmt.Errorf("open preferences: %w", err)
	}
	logger := logs.NewFromEnv()

	catalog := keys.Default()
	if err := catalog.Validate(); err != nil {
		logger.Warn("catalog.defect", map[string]any{"error": err.Error()})
	}
	m := keyboard.New(catalog, keyboard.Options{
		Languages: cfg.Languages,
		Language:  cfg.Language,
		Combo:     cfg.Combo,
		Store:     store,
	})
	return &env{cfg: cfg, store: store, logger: logger, machine: m}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("prefs.close", map[string]any{"error": err.Error()})
	}
	e.logger.Close()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "vkbd",
		Short:         "On-screen keyboard for the terminal",
		Long:          `An on-screen keyboard with English and Russian layouts. Type on your keyboard or click the keys; Ctrl+Alt (or F2) switches the language.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(opts)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath(), "config file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive keyboard (default)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(opts)
		},
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(newTypeCmd(opts))
	rootCmd.AddCommand(newKeysCmd())
	return rootCmd
}

var errNoTerminal = errors.New("the interactive keyboard needs a terminal; use `vkbd type` for scripts")

// isTerminal reports whether stdin and stdout are both a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func runTUI(opts *rootOptions) error {
	if !isTerminal() {
		return errNoTerminal
	}
	e, err := setup(opts)
	if err != nil {
		return err
	}
	defer e.Close()

	r := app.New(app.NewSession(e.machine, app.NewTextArea(""), e.logger))
	r.Keymap = e.cfg.Keymap
	r.ConfigPath = e.cfg.File
	th, err := config.ResolveTheme(e.cfg.Theme)
	if err != nil {
		e.logger.Warn("theme", map[string]any{"theme": e.cfg.Theme, "error": err.Error()})
	}
	r.Theme = th
	if err := r.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
