package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/taskman/internal/config"
	"github.com/idilsaglam/taskman/internal/store"
	"github.com/idilsaglam/taskman/internal/store/jsonstore"
	"github.com/idilsaglam/taskman/internal/ui"
)

// Exit codes: 0 ok, 1 runtime failure, 2 usage.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// exitError carries an exit code through cobra's error return.
type exitError struct {
	code int
	err  error
	hint string
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func failure(format string, a ...any) error {
	return &exitError{code: ExitFailure, err: fmt.Errorf(format, a...)}
}

func usage(format string, a ...any) error {
	return &exitError{code: ExitUsage, err: fmt.Errorf(format, a...)}
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	stdout, stderr io.Writer
	log            *log.Logger
	cfg            *config.Config

	// raw flag values, applied over cfg once flags are parsed
	configPath, file, theme, logLevel string
}

// Run executes the CLI with args (without the program name) and returns an exit code.
func Run(args []string, stdout, stderr io.Writer, version string) int {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		log:    log.NewWithOptions(stderr, log.Options{Prefix: config.AppName}),
	}
	root := a.rootCmd(version)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return ExitOK
	}
	ui.Fail(stderr, err.Error())

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.hint != "" {
			ui.Hint(stderr, ee.hint)
		}
		return ee.code
	}
	// flag and argument errors raised by cobra itself
	return ExitUsage
}

func (a *app) rootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskman",
		Short: "taskman - a tiny task list",
		Long: `taskman keeps an ordered list of tasks (name, description, deadline)
in a JSON file. Run it without a subcommand for the interactive list.`,
		Version:           version,
		Args:              cobra.NoArgs,
		RunE:              a.runUI,
		PersistentPreRunE: a.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default "+config.GlobalPath()+", then ./"+config.ProjectFileName+")")
	pf.StringVarP(&a.file, "file", "f", "", "data file (default "+jsonstore.DefaultFileName+")")
	pf.StringVar(&a.theme, "theme", "", "color theme: classic, neon or mono")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		a.uiCmd(),
		a.addCmd(),
		a.editCmd(),
		a.rmCmd(),
		a.lsCmd(),
		a.exportCmd(),
		versionCmd(version),
	)
	return root
}

// setup resolves configuration: files first, then flags.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return failure("%w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.File = a.file
	}
	if flags.Changed("theme") {
		cfg.Theme = a.theme
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}

	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return usage("log level: %w", err)
	}
	a.log.SetLevel(lvl)
	ui.SetTheme(cfg.Theme)
	a.cfg = cfg

	a.log.Debug("config resolved", "file", cfg.File, "theme", cfg.Theme)
	return nil
}

// load builds the store from the data file. A missing file means an empty list.
func (a *app) load() (*store.Store, error) {
	s := store.New()
	found, err := jsonstore.LoadInto(s, a.cfg.File)
	if err != nil {
		return nil, &exitError{
			code: ExitFailure,
			err:  fmt.Errorf("load %s: %w", a.cfg.File, err),
			hint: "The file was left untouched. Fix or move it, then retry.",
		}
	}
	if !found {
		a.log.Debug("no data file, starting empty", "file", a.cfg.File)
	} else {
		a.log.Debug("loaded tasks", "file", a.cfg.File, "count", s.Len())
	}
	return s, nil
}

// save persists s. An unwritable file is not a codec error, but the user
// asked for a change, so it is reported here.
func (a *app) save(s *store.Store) error {
	written, err := jsonstore.SaveFrom(s, a.cfg.File)
	if err != nil {
		return failure("save %s: %w", a.cfg.File, err)
	}
	if !written {
		a.log.Warn("data file not writable, changes not saved", "file", a.cfg.File)
		return failure("save: cannot open %s for writing", a.cfg.File)
	}
	a.log.Debug("saved tasks", "file", a.cfg.File, "count", s.Len())
	return nil
}
