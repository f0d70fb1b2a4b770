package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/controller"
	"todo/internal/exitcode"
	"todo/internal/logging"
	"todo/internal/storage"
	"todo/internal/view"
)

// BackendFactory opens a storage backend from config.
// Used to inject the backend during dispatch.
type BackendFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Backend, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  BackendFactory
}

// NewDispatcher creates a new dispatcher with the given registry and backend
// factory. A nil factory uses OpenBackend.
func NewDispatcher(registry *commands.Registry, factory BackendFactory) *Dispatcher {
	if factory == nil {
		factory = OpenBackend
	}
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves
	fs.Usage = func() {}

	// Common flags
	var (
		configDir string
		backend   string
		quiet     bool
		debug     bool
	)
	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&backend, "storage", "", "")
	fs.BoolVarP(&quiet, "quiet", "q", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(out, "Usage: %s\n", cmd.Usage())
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.ConfigError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	if backend != "" {
		if err := cfg.SetBackend(backend); err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.ConfigError
		}
	}
	if !cfg.Settings.UI.ColorEnabled() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logger := logging.New(errOut, cfg.LogLevel()).With("command", cmd.Name())

	if !cmd.NeedsStore() {
		return cmd.Run(ctx, cfg, nil, fs.Args(), out, errOut)
	}

	sess, closeFn, code := d.openSession(ctx, cfg, logger, errOut)
	if code != exitcode.Success {
		return code
	}
	defer closeFn()

	return cmd.Run(ctx, cfg, sess, fs.Args(), out, errOut)
}

// openSession opens the backend and loads the task list. Malformed stored
// data is reported as a warning and the command continues with an empty
// list; an unreadable store stops the command.
func (d *Dispatcher) openSession(ctx context.Context, cfg *config.Config, logger *slog.Logger, errOut io.Writer) (*commands.Session, func(), int) {
	backend, err := d.factory(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return nil, nil, exitcode.StorageError
	}
	closeFn := func() {
		if err := backend.Close(); err != nil {
			logger.Warn("closing storage", "error", err)
		}
	}

	store := storage.NewTasks(backend, logger)
	ctl := controller.New(store, view.New(view.DefaultTheme), logger,
		controller.WithMaxTasks(cfg.Settings.MaxTasks))

	if res := ctl.Load(ctx); res.Warning != nil {
		if !storage.IsMalformed(res.Warning) {
			closeFn()
			fmt.Fprintf(errOut, "error: storage error: %v\n", res.Warning)
			return nil, nil, exitcode.StorageError
		}
		fmt.Fprintf(errOut, "warning: %v\n", res.Warning)
	}

	return &commands.Session{Controller: ctl, Store: store}, closeFn, exitcode.Success
}
