package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return nil }
func (c *UICmd) Synopsis() string  { return "Interactive terminal UI" }
func (c *UICmd) Usage() string     { return "todo ui" }
func (c *UICmd) NeedsStore() bool  { return true }

func (c *UICmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, sess *Session, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if f, ok := out.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		fmt.Fprintln(errOut, "error: ui requires a terminal")
		return exitcode.UserError
	}

	// Route logs to the status line; stderr would corrupt the alt screen.
	handler := tui.NewLogHandler(cfg.LogLevel())
	logger := slog.New(handler)
	sess.Controller.SetLogger(logger)
	sess.Store.SetLogger(logger)

	if err := tui.Run(ctx, sess.Controller, tui.Options{LogHandler: handler}); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if sess.Controller.Degraded() {
		fmt.Fprintln(errOut, "warning: some changes were not saved")
		return exitcode.StorageError
	}
	return exitcode.Success
}
