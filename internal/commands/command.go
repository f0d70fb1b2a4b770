// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/controller"
	"todo/internal/storage"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or writes tasks.
	// Commands like help and version return false.
	NeedsStore() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *pflag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, settings).
	// sess is nil if NeedsStore() returns false. Otherwise the task list
	// has already been loaded.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, sess *Session, args []string, out, errOut io.Writer) int
}

// Session is an open task list: the controller driving it and the store
// it persists to.
type Session struct {
	Controller *controller.Controller
	Store      *storage.Tasks
}
