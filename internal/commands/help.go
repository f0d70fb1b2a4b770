package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, sess *Session, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todo                                   List all tasks
  todo list [common flags]
  todo add [common flags] <text...>
  todo create [common flags] <text...>
  todo toggle [common flags] <n>
  todo done [common flags] <n>
  todo rm [common flags] <n>
  todo delete [common flags] <n>
  todo ui [common flags]                 Interactive terminal UI
  todo export [common flags] [--format json|cbor|pdf] [--output <file>]
  todo help
  todo version

Common flags:
  --config <dir>       Override config directory
  --storage <backend>  Storage backend: file, sqlite or memory
  --quiet              Suppress informational output
  --debug              Print debug logs to stderr
`
