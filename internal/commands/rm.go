package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "todo rm <n>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, sess *Session, args []string, out, errOut io.Writer) int {
	t, code := lookupTask(sess, args, errOut)
	if code != exitcode.Success {
		return code
	}
	return report(cfg, sess.Controller.Delete(ctx, t.ID), out, errOut)
}
