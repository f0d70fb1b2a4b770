package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/task"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Flip a task between open and completed" }
func (c *ToggleCmd) Usage() string     { return "todo toggle <n>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }

func (c *ToggleCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, sess *Session, args []string, out, errOut io.Writer) int {
	t, code := lookupTask(sess, args, errOut)
	if code != exitcode.Success {
		return code
	}
	return report(cfg, sess.Controller.Toggle(ctx, t.ID), out, errOut)
}

// lookupTask resolves the positional task number shared by toggle and rm.
func lookupTask(sess *Session, args []string, errOut io.Writer) (task.Task, int) {
	num, err := ParseTaskNum(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, exitcode.UserError
	}

	t, ok := sess.Controller.At(num)
	if !ok {
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", num)
		return task.Task{}, exitcode.UserError
	}
	return t, exitcode.Success
}
