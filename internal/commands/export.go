package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/export"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
	output string
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Write the task list as JSON, CBOR or PDF" }
func (c *ExportCmd) Usage() string {
	return "todo export [--format json|cbor|pdf] [--output <file>]"
}
func (c *ExportCmd) NeedsStore() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.format, "format", "f", export.FormatJSON, "")
	fs.StringVarP(&c.output, "output", "o", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, sess *Session, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	format := strings.ToLower(c.format)
	if format == "" {
		format = export.FormatJSON
	}

	data, code := encode(ctx, sess, format, errOut)
	if code != exitcode.Success {
		return code
	}

	if c.output == "" {
		out.Write(data)
		if format == export.FormatJSON {
			fmt.Fprintln(out)
		}
		return exitcode.Success
	}

	if err := os.WriteFile(c.output, data, 0600); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// encode renders the list. JSON is the stored value byte for byte when one
// exists; an absent value exports as the (empty) loaded list.
func encode(ctx context.Context, sess *Session, format string, errOut io.Writer) ([]byte, int) {
	if format == export.FormatJSON {
		raw, ok, err := sess.Store.Raw(ctx)
		if err != nil {
			fmt.Fprintf(errOut, "error: storage error: %v\n", err)
			return nil, exitcode.StorageError
		}
		if ok {
			return []byte(raw), exitcode.Success
		}
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, sess.Controller.Records()); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, exitcode.UserError
	}
	return buf.Bytes(), exitcode.Success
}

// SetOptions sets the format and output path (for testing).
func (c *ExportCmd) SetOptions(format, output string) {
	c.format = format
	c.output = output
}
