package commands

import (
	"errors"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/controller"
	"todo/internal/exitcode"
	"todo/internal/storage"
	"todo/internal/task"
)

// report prints the outcome of a mutating intent and returns the exit code.
// Validation and lookup errors are user errors. A storage warning is fatal
// for a one-shot command: nothing else will retry the write.
func report(cfg *config.Config, res controller.Result, out, errOut io.Writer) int {
	if res.Err != nil {
		fmt.Fprintf(errOut, "error: %v\n", res.Err)
		if task.IsValidation(res.Err) || errors.Is(res.Err, task.ErrNotFound) {
			return exitcode.UserError
		}
		return exitcode.StorageError
	}
	if res.Warning != nil {
		if storage.IsStorageError(res.Warning) {
			fmt.Fprintf(errOut, "error: storage error: %v\n", res.Warning)
			return exitcode.StorageError
		}
		fmt.Fprintf(errOut, "warning: %v\n", res.Warning)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
