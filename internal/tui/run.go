package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/controller"
)

// Options configures Run.
type Options struct {
	// LogHandler, if set, is connected to the program so log records
	// appear on the status line.
	LogHandler *LogHandler

	// Input and Output default to the process terminal.
	Input  io.Reader
	Output io.Writer
}

// Run starts the UI on the alternate screen with mouse support and blocks
// until the user quits or ctx is cancelled.
func Run(ctx context.Context, ctl *controller.Controller, opts Options) error {
	programOptions := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	if opts.Input != nil {
		programOptions = append(programOptions, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOptions = append(programOptions, tea.WithOutput(opts.Output))
	}

	program := tea.NewProgram(NewModel(ctx, ctl), programOptions...)
	if opts.LogHandler != nil {
		opts.LogHandler.SetProgram(program)
		defer opts.LogHandler.SetProgram(nil)
	}

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
