// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty text, no such task).
	UserError = 1

	// ConfigError indicates an unreadable or invalid configuration.
	ConfigError = 2

	// StorageError indicates the task list could not be read or saved.
	StorageError = 3
)
