package cli

import (
	"errors"

	"github.com/yaklabco/rstexpand/pkg/runner"
)

// Exit codes for rstexpand.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitExpansionErrors indicates expansion completed but produced
	// error diagnostics or failed files.
	ExitExpansionErrors = 1

	// ExitExpansionWarnings indicates expansion completed but left some
	// blocks unexpanded, reported as warning diagnostics.
	ExitExpansionWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrIssuesFound signals issue-bearing completion to the outer main
// without logging a second error message.
var ErrIssuesFound = errors.New("expansion issues found")

// codeError carries an exit code alongside an underlying error.
type codeError struct {
	code int
	err  error
}

func (e *codeError) Error() string { return e.err.Error() }

func (e *codeError) Unwrap() error { return e.err }

// WithExitCode wraps err so that ExitCodeFromError reports code.
func WithExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &codeError{code: code, err: err}
}

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ce *codeError
	if errors.As(err, &ce) {
		return ce.code
	}
	return ExitInternalError
}

// ExitCodeFromResult determines the exit code from a run's diagnostics.
// Strict runs surface through the error severity: the engine escalates
// every strict-policy diagnostic before aborting.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}

	errors := result.Stats.DiagnosticsBySeverity["error"]
	warnings := result.Stats.DiagnosticsBySeverity["warning"]

	if errors > 0 || result.Stats.FilesErrored > 0 {
		return ExitExpansionErrors
	}
	if warnings > 0 {
		return ExitExpansionWarnings
	}
	return ExitSuccess
}
