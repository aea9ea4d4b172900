package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/rstexpand/internal/cli"
	"github.com/yaklabco/rstexpand/pkg/runner"
)

func TestWithExitCode(t *testing.T) {
	t.Run("nil error stays nil", func(t *testing.T) {
		assert.NoError(t, cli.WithExitCode(cli.ExitIOError, nil))
	})

	t.Run("wrapped error keeps message and identity", func(t *testing.T) {
		base := errors.New("disk full")
		err := cli.WithExitCode(cli.ExitIOError, base)

		assert.EqualError(t, err, "disk full")
		assert.ErrorIs(t, err, base)
	})
}

func TestExitCodeFromError(t *testing.T) {
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromError(nil))
	assert.Equal(t, cli.ExitInternalError, cli.ExitCodeFromError(errors.New("boom")))
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(cli.WithExitCode(cli.ExitConfigError, errors.New("bad config"))))

	wrapped := fmt.Errorf("outer: %w", cli.WithExitCode(cli.ExitIOError, errors.New("inner")))
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromError(wrapped))
}

func TestExitCodeFromResult(t *testing.T) {
	stats := func(severity map[string]int, errored int) *runner.Result {
		r := &runner.Result{}
		r.Stats.DiagnosticsBySeverity = severity
		r.Stats.FilesErrored = errored
		return r
	}

	tests := []struct {
		name   string
		result *runner.Result
		want   int
	}{
		{"nil result", nil, cli.ExitSuccess},
		{"clean", stats(map[string]int{}, 0), cli.ExitSuccess},
		{"error diagnostics", stats(map[string]int{"error": 1}, 0), cli.ExitExpansionErrors},
		{"file errors", stats(map[string]int{}, 2), cli.ExitExpansionErrors},
		{"warning diagnostics", stats(map[string]int{"warning": 3}, 0), cli.ExitExpansionWarnings},
		{"errors trump warnings", stats(map[string]int{"error": 1, "warning": 1}, 0), cli.ExitExpansionErrors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.ExitCodeFromResult(tt.result))
		})
	}
}
