package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for expanded documents (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for diagnostics and summaries
	// (typically os.Stderr), so document output stays pipe-clean.
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowExpanded prints the expanded document content. Disabled when
	// files are rewritten in place.
	ShowExpanded bool

	// Numbered prefixes each expanded line with its line number.
	Numbered bool

	// ShowIndex prints the symbol index after each document.
	ShowIndex bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// ShowHeaders prints a file path header before each document when
	// more than one file is reported.
	ShowHeaders bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		ErrorWriter:  os.Stderr,
		Format:       FormatText,
		Color:        "auto",
		ShowExpanded: true,
		ShowSummary:  true,
		ShowHeaders:  true,
	}
}
