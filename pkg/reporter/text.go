package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/rstexpand/internal/ui/pretty"
	"github.com/yaklabco/rstexpand/pkg/runner"
)

// defaultTermWidth is used when the output is not a terminal.
const defaultTermWidth = 80

// maxHeaderWidth caps the per-file header rule on wide terminals.
const maxHeaderWidth = 100

// TextReporter writes expanded documents to the primary writer and
// styled diagnostics to the error writer.
type TextReporter struct {
	opts      Options
	styles    *pretty.Styles
	errStyles *pretty.Styles
	bw        *bufio.Writer
	ebw       *bufio.Writer
	width     int
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:      opts,
		styles:    pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		errStyles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.ErrorWriter)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
		ebw:       bufio.NewWriterSize(opts.ErrorWriter, bufWriterSize),
		width:     getTerminalWidth(opts.Writer),
	}
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			if width > maxHeaderWidth {
				return maxHeaderWidth
			}
			return width
		}
	}
	return defaultTermWidth
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
		if flushErr := r.ebw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.ebw, r.errStyles.Dim.Render("No files to expand."))
		}
		return 0, nil
	}

	if r.opts.ShowExpanded || r.opts.ShowIndex {
		r.reportDocuments(result)
	}

	total := r.reportDiagnostics(result)

	if r.opts.ShowSummary {
		fmt.Fprint(r.ebw, r.errStyles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportDocuments writes expanded content and symbol indexes.
func (r *TextReporter) reportDocuments(result *runner.Result) {
	multiple := countReportable(result) > 1

	for _, file := range result.Files {
		if file.Skipped || file.Result == nil {
			continue
		}

		if multiple && r.opts.ShowHeaders {
			fmt.Fprintln(r.bw, r.styles.Bold.Render(r.fileHeader(file.Path)))
		}

		if r.opts.ShowExpanded {
			for i, line := range file.Result.Lines {
				if r.opts.Numbered {
					fmt.Fprintf(r.bw, "%5d %s\n", i+1, line)
				} else {
					fmt.Fprintln(r.bw, line)
				}
			}
		}

		if r.opts.ShowIndex && len(file.Symbols) > 0 {
			if r.opts.ShowExpanded {
				fmt.Fprintln(r.bw)
			}
			for _, sym := range file.Symbols {
				fmt.Fprintln(r.bw, r.styles.FormatSymbol(sym))
			}
		}

		if multiple {
			fmt.Fprintln(r.bw)
		}
	}
}

// reportDiagnostics writes errors and per-directive diagnostics grouped
// by file.
func (r *TextReporter) reportDiagnostics(result *runner.Result) int {
	var total int

	for _, file := range result.Files {
		path := r.displayPath(file.Path)

		if file.Error != nil {
			fmt.Fprintf(r.ebw, "%s: %s\n",
				r.errStyles.FilePath.Render(path),
				r.errStyles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
		}

		if file.Result == nil || len(file.Result.Diagnostics) == 0 {
			continue
		}

		fmt.Fprintln(r.ebw, r.errStyles.FormatFileHeader(path, len(file.Result.Diagnostics)))
		for _, diag := range file.Result.Diagnostics {
			fmt.Fprint(r.ebw, r.errStyles.FormatDiagnostic(path, diag))
			total++
		}
		fmt.Fprintln(r.ebw)
	}

	return total
}

// fileHeader renders a "== path ===..." rule sized to the terminal.
func (r *TextReporter) fileHeader(path string) string {
	header := "== " + r.displayPath(path)
	if pad := r.width - len(header) - 1; pad > 0 {
		header += " " + strings.Repeat("=", pad)
	}
	return header
}

// displayPath makes the path relative to the working directory when set.
func (r *TextReporter) displayPath(path string) string {
	if r.opts.WorkingDir == "" {
		return path
	}
	rel, err := filepath.Rel(r.opts.WorkingDir, path)
	if err != nil || rel == "" {
		return path
	}
	return rel
}

// countReportable counts files that produced a result.
func countReportable(result *runner.Result) int {
	var n int
	for _, file := range result.Files {
		if !file.Skipped && file.Result != nil {
			n++
		}
	}
	return n
}
