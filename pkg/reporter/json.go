package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/rstexpand/pkg/expand"
	"github.com/yaklabco/rstexpand/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string             `json:"path"`
	Lines       []string           `json:"lines,omitempty"`
	Symbols     []expand.Symbol    `json:"symbols,omitempty"`
	Diagnostics []expand.Diagnostic `json:"diagnostics"`
	Blocks      int                `json:"blocksExpanded"`
	Skipped     bool               `json:"skipped,omitempty"`
	Written     bool               `json:"written,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int            `json:"filesDiscovered"`
	FilesProcessed  int            `json:"filesProcessed"`
	FilesSkipped    int            `json:"filesSkipped"`
	FilesErrored    int            `json:"filesErrored"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesModified   int            `json:"filesModified"`
	BlocksExpanded  int            `json:"blocksExpanded"`
	TotalIssues     int            `json:"totalIssues"`
	BySeverity      map[string]int `json:"bySeverity"`
	ByKind          map[string]int `json:"byKind"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
			ByKind:     make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:        file.Path,
			Symbols:     file.Symbols,
			Diagnostics: make([]expand.Diagnostic, 0),
			Skipped:     file.Skipped,
			Written:     file.Written,
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		if file.Result != nil {
			if r.opts.ShowExpanded {
				fileResult.Lines = file.Result.Lines
			}
			fileResult.Blocks = file.Result.Blocks
			fileResult.Diagnostics = append(fileResult.Diagnostics, file.Result.Diagnostics...)
		}

		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesProcessed:  stats.FilesProcessed,
		FilesSkipped:    stats.FilesSkipped,
		FilesErrored:    stats.FilesErrored,
		FilesWithIssues: stats.FilesWithIssues,
		FilesModified:   stats.FilesModified,
		BlocksExpanded:  stats.BlocksExpanded,
		TotalIssues:     stats.DiagnosticsTotal,
		BySeverity:      stats.DiagnosticsBySeverity,
		ByKind:          stats.DiagnosticsByKind,
	}

	return output
}
