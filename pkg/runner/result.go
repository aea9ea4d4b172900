package runner

import "github.com/yaklabco/rstexpand/pkg/expand"

// FileOutcome is the per-document result of an expansion run.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the expansion result for this file.
	// Nil if the file was skipped or errored before expansion.
	Result *expand.Result

	// Symbols is the document's symbol index, built when requested.
	Symbols []expand.Symbol

	// Skipped is true when the file was discovered but judged not to be
	// reStructuredText.
	Skipped bool

	// Written is true when the expanded content was written back in place.
	Written bool

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully expanded.
	FilesProcessed int

	// FilesSkipped is the number of files skipped by content detection.
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// FilesModified is the number of files rewritten in place.
	FilesModified int

	// BlocksExpanded is the total number of directive blocks expanded.
	BlocksExpanded int

	// DiagnosticsTotal is the total number of diagnostics across all files.
	DiagnosticsTotal int

	// DiagnosticsBySeverity maps severity levels to counts.
	DiagnosticsBySeverity map[string]int

	// DiagnosticsByKind maps failure kinds to counts.
	DiagnosticsByKind map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered
	// deterministically by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any error-severity diagnostics or file
// errors occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || r.Stats.DiagnosticsBySeverity[string(expand.SeverityError)] > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// NewResult builds a Result from pre-computed outcomes. Used when the
// caller expands content itself (stdin) instead of going through Run.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{Stats: newStats()}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[string]int),
		DiagnosticsByKind:     make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
	}
	if outcome.Skipped {
		r.Stats.FilesSkipped++
		return
	}
	if outcome.Result == nil {
		return
	}

	if outcome.Error == nil {
		r.Stats.FilesProcessed++
	}
	if outcome.Written {
		r.Stats.FilesModified++
	}

	r.Stats.BlocksExpanded += outcome.Result.Blocks

	diagCount := len(outcome.Result.Diagnostics)
	r.Stats.DiagnosticsTotal += diagCount
	if diagCount > 0 {
		r.Stats.FilesWithIssues++
	}
	for _, diag := range outcome.Result.Diagnostics {
		r.Stats.DiagnosticsBySeverity[string(diag.Severity)]++
		r.Stats.DiagnosticsByKind[string(diag.Kind)]++
	}
}
