package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/rstexpand/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 issues (1 error, 2 warnings) in 2 files, 14 blocks expanded".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.DiagnosticsTotal == 0 {
		msg := s.Success.Render("All directives expanded") +
			s.Dim.Render(fmt.Sprintf(" (%d blocks in %d files)", stats.BlocksExpanded, stats.FilesProcessed))
		if stats.FilesModified > 0 {
			fileWord := wordFiles
			if stats.FilesModified == 1 {
				fileWord = wordFile
			}
			msg += ", " + s.Success.Render(fmt.Sprintf("%d %s rewritten", stats.FilesModified, fileWord))
		}
		return msg + "\n"
	}

	var parts []string

	issueWord := "issues"
	if stats.DiagnosticsTotal == 1 {
		issueWord = "issue"
	}

	var severityParts []string
	if errors := stats.DiagnosticsBySeverity["error"]; errors > 0 {
		word := "errors"
		if errors == 1 {
			word = "error"
		}
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", errors, word)))
	}
	if warnings := stats.DiagnosticsBySeverity["warning"]; warnings > 0 {
		word := "warnings"
		if warnings == 1 {
			word = "warning"
		}
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", warnings, word)))
	}

	head := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, issueWord)
	if len(severityParts) > 0 {
		head += fmt.Sprintf(" (%s)", strings.Join(severityParts, ", "))
	}

	fileWord := wordFiles
	if stats.FilesWithIssues == 1 {
		fileWord = wordFile
	}
	parts = append(parts, fmt.Sprintf("%s in %d %s", head, stats.FilesWithIssues, fileWord))

	if stats.BlocksExpanded > 0 {
		parts = append(parts, fmt.Sprintf("%d blocks expanded", stats.BlocksExpanded))
	}
	if stats.FilesModified > 0 {
		modWord := wordFiles
		if stats.FilesModified == 1 {
			modWord = wordFile
		}
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s rewritten", stats.FilesModified, modWord)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files processed:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:     " +
			s.Dim.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}
	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}
	if stats.FilesModified > 0 {
		builder.WriteString("  Files rewritten:   " +
			s.Success.Render(strconv.Itoa(stats.FilesModified)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Blocks expanded:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.BlocksExpanded)) + "\n")
	builder.WriteString("  Total issues:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)) + "\n")

	if errors := stats.DiagnosticsBySeverity["error"]; errors > 0 {
		builder.WriteString("    Errors:          " +
			s.Error.Render(strconv.Itoa(errors)) + "\n")
	}
	if warnings := stats.DiagnosticsBySeverity["warning"]; warnings > 0 {
		builder.WriteString("    Warnings:        " +
			s.Warning.Render(strconv.Itoa(warnings)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0 || stats.DiagnosticsBySeverity["error"] > 0:
		builder.WriteString(s.Failure.Render("Expansion failed with errors"))
	case stats.DiagnosticsBySeverity["warning"] > 0:
		builder.WriteString(s.Warning.Render("Expansion completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Expansion succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
