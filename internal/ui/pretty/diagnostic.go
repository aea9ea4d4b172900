package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/rstexpand/pkg/expand"
)

// FormatDiagnostic formats a single expansion diagnostic for terminal output.
func (s *Styles) FormatDiagnostic(path string, diag expand.Diagnostic) string {
	var builder strings.Builder

	// Location: path:line
	location := fmt.Sprintf("%s:%d",
		s.FilePath.Render(path),
		diag.Line,
	)

	severity := s.FormatSeverity(diag.Severity)
	kindDisplay := s.Kind.Render("(" + string(diag.Kind) + ")")

	// Main line: location  severity  message  (kind)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		severity,
		s.Message.Render(diag.Message),
		kindDisplay,
	))

	// Directive context
	if diag.Directive != "" {
		detail := ".. " + diag.Directive + "::"
		if diag.Name != "" {
			detail += " " + diag.Name
		}
		builder.WriteString("    " + s.Dim.Render("in") + " " +
			s.Directive.Render(detail) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev expand.Severity) string {
	switch sev {
	case expand.SeverityError:
		return s.Error.Render("error")
	case expand.SeverityWarning:
		return s.Warning.Render("warning")
	default:
		return string(sev)
	}
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// FormatSymbol formats one symbol index entry as "lineno name".
func (s *Styles) FormatSymbol(sym expand.Symbol) string {
	return fmt.Sprintf("%s %s",
		s.LineNumber.Render(fmt.Sprintf("%5d", sym.Line)),
		s.SymbolName.Render(sym.Name),
	)
}
