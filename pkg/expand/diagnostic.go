// Package expand orchestrates directive expansion: it walks a line buffer,
// delimits auto-directive blocks, resolves their targets, and splices the
// rendered documentation back in place, recursing into rendered output with
// explicit depth and cycle protection.
package expand

import "fmt"

// Kind identifies the failure class of a diagnostic.
type Kind string

const (
	// KindMalformedDirective reports a block with no usable extent or
	// argument. The original lines are preserved.
	KindMalformedDirective Kind = "malformed-directive"

	// KindResolutionError reports a dotted name that could not be
	// resolved. Under lenient policy the block is left untouched.
	KindResolutionError Kind = "resolution-error"

	// KindRecursionLimit reports a block whose expansion exceeded the
	// depth bound; the block is truncated with a marker line.
	KindRecursionLimit Kind = "recursion-limit-exceeded"

	// KindCircularReference reports an expansion path that revisited an
	// object already being expanded. Handled like KindRecursionLimit.
	KindCircularReference Kind = "circular-reference"
)

// Severity mirrors the reporter's severity levels.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one reported expansion problem, positioned in the document
// as it looked when the problem was found.
type Diagnostic struct {
	// Kind is the failure class.
	Kind Kind `json:"kind"`

	// Line is the 1-based position of the directive marker line.
	Line int `json:"line"`

	// Directive is the directive name, e.g. "autofunction".
	Directive string `json:"directive,omitempty"`

	// Name is the dotted name involved, when one exists.
	Name string `json:"name,omitempty"`

	// Message is the human-readable description.
	Message string `json:"message"`

	// Severity is warning under lenient policy, error under strict.
	Severity Severity `json:"severity"`
}

// String renders the diagnostic in "line N: kind: message" form.
func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Kind, d.Message)
}
