package resolve

import (
	"errors"
	"fmt"
)

// ErrNotFound is the sentinel wrapped by every ResolutionError, so callers
// can test for resolution failure without knowing the resolver flavor.
var ErrNotFound = errors.New("object not found")

// ResolutionError reports that a dotted name could not be resolved.
// It is distinct from expansion errors: under lenient policy the engine
// leaves the directive block untouched and records the failure.
type ResolutionError struct {
	// Name is the dotted name that failed to resolve.
	Name string

	// Reason is a short human-readable explanation.
	Reason string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements error.
func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolve %q: %s: %v", e.Name, e.Reason, e.Err)
	}
	return fmt.Sprintf("resolve %q: %s", e.Name, e.Reason)
}

// Unwrap returns ErrNotFound plus the underlying cause.
func (e *ResolutionError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrNotFound, e.Err}
	}
	return []error{ErrNotFound}
}

// notFound constructs a ResolutionError with a formatted reason.
func notFound(name, format string, args ...any) *ResolutionError {
	return &ResolutionError{Name: name, Reason: fmt.Sprintf(format, args...)}
}
