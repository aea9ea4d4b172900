package rst

import (
	"regexp"
	"strings"
)

// Class is the classification of a single line.
type Class int

const (
	// ClassBlank is a line that is empty or whitespace-only.
	ClassBlank Class = iota

	// ClassComment is a ".."-prefixed line that is not a directive marker.
	ClassComment

	// ClassSectionTitle is a section adornment line (e.g. "====", "----").
	ClassSectionTitle

	// ClassField is a field-list line (":returns: ...").
	ClassField

	// ClassDirective is a directive marker line (".. name:: arg").
	// Only auto directives are expanded; all others pass through.
	ClassDirective

	// ClassText is any other line of ordinary content.
	ClassText
)

// String returns the lowercase name of the class.
func (c Class) String() string {
	switch c {
	case ClassBlank:
		return "blank"
	case ClassComment:
		return "comment"
	case ClassSectionTitle:
		return "section-title"
	case ClassField:
		return "field"
	case ClassDirective:
		return "directive"
	default:
		return "text"
	}
}

// Auto directive names recognized by the expander.
const (
	DirectiveAutosummary  = "autosummary"
	DirectiveAutomodule   = "automodule"
	DirectiveAutoclass    = "autoclass"
	DirectiveAutofunction = "autofunction"
)

// Context-setting directive names. They are never expanded but update the
// module/class context used to qualify bare directive arguments.
const (
	DirectiveModule        = "module"
	DirectiveCurrentmodule = "currentmodule"
	DirectiveClass         = "class"
)

// IsAutoDirective reports whether name is one of the four expandable
// auto directives.
func IsAutoDirective(name string) bool {
	switch name {
	case DirectiveAutosummary, DirectiveAutomodule, DirectiveAutoclass, DirectiveAutofunction:
		return true
	default:
		return false
	}
}

// Marker is a parsed directive marker line.
type Marker struct {
	// Name is the directive name (the text before "::").
	Name string

	// Arg is the raw argument text after "::", trimmed.
	Arg string

	// Indent is the indentation width of the marker line.
	Indent int
}

var (
	directiveRe = regexp.MustCompile(`^(\s*)\.\.\s+([\w:.-]+)::(?:\s+(.*))?\s*$`)
	adornmentRe = regexp.MustCompile(`^\s*([=\-~^"'` + "`" + `#*+._]{2,})\s*$`)
	fieldRe     = regexp.MustCompile(`^\s*:[^:\s][^:]*:(\s|$)`)
)

// ParseMarker parses a directive marker line of the form ".. name:: arg".
// It returns false if the line is not a directive marker. Any directive
// name is parsed; callers filter with IsAutoDirective.
func ParseMarker(text string) (Marker, bool) {
	m := directiveRe.FindStringSubmatch(text)
	if m == nil {
		return Marker{}, false
	}
	return Marker{
		Name:   m[2],
		Arg:    strings.TrimSpace(m[3]),
		Indent: Indentation(text),
	}, true
}

// Classify classifies a single line. Classification is pure: it never
// consults surrounding lines. Blank and comment classes exist so the block
// delimiter can carry them inside a directive body without closing it.
func Classify(text string) Class {
	if strings.TrimSpace(text) == "" {
		return ClassBlank
	}
	if _, ok := ParseMarker(text); ok {
		return ClassDirective
	}
	trimmed := strings.TrimLeft(text, " \t")
	if trimmed == ".." || strings.HasPrefix(trimmed, ".. ") {
		return ClassComment
	}
	if isAdornment(text) {
		return ClassSectionTitle
	}
	if fieldRe.MatchString(text) {
		return ClassField
	}
	return ClassText
}

// isAdornment reports whether the line is a section adornment: two or more
// repetitions of a single punctuation character. RE2 has no backreferences,
// so the same-character rule is checked here rather than in the pattern.
func isAdornment(text string) bool {
	m := adornmentRe.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	run := m[1]
	for i := 1; i < len(run); i++ {
		if run[i] != run[0] {
			return false
		}
	}
	return true
}

// Indentation returns the indentation width of a line: the number of
// leading space characters, counting a tab as a single column. A blank
// line has indentation 0.
func Indentation(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	width := 0
	for _, r := range text {
		if r != ' ' && r != '\t' {
			break
		}
		width++
	}
	return width
}
