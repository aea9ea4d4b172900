package render

import "strings"

// TruncationPolicy selects where a docstring's "one-line summary" ends.
// The observed behavior of documentation pipelines is ambiguous between the
// first physical newline and the first blank line, so the rule is a policy
// rather than a hardcoded assumption.
type TruncationPolicy string

const (
	// TruncateNearest cuts at the first newline or first blank line,
	// whichever comes first. This is the default.
	TruncateNearest TruncationPolicy = "nearest"

	// TruncateBlankLine keeps the first paragraph, collapsed onto one line.
	TruncateBlankLine TruncationPolicy = "blank-line"

	// TruncateNewline cuts at the first physical newline.
	TruncateNewline TruncationPolicy = "newline"
)

// IsValid reports whether the policy is one of the known values.
func (p TruncationPolicy) IsValid() bool {
	switch p {
	case TruncateNearest, TruncateBlankLine, TruncateNewline, "":
		return true
	default:
		return false
	}
}

// Summary applies the renderer's truncation policy to a docstring and
// returns its one-line summary. Leading blank lines are skipped first, so
// a docstring that opens with a newline still yields its first sentence.
func (r *Renderer) Summary(doc string) string {
	doc = strings.TrimLeft(doc, "\n \t")
	if doc == "" {
		return ""
	}

	policy := r.Truncation
	if policy == "" {
		policy = TruncateNearest
	}

	switch policy {
	case TruncateBlankLine:
		paragraph := doc
		if idx := strings.Index(doc, "\n\n"); idx >= 0 {
			paragraph = doc[:idx]
		}
		return strings.Join(strings.Fields(paragraph), " ")
	default:
		// After trimming leading blanks the first newline can never come
		// later than the first blank line, so nearest and newline agree.
		return strings.TrimSpace(firstLine(doc))
	}
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
