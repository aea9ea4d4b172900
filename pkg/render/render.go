// Package render turns resolved objects into RST-compatible text lines at a
// caller-chosen indentation. It is purely functional: no I/O, no resolver
// access, no buffer mutation.
package render

import (
	"strings"

	"github.com/yaklabco/rstexpand/pkg/resolve"
)

// memberIndent is the extra indentation applied to member entries nested
// under a module or class rendering.
const memberIndent = 3

// Renderer formats resolved objects. The zero value renders with the
// default truncation policy.
type Renderer struct {
	// Truncation selects the one-line summary rule for autosummary and
	// member descriptions. Empty means TruncateNearest.
	Truncation TruncationPolicy
}

// New creates a Renderer with the default truncation policy.
func New() *Renderer {
	return &Renderer{Truncation: TruncateNearest}
}

// Lines renders an object at the target indentation. withMembers controls
// whether module/class member entries are rendered; it corresponds to the
// directive's :members: option. Every produced line is prefixed with indent
// spaces except blank lines, which stay empty.
func (r *Renderer) Lines(obj *resolve.Object, indent int, withMembers bool) []string {
	switch obj.Kind {
	case resolve.KindModule:
		return r.moduleLines(obj, indent, withMembers)
	default:
		return r.callableLines(obj, indent, withMembers)
	}
}

// callableLines renders a function or class: a signature line, a blank
// separator, then the reindented documentation. Class members follow when
// requested, one level deep.
func (r *Renderer) callableLines(obj *resolve.Object, indent int, withMembers bool) []string {
	out := []string{pad(indent, signatureLine(obj.Name, obj.Signature))}

	if doc := dedent(obj.Doc); len(doc) > 0 {
		out = append(out, "")
		for _, line := range doc {
			out = append(out, pad(indent, line))
		}
	}

	if withMembers && obj.Kind == resolve.KindClass {
		out = append(out, r.memberLines(obj.Members, indent)...)
	}
	return out
}

// moduleLines renders a module: its own documentation, then one short entry
// per member when requested. Member entries recurse exactly one level: the
// member's signature and one-line summary, never its full body.
func (r *Renderer) moduleLines(obj *resolve.Object, indent int, withMembers bool) []string {
	var out []string
	for _, line := range dedent(obj.Doc) {
		out = append(out, pad(indent, line))
	}
	if withMembers {
		out = append(out, r.memberLines(obj.Members, indent)...)
	}
	if len(out) == 0 {
		out = append(out, pad(indent, obj.Name))
	}
	return out
}

// memberLines renders the member list shared by module and class bodies.
func (r *Renderer) memberLines(members []resolve.Member, indent int) []string {
	var out []string
	for _, m := range members {
		out = append(out, "", pad(indent+memberIndent, signatureLine(m.Name, m.Signature)))
		if summary := r.Summary(m.Doc); summary != "" {
			out = append(out, pad(indent+memberIndent*2, summary))
		}
	}
	return out
}

// SummaryLine renders one autosummary entry: the dotted name followed by
// the object's one-line summary.
func (r *Renderer) SummaryLine(obj *resolve.Object, indent int) string {
	summary := r.Summary(obj.Doc)
	if summary == "" {
		return pad(indent, obj.Name)
	}
	return pad(indent, obj.Name+" -- "+summary)
}

// signatureLine combines a (possibly dotted) name with a signature string.
// Resolver signatures may carry their own name ("sqrt(x)") or a full Go
// declaration ("func Sqrt(x float64) float64"); either way the rendered
// line starts with the dotted name the directive asked for.
func signatureLine(name, signature string) string {
	if signature == "" {
		if strings.Contains(name, ".") || !strings.ContainsAny(name, "()") {
			return name + "()"
		}
		return name
	}
	if idx := strings.Index(signature, "("); idx >= 0 {
		return name + signature[idx:]
	}
	return name + " " + signature
}

// pad prefixes a line with indent spaces. Blank lines stay empty so no
// trailing whitespace is ever injected.
func pad(indent int, line string) string {
	if line == "" {
		return ""
	}
	return strings.Repeat(" ", indent) + line
}

// dedent splits a documentation string into lines with the common leading
// whitespace of the non-blank lines removed, and trailing blank lines
// dropped. It returns nil for an empty docstring.
func dedent(doc string) []string {
	doc = strings.Trim(doc, "\n")
	if strings.TrimSpace(doc) == "" {
		return nil
	}
	lines := strings.Split(doc, "\n")

	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return normalizeBlanks(lines)
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= minIndent {
			out[i] = line[minIndent:]
		} else {
			out[i] = strings.TrimLeft(line, " \t")
		}
	}
	return normalizeBlanks(out)
}

// normalizeBlanks rewrites whitespace-only lines as empty lines.
func normalizeBlanks(lines []string) []string {
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
		}
	}
	return lines
}
