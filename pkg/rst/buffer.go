// Package rst provides the line-level model of a reStructuredText document:
// a spliceable line buffer, per-line classification, and directive block
// delimiting. It has no knowledge of object resolution or rendering.
package rst

import "strings"

// Line is a single row of text plus its 1-based position in the document.
// Positions are renumbered after each splice so diagnostics always report
// positions in the current (possibly expanded) document.
type Line struct {
	// Text is the line content without any trailing newline.
	Text string

	// Pos is the 1-based position of the line in the buffer.
	Pos int
}

// Buffer is an ordered, mutable sequence of lines with stable 0-based
// indices. It is owned by exactly one expansion run; Splice is the only
// mutation primitive.
type Buffer struct {
	lines []Line
}

// NewBuffer constructs a Buffer from already-decoded text lines.
func NewBuffer(lines []string) *Buffer {
	buf := &Buffer{lines: make([]Line, len(lines))}
	for i, text := range lines {
		buf.lines[i] = Line{Text: text, Pos: i + 1}
	}
	return buf
}

// FromText splits content into lines and constructs a Buffer.
// It handles both LF (\n) and CRLF (\r\n) line endings. A single trailing
// newline does not produce a final empty line.
func FromText(content string) *Buffer {
	if content == "" {
		return &Buffer{}
	}
	content = strings.TrimSuffix(content, "\n")
	parts := strings.Split(content, "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return NewBuffer(parts)
}

// Len returns the number of lines in the buffer.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// At returns the line at 0-based index i.
// It panics if i is out of range, matching slice semantics.
func (b *Buffer) At(i int) Line {
	return b.lines[i]
}

// Lines returns the current line texts as a new slice.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, ln := range b.lines {
		out[i] = ln.Text
	}
	return out
}

// Text joins the buffer back into a single string with LF line endings
// and a trailing newline. An empty buffer yields an empty string.
func (b *Buffer) Text() string {
	if len(b.lines) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, ln := range b.lines {
		sb.WriteString(ln.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Splice replaces the span [start, end) with the replacement lines and
// returns the new buffer length. start == end inserts without removing.
// Positions are renumbered so every line carries its position in the
// mutated buffer; indices stay contiguous and 0-based.
//
// Splice panics if the span is invalid, matching slice semantics. Callers
// delimit spans from the same buffer, so an invalid span is a bug, not
// recoverable input.
func (b *Buffer) Splice(start, end int, replacement []string) int {
	if start < 0 || end < start || end > len(b.lines) {
		panic("rst: invalid splice span")
	}

	inserted := make([]Line, len(replacement))
	for i, text := range replacement {
		inserted[i] = Line{Text: text}
	}

	tail := b.lines[end:]
	next := make([]Line, 0, len(b.lines)-(end-start)+len(replacement))
	next = append(next, b.lines[:start]...)
	next = append(next, inserted...)
	next = append(next, tail...)
	b.lines = next

	b.renumber()
	return len(b.lines)
}

// renumber reassigns 1-based positions after a mutation.
func (b *Buffer) renumber() {
	for i := range b.lines {
		b.lines[i].Pos = i + 1
	}
}
