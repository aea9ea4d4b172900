package rst

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed reports a directive marker whose block cannot be used:
// the expander recovers by leaving the original lines untouched.
var ErrMalformed = errors.New("malformed directive")

// Option is a single directive option line, e.g. ":members:" or
// ":toctree: generated".
type Option struct {
	Key   string
	Value string
}

// DirectiveBlock is a contiguous directive span within a Buffer: the marker
// line at Start plus its indented body up to End (exclusive). It is created
// by Delimit and consumed once by the expansion engine.
type DirectiveBlock struct {
	// Start is the 0-based index of the marker line.
	Start int

	// End is the 0-based index one past the last body line.
	End int

	// Name is the directive name from the marker line.
	Name string

	// Arg is the raw argument string from the marker line.
	Arg string

	// Args holds the per-line arguments of an autosummary body, one dotted
	// name per non-option body line, in input order. Empty for the other
	// directives, whose argument comes from the marker line.
	Args []string

	// Options holds the parsed ":key: value" option lines.
	Options []Option

	// Indent is the indentation width of the marker line.
	Indent int
}

// HasOption reports whether the block carries the named option.
func (blk *DirectiveBlock) HasOption(key string) bool {
	for _, opt := range blk.Options {
		if opt.Key == key {
			return true
		}
	}
	return false
}

// Option returns the value of the named option and whether it was present.
func (blk *DirectiveBlock) Option(key string) (string, bool) {
	for _, opt := range blk.Options {
		if opt.Key == key {
			return opt.Value, true
		}
	}
	return "", false
}

// Len returns the number of lines the block spans, marker included.
func (blk *DirectiveBlock) Len() int {
	return blk.End - blk.Start
}

// Delimit computes the full extent of the directive block whose marker line
// sits at start. The body consists of lines that are blank or indented
// strictly more than the marker; the block closes at the first line indented
// at or below the marker, or at end of buffer. A body line that dedents
// below the first body line while staying right of the marker closes the
// block at that line rather than failing.
//
// Option lines (":key: value" at the minimal body indentation) are parsed
// until the first non-option, non-blank body line. For autosummary the
// remaining non-blank body lines are collected into Args, one dotted name
// per line; for the other directives an empty marker argument is malformed.
func Delimit(buf *Buffer, start int) (*DirectiveBlock, error) {
	if start < 0 || start >= buf.Len() {
		return nil, fmt.Errorf("%w: start index %d out of range", ErrMalformed, start)
	}

	marker, ok := ParseMarker(buf.At(start).Text)
	if !ok {
		return nil, fmt.Errorf("%w: line %d is not a directive marker", ErrMalformed, buf.At(start).Pos)
	}

	blk := &DirectiveBlock{
		Start:  start,
		Name:   marker.Name,
		Arg:    marker.Arg,
		Indent: marker.Indent,
	}

	end := start + 1
	bodyIndent := -1 // indentation of the first non-blank body line
	inOptions := true

	for end < buf.Len() {
		text := buf.At(end).Text
		if Classify(text) == ClassBlank {
			// Blank lines never close the block on their own; trailing
			// blanks are trimmed below.
			end++
			// A blank line ends the option field list.
			if len(blk.Options) > 0 {
				inOptions = false
			}
			continue
		}

		indent := Indentation(text)
		if indent <= marker.Indent {
			break
		}
		if bodyIndent == -1 {
			bodyIndent = indent
		} else if indent < bodyIndent {
			// Partial dedent: close the block here, not an error.
			break
		}

		trimmed := strings.TrimSpace(text)
		if inOptions && indent == bodyIndent {
			if key, value, ok := parseOption(trimmed); ok {
				blk.Options = append(blk.Options, Option{Key: key, Value: value})
				end++
				continue
			}
		}
		inOptions = false

		if marker.Name == DirectiveAutosummary {
			blk.Args = append(blk.Args, trimmed)
		}
		end++
	}

	// Trailing blank lines belong to the surrounding document.
	for end > start+1 && Classify(buf.At(end-1).Text) == ClassBlank {
		end--
	}
	blk.End = end

	if marker.Name != DirectiveAutosummary && IsAutoDirective(marker.Name) && blk.Arg == "" {
		return nil, fmt.Errorf("%w: %s at line %d has no argument", ErrMalformed, marker.Name, buf.At(start).Pos)
	}
	return blk, nil
}

// parseOption parses a trimmed ":key: value" or ":key:" option line.
func parseOption(trimmed string) (key, value string, ok bool) {
	if !strings.HasPrefix(trimmed, ":") {
		return "", "", false
	}
	rest := trimmed[1:]
	idx := strings.Index(rest, ":")
	if idx <= 0 {
		return "", "", false
	}
	key = rest[:idx]
	if strings.ContainsAny(key, " \t") {
		return "", "", false
	}
	return key, strings.TrimSpace(rest[idx+1:]), true
}
