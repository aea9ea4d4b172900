// Package langdetect decides whether a candidate file is reStructuredText.
// It uses go-enry for filename and content classification, with a pattern
// fallback for the ".txt" extension, which reST documents commonly use.
package langdetect

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// languageRST is go-enry's name for reStructuredText.
const languageRST = "reStructuredText"

// rstExtensions are extensions that identify reST without looking at content.
//
//nolint:gochecknoglobals // Read-only lookup table.
var rstExtensions = map[string]struct{}{
	".rst":  {},
	".rest": {},
}

// IsRST reports whether the file at path with the given content is
// reStructuredText. Unambiguous extensions short-circuit; ambiguous ones
// (".txt" and extensionless files) fall back to go-enry classification and
// reST-specific content patterns.
func IsRST(path string, content []byte) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := rstExtensions[ext]; ok {
		return true
	}

	if lang := enry.GetLanguage(filepath.Base(path), content); lang == languageRST {
		return true
	}

	return hasRSTMarkers(content)
}

var (
	directiveLineRe = regexp.MustCompile(`(?m)^\s*\.\.\s+[\w:.-]+::`)
	adornedTitleRe  = regexp.MustCompile(`(?m)^[=\-~^"'#*+]{3,}\s*$`)
)

// hasRSTMarkers checks for structures specific enough to call a plain-text
// file reST: directive markers, or a section title adornment next to a
// field list or literal block marker.
func hasRSTMarkers(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	if directiveLineRe.Match(content) {
		return true
	}
	if adornedTitleRe.Match(content) &&
		(bytes.Contains(content, []byte("::")) || bytes.Contains(content, []byte("\n.. "))) {
		return true
	}
	return false
}
