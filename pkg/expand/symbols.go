package expand

import (
	"github.com/yaklabco/rstexpand/pkg/rst"
)

// Symbol is one entry of the document's symbol index: a qualified dotted
// name and the 1-based line where its description starts.
type Symbol struct {
	Name string `json:"name"`
	Line int    `json:"line"`
}

// indexScope selects how a directive argument is qualified against the
// surrounding module/class context.
type indexScope int

const (
	// scopeAbsolute records the argument verbatim. Module declarations and
	// environment variables already carry their full name.
	scopeAbsolute indexScope = iota

	// scopeModule prefixes the active module. Functions, classes, and data
	// live at module level, so an active class context never applies.
	scopeModule

	// scopeMember prefixes the active module and class.
	scopeMember
)

// indexedDirectives maps each directive whose argument names a symbol to
// its qualification scope. Auto directives are included so unexpanded
// blocks under lenient policy still index their target.
var indexedDirectives = map[string]indexScope{
	"module":        scopeAbsolute,
	"currentmodule": scopeAbsolute,
	"envvar":        scopeAbsolute,

	"class":     scopeModule,
	"function":  scopeModule,
	"data":      scopeModule,
	"exception": scopeModule,
	"decorator": scopeModule,
	"autodata":  scopeModule,

	"method":       scopeMember,
	"classmethod":  scopeMember,
	"staticmethod": scopeMember,
	"attribute":    scopeMember,
	"automethod":   scopeMember,

	rst.DirectiveAutomodule:   scopeAbsolute,
	rst.DirectiveAutoclass:    scopeModule,
	rst.DirectiveAutofunction: scopeModule,
	rst.DirectiveAutosummary:  scopeModule,
}

// qualifySymbol applies the scope's context prefix to a stripped argument.
// Qualification is positional only: no resolver is consulted, so an
// already-qualified argument under an active module context is prefixed
// again rather than recognized.
func qualifySymbol(dc docContext, scope indexScope, name string) string {
	switch scope {
	case scopeAbsolute:
		return name
	case scopeModule:
		dc.class = ""
	}
	return dc.candidates(name)[0]
}

// BuildIndex scans an expanded buffer and records every symbol-describing
// directive with its line position, qualifying bare names with the
// module/class context active at that point. Entries keep first-seen
// positions and document order.
func BuildIndex(buf *rst.Buffer) []Symbol {
	var symbols []Symbol
	seen := make(map[string]struct{})
	dc := docContext{}

	for i := 0; i < buf.Len(); i++ {
		line := buf.At(i)
		marker, ok := rst.ParseMarker(line.Text)
		if !ok {
			continue
		}
		if scope, indexed := indexedDirectives[marker.Name]; indexed && marker.Arg != "" {
			name := classArgRe.ReplaceAllString(marker.Arg, "")
			qualified := qualifySymbol(dc, scope, name)
			if _, dup := seen[qualified]; !dup {
				seen[qualified] = struct{}{}
				symbols = append(symbols, Symbol{Name: qualified, Line: line.Pos})
			}
		}
		dc.observe(marker)
	}
	return symbols
}
