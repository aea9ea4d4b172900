package expand

import (
	"regexp"
	"strings"

	"github.com/yaklabco/rstexpand/pkg/rst"
)

// DefaultMaxDepth is how many recursion levels beyond the initial directive
// are expanded before truncation. The bound guarantees termination even if
// the cycle check is somehow bypassed.
const DefaultMaxDepth = 1

// expansionContext is the per-parse recursion state: the current depth and
// the set of dotted names on the active expansion path. It is passed
// explicitly through the call chain rather than relying on call-stack
// limits, and lives for exactly one engine run.
type expansionContext struct {
	depth    int
	maxDepth int
	active   map[string]struct{}
}

func newExpansionContext(maxDepth int) *expansionContext {
	if maxDepth < 0 {
		maxDepth = DefaultMaxDepth
	}
	return &expansionContext{maxDepth: maxDepth, active: make(map[string]struct{})}
}

// atLimit reports whether another recursion level would exceed the bound.
func (ec *expansionContext) atLimit() bool {
	return ec.depth > ec.maxDepth
}

// enter marks a dotted name as being expanded. It reports false when the
// name is already on the active path, i.e. a circular reference.
func (ec *expansionContext) enter(name string) bool {
	if _, busy := ec.active[name]; busy {
		return false
	}
	ec.active[name] = struct{}{}
	return true
}

// leave removes a name from the active path.
func (ec *expansionContext) leave(name string) {
	delete(ec.active, name)
}

var classArgRe = regexp.MustCompile(`\s*\(.*$`)

// docContext tracks the current module and class while scanning, so bare
// or partially qualified directive arguments can be resolved the way the
// surrounding document implies.
type docContext struct {
	module string
	class  string
}

// observe updates the context from a directive marker line.
func (dc *docContext) observe(marker rst.Marker) {
	switch marker.Name {
	case rst.DirectiveModule, rst.DirectiveCurrentmodule, rst.DirectiveAutomodule:
		dc.module = marker.Arg
		dc.class = ""
	case rst.DirectiveClass, rst.DirectiveAutoclass:
		dc.class = classArgRe.ReplaceAllString(marker.Arg, "")
	}
}

// candidates returns the qualified names to try for a directive argument,
// most specific first: module.class.name, module.name, class.name, name.
// Already seen combinations and empty qualifiers collapse away.
func (dc *docContext) candidates(name string) []string {
	var out []string
	seen := make(map[string]struct{}, 4)
	add := func(parts ...string) {
		var nonEmpty []string
		for _, p := range parts {
			if p != "" {
				nonEmpty = append(nonEmpty, p)
			}
		}
		candidate := strings.Join(nonEmpty, ".")
		if candidate == "" {
			return
		}
		if _, dup := seen[candidate]; dup {
			return
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}

	add(dc.module, dc.class, name)
	add(dc.module, name)
	add(dc.class, name)
	add(name)
	return out
}
