// Package resolve maps dotted object names to documented code objects.
// The expansion engine depends only on the Resolver interface; concrete
// implementations decide what "importable namespace" means (a precomputed
// documentation index, live Go packages, or a composition of both).
package resolve

import "context"

// Kind classifies a resolved object.
type Kind string

const (
	KindModule   Kind = "module"
	KindClass    Kind = "class"
	KindFunction Kind = "function"
)

// IsValid reports whether the kind is one of the known values.
func (k Kind) IsValid() bool {
	switch k {
	case KindModule, KindClass, KindFunction:
		return true
	default:
		return false
	}
}

// Member is one public attribute of a module or class, in definition order.
type Member struct {
	// Name is the bare member name, without the parent prefix.
	Name string

	// Kind classifies the member.
	Kind Kind

	// Doc is the member's documentation string, possibly empty.
	Doc string

	// Signature is the member's call signature, empty for modules.
	Signature string
}

// Object is a handle to a resolved code entity.
type Object struct {
	// Name is the fully qualified dotted name the object resolved to.
	Name string

	// Kind classifies the object.
	Kind Kind

	// Doc is the object's documentation string, possibly empty.
	Doc string

	// Signature is the call signature for functions and classes.
	Signature string

	// Members lists public attributes of modules and classes, in the
	// order they are defined, deduplicated across inheritance.
	Members []Member
}

// Summary returns the one-line summary of the object's documentation,
// truncated at the first newline. The configurable truncation policy for
// autosummary lives in the renderer; this is the plain short form.
func (o *Object) Summary() string {
	return FirstLine(o.Doc)
}

// Resolver resolves a dotted name to an Object. Implementations return a
// *ResolutionError when the name cannot be resolved, and must be safe for
// sequential reuse across documents; per-parse caching is layered on with
// Cached.
type Resolver interface {
	Resolve(ctx context.Context, dotted string) (*Object, error)
}

// FirstLine returns text up to (not including) the first newline.
func FirstLine(text string) string {
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			return text[:i]
		}
	}
	return text
}
