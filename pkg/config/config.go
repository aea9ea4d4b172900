// Package config defines core configuration types for rstexpand.
// These are pure data structures; loading and merging live in
// internal/configloader.
package config

// OutputFormat specifies the diagnostic output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, "":
		return true
	default:
		return false
	}
}

// ResolverMode selects which importable-namespace implementation backs
// object resolution.
type ResolverMode string

const (
	// ResolverAuto chains the doc index (when configured) in front of the
	// live Go package namespace.
	ResolverAuto ResolverMode = "auto"

	// ResolverIndex resolves only against a precomputed doc index file.
	ResolverIndex ResolverMode = "index"

	// ResolverGo resolves only against live Go packages.
	ResolverGo ResolverMode = "go"
)

// IsValid returns true if the resolver mode is known.
func (m ResolverMode) IsValid() bool {
	switch m {
	case ResolverAuto, ResolverIndex, ResolverGo, "":
		return true
	default:
		return false
	}
}

// Config is the root configuration for rstexpand.
type Config struct {
	// Policy is the failure policy: "lenient" (default) or "strict".
	Policy string `yaml:"policy"`

	// MaxDepth bounds expansion recursion beyond the initial directive.
	// Zero means the engine default.
	MaxDepth int `yaml:"max_depth"`

	// Truncation is the one-line summary truncation policy:
	// "nearest" (default), "blank-line", or "newline".
	Truncation string `yaml:"truncation"`

	// Resolver selects the namespace implementation.
	Resolver ResolverMode `yaml:"resolver"`

	// DocIndex is the path to a precomputed documentation index file.
	DocIndex string `yaml:"doc_index"`

	// Extensions lists the file extensions treated as reStructuredText
	// during discovery (lowercase, with leading dot).
	Extensions []string `yaml:"extensions"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	// CLI-level options, never persisted to config files.

	// Format specifies the diagnostic output format.
	Format OutputFormat `yaml:"-"`

	// Jobs is the number of parallel workers; zero means auto.
	Jobs int `yaml:"-"`

	// ShowIndex prints the symbol index before the expanded lines.
	ShowIndex bool `yaml:"-"`

	// Numbered prefixes each output line with its position.
	Numbered bool `yaml:"-"`

	// Write rewrites input files in place with their expansion.
	Write bool `yaml:"-"`

	// OutPath redirects expanded output to a file ("-" means stdout).
	OutPath string `yaml:"-"`
}

// Strict reports whether the strict failure policy is in effect.
func (c *Config) Strict() bool {
	return c.Policy == "strict"
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Policy:     "lenient",
		Truncation: "nearest",
		Resolver:   ResolverAuto,
		Extensions: []string{".rst", ".rest", ".txt"},
		Format:     FormatText,
	}
}
