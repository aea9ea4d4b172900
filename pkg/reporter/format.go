package reporter

// Format identifies an output format.
type Format string

// Supported output formats.
const (
	// FormatText writes expanded documents and styled diagnostics.
	FormatText Format = "text"

	// FormatJSON writes a machine-readable report.
	FormatJSON Format = "json"
)

// IsValid reports whether the format is supported.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatJSON:
		return true
	default:
		return false
	}
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}
