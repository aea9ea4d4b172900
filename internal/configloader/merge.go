package configloader

import "github.com/yaklabco/rstexpand/pkg/config"

// merge combines two configurations, with override taking precedence over
// base. Scalars override when non-zero; slices replace entirely when
// non-nil; unset values in override leave base values intact.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Policy != "" {
		result.Policy = override.Policy
	}
	if override.Truncation != "" {
		result.Truncation = override.Truncation
	}
	if override.Resolver != "" {
		result.Resolver = override.Resolver
	}
	if override.DocIndex != "" {
		result.DocIndex = override.DocIndex
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.OutPath != "" {
		result.OutPath = override.OutPath
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Booleans: false is the zero value, so a CLI flag can set but a
	// config file cannot unset.
	if override.ShowIndex {
		result.ShowIndex = true
	}
	if override.Numbered {
		result.Numbered = true
	}
	if override.Write {
		result.Write = true
	}

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}
