package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/rstexpand/pkg/config"
	"github.com/yaklabco/rstexpand/pkg/expand"
	"github.com/yaklabco/rstexpand/pkg/render"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "truncation").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the merged configuration for invalid values.
// It returns every problem found, not just the first.
func Validate(cfg *config.Config) []ValidationError {
	if cfg == nil {
		return nil
	}
	var errs []ValidationError

	if !expand.Policy(cfg.Policy).IsValid() {
		errs = append(errs, ValidationError{
			Field: "policy", Value: cfg.Policy,
			Message: fmt.Sprintf("unknown policy %q (expected lenient or strict)", cfg.Policy),
		})
	}
	if !render.TruncationPolicy(cfg.Truncation).IsValid() {
		errs = append(errs, ValidationError{
			Field: "truncation", Value: cfg.Truncation,
			Message: fmt.Sprintf("unknown truncation %q (expected nearest, blank-line, or newline)", cfg.Truncation),
		})
	}
	if !cfg.Resolver.IsValid() {
		errs = append(errs, ValidationError{
			Field: "resolver", Value: cfg.Resolver,
			Message: fmt.Sprintf("unknown resolver %q (expected auto, index, or go)", cfg.Resolver),
		})
	}
	if !cfg.Format.IsValid() {
		errs = append(errs, ValidationError{
			Field: "format", Value: cfg.Format,
			Message: fmt.Sprintf("unknown format %q (expected text or json)", cfg.Format),
		})
	}
	if cfg.MaxDepth < 0 {
		errs = append(errs, ValidationError{
			Field: "max_depth", Value: cfg.MaxDepth,
			Message: "must not be negative",
		})
	}
	if cfg.Resolver == config.ResolverIndex && cfg.DocIndex == "" {
		errs = append(errs, ValidationError{
			Field: "doc_index", Value: cfg.DocIndex,
			Message: `required when resolver is "index"`,
		})
	}
	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, ValidationError{
				Field: "extensions", Value: ext,
				Message: fmt.Sprintf("extension %q must start with a dot", ext),
			})
		}
	}
	return errs
}
