// Package configloader provides configuration loading and resolution:
// XDG-compliant discovery, hierarchical merging, environment variable
// overrides, and validation.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/rstexpand/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to the current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (RSTEXPAND_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.rstexpand.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/rstexpand/config.yaml)
//  6. System config (/etc/rstexpand/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, err
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.Default()

	// Lowest-precedence file first, so later merges win.
	var files []string
	if !opts.IgnoreSystemConfig && paths.System != "" {
		files = append(files, paths.System)
	}
	if !opts.IgnoreUserConfig && paths.User != "" {
		files = append(files, paths.User)
	}
	if paths.Explicit != "" {
		files = append(files, paths.Explicit)
	} else if paths.Project != "" {
		files = append(files, paths.Project)
	}

	for _, path := range files {
		loaded, err := loadFile(path)
		if err != nil {
			// An explicit --config must exist and parse; the discovered
			// layers degrade to a warning.
			if path == paths.Explicit {
				return nil, err
			}
			result.Warnings = append(result.Warnings, err.Error())
			continue
		}
		cfg = merge(cfg, loaded)
		result.LoadedFrom = append(result.LoadedFrom, path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, err
		}
	}

	cfg = merge(cfg, opts.CLIConfig)

	if errs := Validate(cfg); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i := range errs {
			joined[i] = &errs[i]
		}
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(joined...))
	}

	result.Config = cfg
	return result, nil
}

// loadFile reads and parses one YAML config file.
func loadFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := config.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
