package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths represents discovered configuration file paths.
// Missing files are represented as empty strings, not errors.
type ConfigPaths struct {
	// System is the system-wide config path (e.g., /etc/rstexpand/config.yaml).
	System string

	// User is the user-level config path (e.g., ~/.config/rstexpand/config.yaml).
	User string

	// Project is the project-level config path (e.g., ./.rstexpand.yml).
	Project string

	// Explicit is a config path provided via --config flag.
	Explicit string
}

// projectConfigFiles are the config file names we search for, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".rstexpand.yml",
	".rstexpand.yaml",
	"rstexpand.yml",
	"rstexpand.yaml",
}

// vcsRootMarkers are directories that indicate a VCS root; the upward
// project search stops one level above them.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds configuration files in standard locations: the system
// config, the XDG user config, and a project config found by searching
// upward from workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	paths := &ConfigPaths{
		System: findFirst(systemConfigDir(), "config.yaml", "config.yml"),
		User:   findFirst(userConfigDir(), "config.yaml", "config.yml"),
	}

	dir := workDir
	for {
		if found := findFirst(dir, projectConfigFiles...); found != "" {
			paths.Project = found
			break
		}
		if isVCSRoot(dir) {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return paths, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("PROGRAMDATA"), "rstexpand")
	}
	return "/etc/rstexpand"
}

func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rstexpand")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "rstexpand")
}

// findFirst returns the first existing regular file among names in dir.
func findFirst(dir string, names ...string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}
