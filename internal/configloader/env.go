package configloader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/yaklabco/rstexpand/pkg/config"
)

// envVarPrefix is the prefix for all rstexpand environment variables.
const envVarPrefix = "RSTEXPAND_"

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with RSTEXPAND_ (e.g., RSTEXPAND_POLICY).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	if v := os.Getenv(envVarPrefix + "POLICY"); v != "" {
		cfg.Policy = v
	}
	if v := os.Getenv(envVarPrefix + "TRUNCATION"); v != "" {
		cfg.Truncation = v
	}
	if v := os.Getenv(envVarPrefix + "RESOLVER"); v != "" {
		cfg.Resolver = config.ResolverMode(v)
	}
	if v := os.Getenv(envVarPrefix + "DOC_INDEX"); v != "" {
		cfg.DocIndex = v
	}
	if v := os.Getenv(envVarPrefix + "MAX_DEPTH"); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer for %sMAX_DEPTH: %q", envVarPrefix, v)
		}
		cfg.MaxDepth = depth
	}
	if v := os.Getenv(envVarPrefix + "JOBS"); v != "" {
		jobs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer for %sJOBS: %q", envVarPrefix, v)
		}
		cfg.Jobs = jobs
	}
	return nil
}
