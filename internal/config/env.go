package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables recognized by mementor.
const (
	EnvConfig      = "MEMENTOR_CONFIG"
	EnvActiveDoc   = "MEMENTOR_ACTIVE_DOC"
	EnvArchiveDir  = "MEMENTOR_ARCHIVE_DIR"
	EnvSnapshotExt = "MEMENTOR_SNAPSHOT_EXT"
)

// EnvFileName is the optional dotenv file read from the repository root.
const EnvFileName = ".env"

// envOverrideKeys are the variables applied by ApplyEnv.
var envOverrideKeys = []string{EnvActiveDoc, EnvArchiveDir, EnvSnapshotExt}

// EnvOverrides collects MEMENTOR_* overrides for root.
// Values come from root/.env (if present) and the process environment, with
// the process environment taking precedence. The .env file is never exported
// into the process.
func EnvOverrides(root string) (map[string]string, error) {
	overrides := make(map[string]string)

	if root != "" {
		path := filepath.Join(root, EnvFileName)
		fileEnv, err := godotenv.Read(path)
		switch {
		case err == nil:
			for _, key := range envOverrideKeys {
				if v := fileEnv[key]; v != "" {
					overrides[key] = v
				}
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	for _, key := range envOverrideKeys {
		if v := os.Getenv(key); v != "" {
			overrides[key] = v
		}
	}

	return overrides, nil
}

// ApplyEnv returns a copy of cfg with env overrides applied and validated.
func ApplyEnv(cfg *Config, env map[string]string) (*Config, error) {
	if len(env) == 0 {
		return cfg, nil
	}

	merged := *cfg
	merged.overlay(&LocalConfig{
		ActiveDoc:   env[EnvActiveDoc],
		ArchiveDir:  env[EnvArchiveDir],
		SnapshotExt: env[EnvSnapshotExt],
	})

	if err := validateExt(merged.SnapshotExt); err != nil {
		return nil, fmt.Errorf("%s: %w", EnvSnapshotExt, err)
	}
	return &merged, nil
}
