// Package config resolves the file paths and endpoints the tracker needs.
//
// Resolution order: built-in defaults, then an optional YAML config file,
// then ADURO_* environment variables. Paths are explicit configuration
// passed into constructors, never process-wide constants.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds every externally configured location.
type Config struct {
	// StorePath is the SQLite event log.
	StorePath string `yaml:"store_path" env:"ADURO_STORE_PATH"`

	// CatalogPath is the YAML book catalog.
	CatalogPath string `yaml:"catalog_path" env:"ADURO_CATALOG_PATH"`

	// CredentialsPath is the JSON credential file for the snapshot
	// endpoint.
	CredentialsPath string `yaml:"credentials_path" env:"ADURO_CREDENTIALS_PATH"`

	// SnapshotURL is the HTTP endpoint serving snapshot exports. When
	// SnapshotFile is set it takes precedence and no network is used.
	SnapshotURL string `yaml:"snapshot_url" env:"ADURO_SNAPSHOT_URL"`

	// SnapshotFile is an on-disk snapshot export to sync from.
	SnapshotFile string `yaml:"snapshot_file" env:"ADURO_SNAPSHOT_FILE"`
}

// Default returns the configuration used when no file or environment
// overrides are present. Everything lives under ~/.aduro.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".aduro")
	return Config{
		StorePath:       filepath.Join(base, "store.db"),
		CatalogPath:     filepath.Join(base, "catalog.yaml"),
		CredentialsPath: filepath.Join(base, "credentials.json"),
	}
}

// Load resolves the effective configuration. path may be empty, in which
// case only defaults and environment variables apply; a non-empty path
// must exist and parse.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("apply environment overrides: %w", err)
	}

	return cfg, nil
}
