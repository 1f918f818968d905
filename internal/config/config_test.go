package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_PathsUnderHome(t *testing.T) {
	cfg := Default()
	assert.Contains(t, cfg.StorePath, ".aduro")
	assert.Contains(t, cfg.CatalogPath, ".aduro")
	assert.Contains(t, cfg.CredentialsPath, ".aduro")
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store_path: /data/aduro.db
snapshot_file: /data/snapshot.json
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/aduro.db", cfg.StorePath)
	assert.Equal(t, "/data/snapshot.json", cfg.SnapshotFile)
	// Unset keys keep defaults.
	assert.Contains(t, cfg.CatalogPath, ".aduro")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store_path: /from/file.db\n"), 0o600))

	t.Setenv("ADURO_STORE_PATH", "/from/env.db")
	t.Setenv("ADURO_SNAPSHOT_URL", "https://example.com/snapshot")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.StorePath)
	assert.Equal(t, "https://example.com/snapshot", cfg.SnapshotURL)
}

func TestLoad_EmptyPathSkipsFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.StorePath)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store_path: [oops"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
