package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "praxislager.db", cfg.Database.Path)
	assert.False(t, cfg.Database.Packaged)
	assert.Equal(t, Postgres{Port: 5433, Username: "postgres", Password: "postgres", Database: "medidepot"}, cfg.Database.Postgres)
	assert.Equal(t, Auth{Username: "demo", Password: "demo123"}, cfg.Auth)
	assert.Equal(t, Log{Level: "info", Format: "logfmt"}, cfg.Log)
	assert.Equal(t, home, cfg.Export.Dir)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medidepot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  driver: postgres
  postgres:
    port: 6543
auth:
  username: praxis
  password: geheim
export:
  dir: /srv/exports
log:
  level: debug
  format: json
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "praxislager.db", cfg.Database.Path)
	assert.EqualValues(t, 6543, cfg.Database.Postgres.Port)
	assert.Equal(t, "medidepot", cfg.Database.Postgres.Database)
	assert.Equal(t, Auth{Username: "praxis", Password: "geheim"}, cfg.Auth)
	assert.Equal(t, "/srv/exports", cfg.Export.Dir)
	assert.Equal(t, Log{Level: "debug", Format: "json"}, cfg.Log)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medidepot.toml")
	require.NoError(t, os.WriteFile(path, []byte("[database]\npackaged = true\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Database.Packaged)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	dir := t.TempDir()

	driver := filepath.Join(dir, "driver.yaml")
	require.NoError(t, os.WriteFile(driver, []byte("database:\n  driver: mysql\n"), 0o600))
	_, err := Load(driver)
	assert.ErrorContains(t, err, "database.driver")

	creds := filepath.Join(dir, "creds.yaml")
	require.NoError(t, os.WriteFile(creds, []byte("auth:\n  password: \"\"\n"), 0o600))
	_, err = Load(creds)
	assert.ErrorContains(t, err, "auth")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefaultExportDirPrefersDesktop(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.Mkdir(filepath.Join(home, "Desktop"), 0o755))

	assert.Equal(t, filepath.Join(home, "Desktop"), DefaultExportDir())
}
