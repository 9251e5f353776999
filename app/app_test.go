package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) (configPath, dbPath, exportDir string) {
	t.Helper()
	dir := t.TempDir()
	dbPath = filepath.Join(dir, "praxislager.db")
	exportDir = filepath.Join(dir, "exports")
	require.NoError(t, os.Mkdir(exportDir, 0o755))

	configPath = filepath.Join(dir, "medidepot.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(fmt.Sprintf(`
database:
  driver: sqlite
  path: %q
export:
  dir: %q
log:
  level: none
`, dbPath, exportDir)), 0o600))
	return configPath, dbPath, exportDir
}

func TestRunVersion(t *testing.T) {
	var stdout bytes.Buffer

	err := Run(context.Background(), []string{"-version"}, strings.NewReader(""), &stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, "medidepot version dev\n", stdout.String())
}

func TestRunHelp(t *testing.T) {
	var stderr bytes.Buffer

	err := Run(context.Background(), []string{"-h"}, strings.NewReader(""), &bytes.Buffer{}, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "-config")
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	err := Run(context.Background(), []string{"-port", "80"}, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRunSeedsOnceAndPersists(t *testing.T) {
	configPath, dbPath, exportDir := writeConfig(t)
	args := []string{"-config", configPath}

	var first bytes.Buffer
	err := Run(context.Background(), args,
		strings.NewReader("demo\ndemo123\nconsume\nOptiskin\n2\nStück\nEG\n\nquit\n"), &first, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, first.String(), "Welcome to MediDepot!")
	assert.NotContains(t, first.String(), "Low stock:")
	assert.Contains(t, first.String(), "Booked usage of Optiskin, 0 Stück left.")
	assert.FileExists(t, dbPath)

	var second bytes.Buffer
	err = Run(context.Background(), args, strings.NewReader("demo\ndemo123\nexport\nquit\n"), &second, &bytes.Buffer{})
	require.NoError(t, err)
	assert.NotContains(t, second.String(), "Welcome to MediDepot!")
	assert.Contains(t, second.String(), "  Optiskin: 0 left (minimum 1)")

	exports, err := filepath.Glob(filepath.Join(exportDir, "MediDEPOT_Inventur_*.csv"))
	require.NoError(t, err)
	assert.Len(t, exports, 1)
}

func TestRunBadConfig(t *testing.T) {
	err := Run(context.Background(), []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")},
		strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "reading config")
}
