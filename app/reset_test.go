package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetReplacesInventoryWithCatalogue(t *testing.T) {
	configPath, dbPath, _ := writeConfig(t)
	ctx := context.Background()

	err := Run(ctx, []string{"-config", configPath},
		strings.NewReader("demo\ndemo123\nadd\nGloves\n60\nbox\nLab\nMS\n\nquit\n"), &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, Reset(ctx, []string{"-config", configPath}, &stdout, &bytes.Buffer{}))
	assert.Equal(t, "Database "+dbPath+" recreated with 21 items.\n", stdout.String())

	var session bytes.Buffer
	err = Run(ctx, []string{"-config", configPath}, strings.NewReader("demo\ndemo123\nquit\n"), &session, &bytes.Buffer{})
	require.NoError(t, err)
	assert.NotContains(t, session.String(), "Gloves")
	assert.NotContains(t, session.String(), "Welcome to MediDepot!")
	assert.Contains(t, session.String(), "Xyclocain Pump")
}

func TestResetWithoutExistingDatabase(t *testing.T) {
	configPath, dbPath, _ := writeConfig(t)

	var stdout bytes.Buffer
	require.NoError(t, Reset(context.Background(), []string{"-config", configPath}, &stdout, &bytes.Buffer{}))
	assert.Contains(t, stdout.String(), dbPath)
	assert.FileExists(t, dbPath)
}
