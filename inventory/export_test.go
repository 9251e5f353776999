package inventory

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medidepot/medidepot/domain"
	"github.com/medidepot/medidepot/repository"
)

func TestExportCSVRoundTrip(t *testing.T) {
	items := repository.PracticeCatalogue()
	for i := range items {
		items[i].ID = int64(i + 1)
	}
	items[0].Name = "Tupfer; steril"
	items[1].Location = `Schrank "A"`

	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, ExportCSV(items, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := ReadCSV(f)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestExportCSVLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, ExportCSV([]domain.Item{{
		ID: 3, Name: "Gloves", CurrentStock: 60, MinStock: 5, Unit: "box", Location: "Lab", AddedDate: "28.05.2025", OwnerCode: "MS",
	}}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ID;Name;Stock;MinStock;Unit;Location;Date;OwnerCode\n3;Gloves;60;5;box;Lab;28.05.2025;MS\n", string(data))
}

func TestExportCSVEmptyInventoryWritesHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, ExportCSV(nil, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(ExportHeader, ";")+"\n", string(data))
}

func TestExportCSVMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "export.csv")

	err := ExportCSV([]domain.Item{{ID: 1, Name: "Gloves"}}, path)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, path, ioErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExportCSVLeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ExportCSV([]domain.Item{{ID: 1, Name: "Gloves"}}, filepath.Join(dir, "export.csv")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "export.csv", entries[0].Name())
}

func TestControllerExport(t *testing.T) {
	ctx := context.Background()
	c, _ := newController(t, repository.DefaultSeed())
	dir := t.TempDir()

	assert.Equal(t, "MediDEPOT_Inventur_20250623_1430.csv", c.ExportFileName())

	path, err := c.Export(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "MediDEPOT_Inventur_20250623_1430.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got, err := ReadCSV(bytes.NewReader(data))
	require.NoError(t, err)

	items, err := c.ListItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestReadCSVRejectsForeignHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Id;Name;Stock;MinStock;Unit;Location;Date;OwnerCode\n"))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("ID;Name\n"))
	assert.Error(t, err)
}
