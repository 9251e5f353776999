package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPostgresStore runs the store against an embedded PostgreSQL server. The
// server binaries are downloaded on first use, so it only runs when
// MEDIDEPOT_TEST_POSTGRES is set.
func TestPostgresStore(t *testing.T) {
	if os.Getenv("MEDIDEPOT_TEST_POSTGRES") == "" {
		t.Skip("set MEDIDEPOT_TEST_POSTGRES=1 to run against embedded postgres")
	}

	const port = 54329
	dir := t.TempDir()
	pg := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		Port(port).
		Database("medidepot_test").
		DataPath(filepath.Join(dir, "data")).
		RuntimePath(filepath.Join(dir, "runtime")))
	require.NoError(t, pg.Start())
	t.Cleanup(func() { _ = pg.Stop() })

	db, err := sql.Open("postgres", fmt.Sprintf("host=localhost port=%d user=postgres password=postgres dbname=medidepot_test sslmode=disable", port))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	store := NewStore(db, DialectPostgres, nil)

	created, err := store.Initialize(ctx, DefaultSeed())
	require.NoError(t, err)
	assert.True(t, created)
	created, err = store.Initialize(ctx, DefaultSeed())
	require.NoError(t, err)
	assert.False(t, created)

	id, err := store.InsertItem(ctx, gloves())
	require.NoError(t, err)
	assert.EqualValues(t, len(DefaultSeed())+1, id)

	stock := 7
	n, err := store.UpdateItem(ctx, id, ItemChangeSet{CurrentStock: &stock})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	item, ok, err := store.GetItem(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 7, item.CurrentStock)
	assert.Equal(t, "Gloves", item.Name)

	n, err = store.DeleteItem(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	items, err := store.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, len(DefaultSeed()))
}
