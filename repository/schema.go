package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Dialect selects the SQL flavour of the backing database.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const itemsTable = "items"

// itemColumns is the select order used for every read of the items table.
var itemColumns = []string{
	"id",
	"name",
	"current_stock",
	"min_stock",
	"unit",
	"location",
	"date",
	"owner_code",
}

// ParseDialect maps a configured driver name onto a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch Dialect(name) {
	case DialectSQLite, DialectPostgres:
		return Dialect(name), nil
	}
	return "", fmt.Errorf("unsupported database driver %q", name)
}

func (d Dialect) placeholders() squirrel.PlaceholderFormat {
	if d == DialectPostgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}

func (d Dialect) createTableSQL() string {
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if d == DialectPostgres {
		idColumn = "id BIGSERIAL PRIMARY KEY"
	}
	return "CREATE TABLE " + itemsTable + " (" +
		idColumn + ", " +
		"name TEXT, " +
		"current_stock INTEGER, " +
		"min_stock INTEGER, " +
		"unit TEXT, " +
		"location TEXT, " +
		"date TEXT, " +
		"owner_code TEXT)"
}

func (d Dialect) tableExistsQuery(sb squirrel.StatementBuilderType) squirrel.SelectBuilder {
	if d == DialectPostgres {
		return sb.Select("COUNT(*)").
			From("information_schema.tables").
			Where("table_schema = current_schema()").
			Where(squirrel.Eq{"table_name": itemsTable})
	}
	return sb.Select("COUNT(*)").
		From("sqlite_master").
		Where(squirrel.Eq{"type": "table", "name": itemsTable})
}

func tableExists(ctx context.Context, runner squirrel.BaseRunner, sb squirrel.StatementBuilderType, d Dialect) (bool, error) {
	var count int
	err := d.tableExistsQuery(sb).
		RunWith(runner).
		QueryRowContext(ctx).
		Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking for %s table: %w", itemsTable, err)
	}
	return count > 0, nil
}
