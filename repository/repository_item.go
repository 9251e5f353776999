package repository

//go:generate go run ../cmd/changesetgen github.com/medidepot/medidepot/domain.Item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/medidepot/medidepot/domain"
)

// ErrEmptyChangeSet is returned by UpdateItem when no field is set.
var ErrEmptyChangeSet = errors.New("change set has no fields")

// Store is durable CRUD against the items table.
type Store struct {
	db      *sql.DB
	dialect Dialect
	sb      squirrel.StatementBuilderType
	logger  log.Logger
}

func NewStore(db *sql.DB, dialect Dialect, logger log.Logger) *Store {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Store{
		db:      db,
		dialect: dialect,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(dialect.placeholders()),
		logger:  log.With(logger, "component", "store", "dialect", string(dialect)),
	}
}

// Initialize creates the items table when it is absent and fills it with seed.
// It reports created=false without touching any data if the table already exists.
func (s *Store) Initialize(ctx context.Context, seed []domain.Item) (created bool, err error) {
	exists, err := tableExists(ctx, s.db, s.sb, s.dialect)
	if err != nil {
		return false, err
	}
	if exists {
		level.Info(s.logger).Log("msg", "already initialized", "table", itemsTable)
		return false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning initialize transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, s.dialect.createTableSQL()); err != nil {
		return false, fmt.Errorf("creating %s table: %w", itemsTable, err)
	}
	for _, item := range seed {
		if _, err = insertItem(ctx, tx, s.sb, s.dialect, item); err != nil {
			return false, fmt.Errorf("seeding %q: %w", item.Name, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("committing initialize transaction: %w", err)
	}

	level.Info(s.logger).Log("msg", "created table", "table", itemsTable, "seeded", len(seed))
	return true, nil
}

// ListItems returns every row ordered by id. An empty table yields an empty slice.
func (s *Store) ListItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := s.sb.Select(itemColumns...).
		From(itemsTable).
		OrderBy("id ASC").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

// GetItem reads a single row. The boolean is false when no row has the id.
func (s *Store) GetItem(ctx context.Context, id int64) (domain.Item, bool, error) {
	row := s.sb.Select(itemColumns...).
		From(itemsTable).
		Where(squirrel.Eq{"id": id}).
		RunWith(s.db).
		QueryRowContext(ctx)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Item{}, false, nil
	}
	if err != nil {
		return domain.Item{}, false, err
	}
	return item, true, nil
}

// InsertItem appends one row and returns the id assigned by the database.
func (s *Store) InsertItem(ctx context.Context, item domain.Item) (int64, error) {
	return insertItem(ctx, s.db, s.sb, s.dialect, item)
}

// UpdateItem overwrites the fields set in changeSet for the row matching id.
// A missing id is not an error: it is reported as zero rows affected.
func (s *Store) UpdateItem(ctx context.Context, id int64, changeSet ItemChangeSet) (int64, error) {
	values := changeSet.toMap()
	if len(values) == 0 {
		return 0, ErrEmptyChangeSet
	}
	res, err := s.sb.
		Update(itemsTable).
		Where(squirrel.Eq{"id": id}).
		SetMap(values).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("executing update: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting affected rows: %w", err)
	}
	return rowsAffected, nil
}

// DeleteItem removes the row matching id and reports how many rows went away.
func (s *Store) DeleteItem(ctx context.Context, id int64) (int64, error) {
	res, err := s.sb.
		Delete(itemsTable).
		Where(squirrel.Eq{"id": id}).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("executing delete: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting affected rows: %w", err)
	}
	return rowsAffected, nil
}

// DropTable removes the items table and all of its rows, if it exists.
func (s *Store) DropTable(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+itemsTable); err != nil {
		return fmt.Errorf("dropping %s table: %w", itemsTable, err)
	}
	level.Warn(s.logger).Log("msg", "dropped table", "table", itemsTable)
	return nil
}

func insertItem(ctx context.Context, runner squirrel.BaseRunner, sb squirrel.StatementBuilderType, d Dialect, item domain.Item) (int64, error) {
	insert := sb.Insert(itemsTable).
		SetMap(map[string]interface{}{
			"name":          item.Name,
			"current_stock": item.CurrentStock,
			"min_stock":     item.MinStock,
			"unit":          item.Unit,
			"location":      item.Location,
			"date":          item.AddedDate,
			"owner_code":    item.OwnerCode,
		}).
		RunWith(runner)

	if d == DialectPostgres {
		var id int64
		if err := insert.Suffix("RETURNING id").QueryRowContext(ctx).Scan(&id); err != nil {
			return 0, fmt.Errorf("executing insert: %w", err)
		}
		return id, nil
	}

	res, err := insert.ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("executing insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting inserted id: %w", err)
	}
	return id, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (domain.Item, error) {
	var item domain.Item
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.CurrentStock,
		&item.MinStock,
		&item.Unit,
		&item.Location,
		&item.AddedDate,
		&item.OwnerCode,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Item{}, err
	}
	if err != nil {
		return domain.Item{}, fmt.Errorf("scanning item: %w", err)
	}
	return item, nil
}
