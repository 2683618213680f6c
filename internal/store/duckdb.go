package store

import (
	"context"
	"database/sql"
	"encoding/json"
	stdErrors "errors"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-strategy-lab/internal/logger"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
	"go.uber.org/zap"
)

const strategiesTable = "strategies"

var strategyColumns = []string{"id", "name", "schema_version", "config", "created_at", "updated_at"}

// DuckDBStore keeps strategies in a DuckDB table with the config as JSON text.
type DuckDBStore struct {
	db     *sql.DB
	sq     squirrel.StatementBuilderType
	logger *logger.Logger
	now    func() time.Time
}

// NewDuckDBStore opens the database at path and creates the table. An empty
// path opens an in-memory database.
func NewDuckDBStore(path string, log *logger.Logger) (*DuckDBStore, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreFailed, "failed to open duckdb", err)
	}

	// A second connection to :memory: would see a different database.
	db.SetMaxOpenConns(1)

	store := &DuckDBStore{
		db:     db,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		logger: log,
		now:    time.Now,
	}

	if err := store.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return store, nil
}

func (d *DuckDBStore) initialize() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS strategies (
			id TEXT PRIMARY KEY,
			name TEXT,
			schema_version TEXT,
			config TEXT,
			created_at TIMESTAMP,
			updated_at TIMESTAMP
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreFailed, "failed to create strategies table", err)
	}

	return nil
}

func (d *DuckDBStore) Save(ctx context.Context, id string, config types.StrategyConfig) (StoredStrategy, error) {
	var existing *StoredStrategy

	if id != "" {
		s, err := d.get(ctx, id)
		if err == nil {
			existing = &s
		} else if !errors.HasCode(err, errors.ErrCodeStrategyNotFound) {
			return StoredStrategy{}, err
		}
	}

	s, err := record(id, config, existing, d.now())
	if err != nil {
		return StoredStrategy{}, err
	}

	data, err := json.Marshal(s.Config)
	if err != nil {
		return StoredStrategy{}, errors.Wrap(errors.ErrCodeStoreFailed, "failed to encode strategy config", err)
	}

	query := d.sq.
		Insert(strategiesTable).
		Columns(strategyColumns...).
		Values(s.ID, s.Config.Name, s.SchemaVersion, string(data), s.CreatedAt, s.UpdatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			schema_version = excluded.schema_version,
			config = excluded.config,
			updated_at = excluded.updated_at`).
		RunWith(d.db)

	if _, err := query.ExecContext(ctx); err != nil {
		return StoredStrategy{}, errors.Wrap(errors.ErrCodeStoreFailed, "failed to save strategy", err)
	}

	d.logger.Debug("Strategy saved", zap.String("id", s.ID), zap.String("name", s.Config.Name))

	return s, nil
}

func (d *DuckDBStore) Get(ctx context.Context, id string) (StoredStrategy, error) {
	s, err := d.get(ctx, id)
	if err != nil {
		return StoredStrategy{}, err
	}

	if err := checkVersion(s); err != nil {
		return StoredStrategy{}, err
	}

	return s, nil
}

func (d *DuckDBStore) get(ctx context.Context, id string) (StoredStrategy, error) {
	row := d.sq.
		Select(strategyColumns...).
		From(strategiesTable).
		Where(squirrel.Eq{"id": id}).
		RunWith(d.db).
		QueryRowContext(ctx)

	s, err := scanStrategy(row)
	if stdErrors.Is(err, sql.ErrNoRows) {
		return StoredStrategy{}, notFound(id)
	}

	if err != nil {
		return StoredStrategy{}, errors.Wrap(errors.ErrCodeStoreFailed, "failed to load strategy", err)
	}

	return s, nil
}

func (d *DuckDBStore) List(ctx context.Context) ([]StoredStrategy, error) {
	rows, err := d.sq.
		Select(strategyColumns...).
		From(strategiesTable).
		OrderBy("created_at ASC", "id ASC").
		RunWith(d.db).
		QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreFailed, "failed to list strategies", err)
	}
	defer rows.Close()

	out := []StoredStrategy{}

	for rows.Next() {
		s, err := scanStrategy(rows)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStoreFailed, "failed to read strategy", err)
		}

		if err := checkVersion(s); err != nil {
			d.logger.Warn("Skipping incompatible strategy", zap.String("id", s.ID), zap.Error(err))

			continue
		}

		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreFailed, "failed to list strategies", err)
	}

	return out, nil
}

func (d *DuckDBStore) Delete(ctx context.Context, id string) error {
	result, err := d.sq.
		Delete(strategiesTable).
		Where(squirrel.Eq{"id": id}).
		RunWith(d.db).
		ExecContext(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreFailed, "failed to delete strategy", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreFailed, "failed to delete strategy", err)
	}

	if affected == 0 {
		return notFound(id)
	}

	return nil
}

func (d *DuckDBStore) Close() error {
	return d.db.Close()
}

func scanStrategy(row squirrel.RowScanner) (StoredStrategy, error) {
	var (
		s    StoredStrategy
		name string
		data string
	)

	if err := row.Scan(&s.ID, &name, &s.SchemaVersion, &data, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return StoredStrategy{}, err
	}

	if err := json.Unmarshal([]byte(data), &s.Config); err != nil {
		return StoredStrategy{}, err
	}

	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}
