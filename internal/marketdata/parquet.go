package marketdata

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
)

// quoteLiteral escapes a string for use inside a single-quoted SQL literal.
// DuckDB does not accept placeholders for COPY targets or read_parquet paths.
func quoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// CandleWriter persists candles to a destination.
type CandleWriter interface {
	// Initialize sets up the writer, creating tables or files.
	Initialize() error
	// Write persists one candle of symbol at timeframe.
	Write(symbol string, timeframe types.Timeframe, candle types.Candle) error
	// Finalize commits pending writes and returns the output path.
	Finalize() (string, error)
	// Close releases any resources held by the writer.
	Close() error
}

// ParquetWriter stages candles in an in-memory DuckDB table and exports them
// to a Parquet file on Finalize.
type ParquetWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	outputPath string
}

var _ CandleWriter = (*ParquetWriter)(nil)

func NewParquetWriter(outputPath string) *ParquetWriter {
	return &ParquetWriter{outputPath: outputPath}
}

func (w *ParquetWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", "")
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to open DuckDB connection", err)
	}

	w.db.SetMaxOpenConns(1)

	_, err = w.db.Exec(`
		CREATE TABLE market_data (
			id TEXT,
			time TIMESTAMP,
			symbol TEXT,
			timeframe TEXT,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)
	`)
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to create table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to begin transaction", err)
	}

	w.stmt, err = w.tx.Prepare(`
		INSERT INTO market_data (id, time, symbol, timeframe, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		w.tx.Rollback()
		w.db.Close()

		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to prepare statement", err)
	}

	return nil
}

func (w *ParquetWriter) Write(symbol string, timeframe types.Timeframe, candle types.Candle) error {
	if w.stmt == nil {
		return errors.New(errors.ErrCodeMarketDataWriteFailed, "writer not initialized")
	}

	_, err := w.stmt.Exec(
		uuid.New().String(),
		candle.Time.UTC(),
		symbol,
		string(timeframe),
		candle.Open,
		candle.High,
		candle.Low,
		candle.Close,
		candle.Volume,
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to insert candle", err)
	}

	return nil
}

func (w *ParquetWriter) Finalize() (string, error) {
	if w.tx == nil {
		return "", errors.New(errors.ErrCodeMarketDataWriteFailed, "writer not initialized")
	}

	if err := w.stmt.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to close statement", err)
	}

	w.stmt = nil

	if err := w.tx.Commit(); err != nil {
		w.tx.Rollback()
		w.tx = nil

		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to commit transaction", err)
	}

	w.tx = nil

	query := fmt.Sprintf("COPY (SELECT * FROM market_data ORDER BY symbol, timeframe, time) TO %s (FORMAT PARQUET)", quoteLiteral(w.outputPath))
	if _, err := w.db.Exec(query); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to export to Parquet", err)
	}

	return w.outputPath, nil
}

// Close rolls back an unfinished write and closes the connection.
func (w *ParquetWriter) Close() error {
	if w.stmt != nil {
		w.stmt.Close()
		w.stmt = nil
	}

	if w.tx != nil {
		w.tx.Rollback()
		w.tx = nil
	}

	if w.db == nil {
		return nil
	}

	err := w.db.Close()
	w.db = nil

	return err
}

// WriteParquet exports one series to path.
func WriteParquet(path, symbol string, timeframe types.Timeframe, series types.CandleSeries) (err error) {
	writer := NewParquetWriter(path)
	if err := writer.Initialize(); err != nil {
		return err
	}

	defer func() {
		if closeErr := writer.Close(); err == nil && closeErr != nil {
			err = errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to close writer", closeErr)
		}
	}()

	for _, candle := range series {
		if err := writer.Write(symbol, timeframe, candle); err != nil {
			return err
		}
	}

	_, err = writer.Finalize()

	return err
}

// ParquetProvider serves candles from a Parquet file written by ParquetWriter.
type ParquetProvider struct {
	db *sql.DB
	sq squirrel.StatementBuilderType
}

// NewParquetProvider opens path as the market_data view.
func NewParquetProvider(path string) (*ParquetProvider, error) {
	if path == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "parquet provider requires a data path")
	}

	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeNoDataFound, err, "market data file %s is not readable", path)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to open DuckDB connection", err)
	}

	// Views live in the connection's in-memory database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(fmt.Sprintf("CREATE VIEW market_data AS SELECT * FROM read_parquet(%s)", quoteLiteral(path))); err != nil {
		db.Close()

		return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "failed to read %s", path)
	}

	return &ParquetProvider{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

func (p *ParquetProvider) Name() ProviderType {
	return ProviderParquet
}

func (p *ParquetProvider) Candles(ctx context.Context, symbol string, timeframe types.Timeframe, limit int) (types.CandleSeries, error) {
	rows, err := p.sq.
		Select("time", "open", "high", "low", "close", "volume").
		From("market_data").
		Where(squirrel.Eq{"symbol": symbol, "timeframe": string(timeframe)}).
		OrderBy("time DESC").
		Limit(uint64(limitOrDefault(limit))).
		RunWith(p.db).
		QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to query market data", err)
	}
	defer rows.Close()

	var series types.CandleSeries

	for rows.Next() {
		var candle types.Candle

		var timestamp time.Time

		if err := rows.Scan(&timestamp, &candle.Open, &candle.High, &candle.Low, &candle.Close, &candle.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to scan candle", err)
		}

		candle.Time = timestamp.UTC()
		series = append(series, candle)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to read market data", err)
	}

	if len(series) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no %s candles for %s", timeframe, symbol)
	}

	for i, j := 0, len(series)-1; i < j; i, j = i+1, j-1 {
		series[i], series[j] = series[j], series[i]
	}

	return series, nil
}

func (p *ParquetProvider) Close() error {
	return p.db.Close()
}
