package database

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dnldd/chartview/shared"
	rqlitehttp "github.com/rqlite/rqlite-go-http"
	"github.com/rs/zerolog"
)

const (
	// SQL statements.
	createCandleTableSQL = "CREATE TABLE IF NOT EXISTS candle (ticker TEXT, interval TEXT, date INTEGER, open REAL, low REAL, high REAL, close REAL, volume REAL, PRIMARY KEY (ticker, interval, date))"
	persistCandleSQL     = "INSERT OR REPLACE INTO candle(ticker, interval, date, open, low, high, close, volume) VALUES(?,?,?,?,?,?,?,?)"
	fetchCandlesSQL      = "SELECT date, open, low, high, close, volume FROM candle WHERE ticker = ? AND interval = ? ORDER BY date DESC LIMIT ?"
)

// CandleStorer defines the requirements for caching candlesticks.
type CandleStorer interface {
	// PersistCandles stores the provided candles to the cache.
	PersistCandles(ctx context.Context, candles []shared.Candlestick) error
	// FetchCandles fetches up to n of the most recent cached candles for the
	// provided ticker and interval, ordered oldest first.
	FetchCandles(ctx context.Context, ticker string, interval shared.Interval, n int) ([]shared.Candlestick, error)
}

// DatabaseConfig is the configuration for the database.
type DatabaseConfig struct {
	// Endpoint represents the database connection endpoint.
	Endpoint string
	// User is the database user.
	User string
	// Pass is the database user pass.
	Pass string
	// Logger is the database logger.
	Logger *zerolog.Logger
}

// Validate asserts the config sane inputs.
func (cfg *DatabaseConfig) Validate() error {
	var errs error

	if cfg.Endpoint == "" {
		errs = errors.Join(errs, fmt.Errorf("endpoint cannot be an empty string"))
	}
	if cfg.Logger == nil {
		errs = errors.Join(errs, fmt.Errorf("logger cannot be nil"))
	}

	return errs
}

// Database represents the database connection.
type Database struct {
	cfg    *DatabaseConfig
	client *rqlitehttp.Client
}

// Ensure the database implements the CandleStorer interface.
var _ CandleStorer = (*Database)(nil)

// NewDatabase initializes a new database connection.
func NewDatabase(ctx context.Context, cfg *DatabaseConfig) (*Database, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	httpc := &http.Client{Timeout: time.Second * 5}
	client, err := rqlitehttp.NewClient(cfg.Endpoint, httpc)
	if err != nil {
		return nil, fmt.Errorf("creating database client: %w", err)
	}

	client.SetBasicAuth(cfg.User, cfg.Pass)

	db := &Database{
		cfg:    cfg,
		client: client,
	}

	err = db.bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrapping database: %w", err)
	}

	return db, nil
}

// bootstrap initializes the database.
func (db *Database) bootstrap(ctx context.Context) error {
	_, err := db.client.Execute(ctx, rqlitehttp.SQLStatements{
		{SQL: createCandleTableSQL},
	}, &rqlitehttp.ExecuteOptions{
		Transaction: true,
		Timings:     true,
	})
	if err != nil {
		return err
	}

	return nil
}

// PersistCandles stores the provided candles to the cache.
func (db *Database) PersistCandles(ctx context.Context, candles []shared.Candlestick) error {
	if len(candles) == 0 {
		return nil
	}

	stmts := make(rqlitehttp.SQLStatements, len(candles))
	for idx := range candles {
		candle := candles[idx]
		stmts[idx] = &rqlitehttp.SQLStatement{
			SQL: persistCandleSQL,
			PositionalParams: []any{candle.Ticker, candle.Interval.String(), candle.Date.Unix(),
				candle.Open, candle.Low, candle.High, candle.Close, candle.Volume},
		}
	}

	resp, err := db.client.Execute(ctx, stmts, &rqlitehttp.ExecuteOptions{Transaction: true, Timings: true})
	if err != nil {
		return err
	}

	has, idx, errStr := resp.HasError()
	if has {
		db.cfg.Logger.Error().Msgf("unexpected candle state for cache write: %s", spew.Sdump(candles[idx]))
		return fmt.Errorf("persisting candles for %s: %d -> %s", candles[idx].Ticker, idx, errStr)
	}

	return nil
}

// FetchCandles fetches up to n of the most recent cached candles for the
// provided ticker and interval, ordered oldest first.
func (db *Database) FetchCandles(ctx context.Context, ticker string, interval shared.Interval, n int) ([]shared.Candlestick, error) {
	resp, err := db.client.QuerySingle(ctx, fetchCandlesSQL, ticker, interval.String(), n)
	if err != nil {
		return nil, err
	}

	results := resp.GetQueryResultsAssoc()
	if len(results) == 0 {
		return nil, nil
	}

	rows := results[0].Rows
	candles := make([]shared.Candlestick, len(rows))
	for idx := range rows {
		row := rows[idx]

		date, ok := row["date"].(float64)
		if !ok {
			return nil, fmt.Errorf("unexpected cached candle row: %s", spew.Sdump(row))
		}

		candle := shared.Candlestick{
			Ticker:   ticker,
			Interval: interval,
			Date:     time.Unix(int64(date), 0).UTC(),
		}

		candle.Open, _ = row["open"].(float64)
		candle.Low, _ = row["low"].(float64)
		candle.High, _ = row["high"].(float64)
		candle.Close, _ = row["close"].(float64)
		candle.Volume, _ = row["volume"].(float64)

		// Rows arrive newest first, store them oldest first.
		candles[len(rows)-1-idx] = candle
	}

	return candles, nil
}
