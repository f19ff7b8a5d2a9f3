// Copyright (c) 2025 Neomantra Corp
//
// Optional DuckDB sink: mirrors the three CSV reports into a single
// queryable database file, so a user can `SELECT` across sweeps,
// icebergs, and stops instead of joining CSVs by hand.
//

package file

import (
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/NimbleMarkets/cme-go"
)

// DuckDBSink writes an AnalysisResult's reports into a DuckDB file.
type DuckDBSink struct {
	db *sql.DB
}

// NewDuckDBSink opens (creating if needed) the DuckDB file at path and
// creates its three report tables.
func NewDuckDBSink(path string) (*DuckDBSink, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("opening duckdb sink: %w", err)
	}
	schema := `
		CREATE TABLE IF NOT EXISTS sweeps (
			ts BIGINT, symbol VARCHAR, start_price BIGINT, end_price BIGINT,
			total_traded INTEGER, is_buy BOOLEAN
		);
		CREATE TABLE IF NOT EXISTS icebergs (
			ts BIGINT, symbol VARCHAR, price BIGINT, show_size INTEGER,
			traded_size INTEGER, is_bid BOOLEAN
		);
		CREATE TABLE IF NOT EXISTS stops (
			ts BIGINT, exchange_ts BIGINT, symbol VARCHAR, order_id UBIGINT,
			trigger_price BIGINT, order_size UINTEGER, traded_size UINTEGER, is_buy BOOLEAN
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating duckdb schema: %w", err)
	}
	return &DuckDBSink{db: db}, nil
}

// WriteResult inserts every row of result into its matching table.
func (s *DuckDBSink) WriteResult(result cme.AnalysisResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	for _, sweep := range result.Sweeps {
		if _, err := tx.Exec(
			`INSERT INTO sweeps VALUES (?, ?, ?, ?, ?, ?)`,
			sweep.StartTime, sweep.Symbol, sweep.StartPrice, sweep.EndPrice, sweep.TotalVolume, sweep.IsBuy,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	for _, ice := range result.Icebergs {
		if _, err := tx.Exec(
			`INSERT INTO icebergs VALUES (?, ?, ?, ?, ?, ?)`,
			ice.TS, ice.Symbol, ice.Price, ice.ShowQuantity, ice.TotalTraded, ice.IsBid,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	for _, stop := range result.Stops {
		if _, err := tx.Exec(
			`INSERT INTO stops VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			stop.TS, stop.ExchangeTS, stop.Symbol, stop.OrderID, stop.TriggerPrice, stop.Size, stop.TradedSize, stop.IsBuy,
		); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (s *DuckDBSink) Close() error {
	return s.db.Close()
}
