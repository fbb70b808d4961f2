// Package duckdb streams pricing scenarios out of a DuckDB database for
// batch repricing.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"
)

// Scenario is one row of market inputs. Prices are E0, volatility E8,
// maturity in seconds.
type Scenario struct {
	SpotPrice     int64
	StrikePrice   int64
	Volatility    int64
	UntilMaturity int64
}

type Reader struct {
	dataSourceName string
	db             *sql.DB
}

func NewReader(dataSourceName string) *Reader {
	return &Reader{
		dataSourceName: dataSourceName,
	}
}

func (r *Reader) Connect() error {
	db, err := sql.Open("duckdb", r.dataSourceName)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	r.db = db
	return nil
}

func (r *Reader) Close() {
	_ = r.db.Close()
}

// LoadScenarios streams every row of the given table into the handler in
// insertion order. A handler error stops the stream and is returned wrapped.
func (r *Reader) LoadScenarios(ctx context.Context, table string, handler func(s Scenario) error) error {

	query := fmt.Sprintf(`SELECT spot_price, strike_price, volatility, until_maturity FROM %s`, table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("error preparing query: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	for rows.Next() {
		var s Scenario
		if err := rows.Scan(&s.SpotPrice, &s.StrikePrice, &s.Volatility, &s.UntilMaturity); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		if err := handler(s); err != nil {
			return fmt.Errorf("error processing scenario: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error scanning rows: %w", err)
	}

	return nil
}
