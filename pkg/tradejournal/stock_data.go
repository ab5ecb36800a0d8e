package tradejournal

import (
	"context"
	"database/sql"
	"strings"
)

// UpsertStockData stores end-of-day records for a known symbol, replacing
// any existing record of the same date. It returns the number of rows saved.
func (c *Core) UpsertStockData(ctx context.Context, symbol string, points []StockData) (int, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return 0, NewError(ErrCodeValidation, "symbol is required")
	}
	if len(points) == 0 {
		return 0, nil
	}

	saved := 0
	err := c.WithTx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, "SELECT id FROM stocks WHERE symbol = ?", symbol).Scan(&id)
		if err == sql.ErrNoRows {
			return NewError(ErrCodeNotFound, "Stock not found")
		}
		if err != nil {
			return dbError("query stock", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO stock_data (symbol, date, open, high, low, close, volume)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(symbol, date) DO UPDATE SET
				open = excluded.open,
				high = excluded.high,
				low = excluded.low,
				close = excluded.close,
				volume = excluded.volume
		`)
		if err != nil {
			return dbError("prepare stock data", err)
		}
		defer stmt.Close()

		for _, p := range points {
			date, _, err := c.normalizeDate(p.Date)
			if err != nil || isBlank(p.Date) {
				return NewError(ErrCodeValidation, "invalid stock data date: "+strings.TrimSpace(p.Date))
			}
			if p.Low.GreaterThan(p.High.Decimal) {
				return NewError(ErrCodeValidation, "stock data low is above high on "+date)
			}
			if _, err := stmt.ExecContext(ctx, symbol, date, p.Open, p.High, p.Low, p.Close, p.Volume); err != nil {
				return dbError("insert stock data", err)
			}
			saved++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	c.logger.Info("stock data saved", "symbol", symbol, "rows", saved)
	return saved, nil
}

// GetStockData returns end-of-day records ordered by date ascending. from
// and to are optional inclusive YYYY-MM-DD bounds.
func (c *Core) GetStockData(ctx context.Context, symbol, from, to string) ([]StockData, error) {
	query := "SELECT symbol, date, open, high, low, close, volume FROM stock_data WHERE symbol = ?"
	args := []any{normalizeSymbol(symbol)}
	if !isBlank(from) {
		query += " AND date >= ?"
		args = append(args, strings.TrimSpace(from))
	}
	if !isBlank(to) {
		query += " AND date <= ?"
		args = append(args, strings.TrimSpace(to))
	}
	query += " ORDER BY date ASC"

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("query stock data", err)
	}
	defer rows.Close()

	data := []StockData{}
	for rows.Next() {
		var d StockData
		if err := rows.Scan(&d.Symbol, &d.Date, &d.Open, &d.High, &d.Low, &d.Close, &d.Volume); err != nil {
			return nil, dbError("scan stock data", err)
		}
		data = append(data, d)
	}
	return data, dbError("query stock data", rows.Err())
}
