package tradejournal

import (
	"context"
	"database/sql"
)

const stockColumns = "id, symbol, name, company_id, security_symbol_id"

// AddStock inserts a stock or refreshes the reference fields of an existing
// symbol, returning the stored row.
func (c *Core) AddStock(ctx context.Context, stock Stock) (*Stock, error) {
	stock.Symbol = normalizeSymbol(stock.Symbol)
	if stock.Symbol == "" {
		return nil, NewError(ErrCodeValidation, "symbol is required")
	}

	var stored *Stock
	err := c.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO stocks (symbol, name, company_id, security_symbol_id)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(symbol) DO UPDATE SET
				name = COALESCE(excluded.name, stocks.name),
				company_id = COALESCE(excluded.company_id, stocks.company_id),
				security_symbol_id = COALESCE(excluded.security_symbol_id, stocks.security_symbol_id)
		`, stock.Symbol, nullString(stock.Name), nullString(stock.CompanyID), nullString(stock.SecuritySymbolID)); err != nil {
			return dbError("upsert stock", err)
		}
		row := tx.QueryRowContext(ctx, "SELECT "+stockColumns+" FROM stocks WHERE symbol = ?", stock.Symbol)
		s, err := scanStock(row)
		if err != nil {
			return dbError("query stock", err)
		}
		stored = &s
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.logger.Info("stock saved", "stock_id", stored.ID, "symbol", stored.Symbol)
	return stored, nil
}

// GetStocks returns all stocks ordered by symbol.
func (c *Core) GetStocks(ctx context.Context) ([]Stock, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT "+stockColumns+" FROM stocks ORDER BY symbol")
	if err != nil {
		return nil, dbError("query stocks", err)
	}
	defer rows.Close()

	stocks := []Stock{}
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, dbError("scan stock", err)
		}
		stocks = append(stocks, s)
	}
	return stocks, dbError("query stocks", rows.Err())
}

// GetStockBySymbol returns one stock or a NOT_FOUND error.
func (c *Core) GetStockBySymbol(ctx context.Context, symbol string) (*Stock, error) {
	row := c.db.QueryRowContext(ctx, "SELECT "+stockColumns+" FROM stocks WHERE symbol = ?", normalizeSymbol(symbol))
	s, err := scanStock(row)
	if err == sql.ErrNoRows {
		return nil, NewError(ErrCodeNotFound, "Stock not found")
	}
	if err != nil {
		return nil, dbError("query stock", err)
	}
	return &s, nil
}

func requireStockTx(ctx context.Context, tx *sql.Tx, id int64) (string, error) {
	var symbol string
	err := tx.QueryRowContext(ctx, "SELECT symbol FROM stocks WHERE id = ?", id).Scan(&symbol)
	if err == sql.ErrNoRows {
		return "", NewError(ErrCodeNotFound, "Stock not found")
	}
	if err != nil {
		return "", dbError("query stock", err)
	}
	return symbol, nil
}

func scanStock(row rowScanner) (Stock, error) {
	var s Stock
	var name, companyID, securityID sql.NullString
	if err := row.Scan(&s.ID, &s.Symbol, &name, &companyID, &securityID); err != nil {
		return Stock{}, err
	}
	s.Name = stringPtr(name)
	s.CompanyID = stringPtr(companyID)
	s.SecuritySymbolID = stringPtr(securityID)
	return s, nil
}
