package tradejournal

import (
	"database/sql"
	"fmt"
)

func initDatabase(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS journals (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			exchange_id INTEGER NOT NULL DEFAULT 1,
			status INTEGER NOT NULL DEFAULT 1 CHECK(status IN (0, 1)),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return err
	}

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS stocks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol TEXT NOT NULL UNIQUE,
			name TEXT,
			company_id TEXT,
			security_symbol_id TEXT
		)
	`); err != nil {
		return err
	}

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS stock_data (
			symbol TEXT NOT NULL,
			date TEXT NOT NULL,
			open REAL NOT NULL DEFAULT 0,
			high REAL NOT NULL DEFAULT 0,
			low REAL NOT NULL DEFAULT 0,
			close REAL NOT NULL DEFAULT 0,
			volume REAL NOT NULL DEFAULT 0,
			PRIMARY KEY (symbol, date)
		)
	`); err != nil {
		return err
	}

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS trades (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			journal_id INTEGER NOT NULL REFERENCES journals(id),
			stock_id INTEGER NOT NULL REFERENCES stocks(id),
			transaction_date_start TEXT NOT NULL,
			transaction_date_end TEXT,
			type INTEGER NOT NULL DEFAULT 1 CHECK(type IN (0, 1)),
			shares REAL NOT NULL DEFAULT 0,
			buy_shares REAL NOT NULL DEFAULT 0,
			avg_buy_price REAL NOT NULL DEFAULT 0,
			sell_shares REAL NOT NULL DEFAULT 0,
			avg_sell_price REAL NOT NULL DEFAULT 0,
			status INTEGER NOT NULL DEFAULT 1 CHECK(status IN (0, 1))
		)
	`); err != nil {
		return err
	}
	// At most one open lot per (journal, stock).
	if err := exec(tx, `
		CREATE UNIQUE INDEX IF NOT EXISTS idx_trades_active_pair
		ON trades(journal_id, stock_id) WHERE status = 1
	`); err != nil {
		return err
	}

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS trade_transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			journal_id INTEGER NOT NULL REFERENCES journals(id),
			stock_id INTEGER NOT NULL REFERENCES stocks(id),
			trade_id INTEGER NOT NULL REFERENCES trades(id),
			action INTEGER NOT NULL CHECK(action IN (1, 2, 3, 4)),
			gross_price REAL NOT NULL DEFAULT 0,
			shares REAL NOT NULL,
			gross_amount REAL NOT NULL DEFAULT 0,
			fees REAL NOT NULL DEFAULT 0,
			net_amount REAL NOT NULL DEFAULT 0,
			transaction_date TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return err
	}
	if hasRemarks, err := tableHasColumn(tx, "trade_transactions", "remarks"); err != nil {
		return err
	} else if !hasRemarks {
		if err := exec(tx, "ALTER TABLE trade_transactions ADD COLUMN remarks TEXT"); err != nil {
			return err
		}
	}

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS wallets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			journal_id INTEGER NOT NULL UNIQUE REFERENCES journals(id),
			balance REAL NOT NULL DEFAULT 0 CHECK(balance >= 0),
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return err
	}

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS wallet_transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			journal_id INTEGER NOT NULL REFERENCES journals(id),
			wallet_id INTEGER NOT NULL REFERENCES wallets(id),
			transaction_date TEXT NOT NULL,
			action INTEGER NOT NULL CHECK(action IN (1, 2, 3)),
			gross_amount REAL NOT NULL DEFAULT 0,
			fees REAL NOT NULL DEFAULT 0,
			net_amount REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return err
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_trades_journal ON trades(journal_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_trade_transactions_journal ON trade_transactions(journal_id, stock_id)",
		"CREATE INDEX IF NOT EXISTS idx_trade_transactions_trade ON trade_transactions(trade_id)",
		"CREATE INDEX IF NOT EXISTS idx_wallet_transactions_journal ON wallet_transactions(journal_id)",
	}
	for _, stmt := range indexes {
		if err := exec(tx, stmt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func exec(tx *sql.Tx, query string) error {
	_, err := tx.Exec(query)
	return err
}

func tableExists(tx *sql.Tx, table string) (bool, error) {
	var name string
	err := tx.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func tableHasColumn(tx *sql.Tx, table, column string) (bool, error) {
	exists, err := tableExists(tx, table)
	if err != nil || !exists {
		return false, err
	}
	rows, err := tx.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()
	for rows.Next() {
		var cid int
		var name string
		var ctype string
		var notnull int
		var dflt sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
