package tradejournal

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func TestOpenIsIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "journal.db")

	core, err := Open(dbPath)
	assertNoError(t, err, "first open")
	journalID := testJournal(t, core, "Main")
	core.Close()

	core, err = Open(dbPath)
	assertNoError(t, err, "second open")
	defer core.Close()
	if core.DBPath() != dbPath {
		t.Errorf("unexpected db path %q", core.DBPath())
	}
	if _, err := core.GetJournal(context.Background(), journalID); err != nil {
		t.Fatalf("journal lost across reopen: %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty db path")
	}
}

func TestSingleActiveLotPerPair(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()
	journalID := testJournal(t, core, "Main")
	stockID := testStock(t, core, "ALI")
	testTrade(t, core, journalID, stockID, "BUY", 10, 100)

	_, err := core.db.Exec(`
		INSERT INTO trades (journal_id, stock_id, transaction_date_start, status)
		VALUES (?, ?, '2024-03-01', 1)
	`, journalID, stockID)
	if err == nil {
		t.Fatal("expected unique index to reject a second active lot")
	}

	if _, err := core.db.Exec(`
		INSERT INTO trades (journal_id, stock_id, transaction_date_start, status)
		VALUES (?, ?, '2024-01-01', 0)
	`, journalID, stockID); err != nil {
		t.Fatalf("closed lots must not be constrained: %v", err)
	}
}

func TestMigrationAddsRemarksColumn(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "legacy.db")
	db, err := sql.Open("sqlite", dbPath)
	assertNoError(t, err, "open legacy db")
	_, err = db.Exec(`
		CREATE TABLE trade_transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			journal_id INTEGER NOT NULL,
			stock_id INTEGER NOT NULL,
			trade_id INTEGER NOT NULL,
			action INTEGER NOT NULL,
			gross_price REAL NOT NULL DEFAULT 0,
			shares REAL NOT NULL,
			gross_amount REAL NOT NULL DEFAULT 0,
			fees REAL NOT NULL DEFAULT 0,
			net_amount REAL NOT NULL DEFAULT 0,
			transaction_date TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	assertNoError(t, err, "create legacy table")
	db.Close()

	core, err := Open(dbPath)
	assertNoError(t, err, "open migrated db")
	defer core.Close()

	tx, err := core.db.Begin()
	assertNoError(t, err, "begin")
	defer tx.Rollback()
	has, err := tableHasColumn(tx, "trade_transactions", "remarks")
	assertNoError(t, err, "table info")
	if !has {
		t.Fatal("expected remarks column after migration")
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("db file missing: %v", err)
	}
}
