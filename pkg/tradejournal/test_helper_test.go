package tradejournal

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// testNow is 2024-03-15 10:00 in Asia/Manila.
var testNow = time.Date(2024, 3, 15, 2, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTestDB creates a temporary database for testing and returns a Core instance.
// The caller should defer cleanup() to remove the temp file.
func setupTestDB(t *testing.T) (*Core, func()) {
	t.Helper()
	return setupTestDBWithOptions(t, Options{})
}

func setupTestDBWithOptions(t *testing.T, opts Options) (*Core, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "tradejournal-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	opts.DBPath = filepath.Join(tmpDir, "test.db")
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	core, err := OpenWithOptions(opts)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open test db: %v", err)
	}

	cleanup := func() {
		core.Close()
		os.RemoveAll(tmpDir)
	}

	return core, cleanup
}

// testJournal creates an ACTIVE journal and returns its id.
func testJournal(t *testing.T, core *Core, name string) int64 {
	t.Helper()
	result, err := core.AddJournal(context.Background(), AddJournalRequest{Name: name})
	if err != nil {
		t.Fatalf("failed to create test journal: %v", err)
	}
	return result.Journal.ID
}

// testStock creates a stock and returns its id.
func testStock(t *testing.T, core *Core, symbol string) int64 {
	t.Helper()
	stock, err := core.AddStock(context.Background(), Stock{Symbol: symbol})
	if err != nil {
		t.Fatalf("failed to create test stock: %v", err)
	}
	return stock.ID
}

// testTrade records a trade transaction with an explicit net amount.
func testTrade(t *testing.T, core *Core, journalID, stockID int64, action string, shares, net float64) MutationResult {
	t.Helper()
	result, err := core.AddTradeTransaction(context.Background(), AddTradeTransactionRequest{
		JournalID:       journalID,
		StockID:         stockID,
		Action:          action,
		Shares:          shares,
		NetAmount:       net,
		TransactionDate: "2024-03-01",
	})
	if err != nil {
		t.Fatalf("failed to add %s transaction: %v", action, err)
	}
	return result
}

// testWallet records a wallet transaction with an explicit net amount.
func testWallet(t *testing.T, core *Core, journalID int64, action string, net float64) MutationResult {
	t.Helper()
	result, err := core.AddWalletTransaction(context.Background(), AddWalletTransactionRequest{
		JournalID: journalID,
		Action:    action,
		NetAmount: net,
	})
	if err != nil {
		t.Fatalf("failed to add %s wallet transaction: %v", action, err)
	}
	return result
}

func countRows(t *testing.T, core *Core, table string) int {
	t.Helper()
	var n int
	if err := core.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

// floatEquals checks if two floats are approximately equal.
func floatEquals(a, b, epsilon float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < epsilon
}

// assertAmount fails the test if the amount is not approximately equal to want.
func assertAmount(t *testing.T, got Amount, want float64, msg string) {
	t.Helper()
	f, _ := got.Float64()
	if !floatEquals(f, want, 0.001) {
		t.Errorf("%s: got %.4f, want %.4f", msg, f, want)
	}
}

// assertNoError fails the test if err is not nil.
func assertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", msg, err)
	}
}

// assertErrorCode fails the test unless err carries the given code.
func assertErrorCode(t *testing.T, err error, code ErrorCode, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected %s error but got nil", msg, code)
	}
	if !IsErrorCode(err, code) {
		t.Fatalf("%s: expected %s, got %v", msg, code, err)
	}
}

// assertRejected checks a mutation was rejected with the given code.
func assertRejected(t *testing.T, result MutationResult, code ErrorCode, msg string) {
	t.Helper()
	if result.Success || result.Code != CodeRejected {
		t.Fatalf("%s: expected rejection, got %+v", msg, result)
	}
	if result.ErrorCode != code {
		t.Fatalf("%s: expected error_code %s, got %s", msg, code, result.ErrorCode)
	}
}
