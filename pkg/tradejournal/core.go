// Package tradejournal records trade and wallet transactions per journal and
// keeps the derived position lots and cash balances consistent in SQLite.
package tradejournal

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"tradejournal/pkg/fees"
	"tradejournal/pkg/ledger"
	"tradejournal/pkg/review"
)

// Options controls Core initialization.
type Options struct {
	DBPath string
	Logger *slog.Logger
	// CommissionRate is the broker commission used to derive fees when a
	// trade is submitted without a net amount. Nil selects the default; zero
	// is a commission-free broker.
	CommissionRate *decimal.Decimal
	Averaging      ledger.AveragingStrategy
	Reviewer       review.Provider
	Now            func() time.Time
}

// Core provides access to the trading journal ledger and storage.
type Core struct {
	db        *sql.DB
	logger    *slog.Logger
	dbPath    string
	rate      decimal.Decimal
	lots      ledger.LotAggregator
	reviewer  review.Provider
	now       func() time.Time
	locks     *keyedMutex
	summaries *summaryCache
	validate  *validator.Validate
}

// Open initializes a Core using the provided database path.
func Open(dbPath string) (*Core, error) {
	return OpenWithOptions(Options{DBPath: dbPath})
}

// OpenWithOptions initializes a Core using the provided options.
func OpenWithOptions(opts Options) (*Core, error) {
	if opts.DBPath == "" {
		return nil, errors.New("db path is required")
	}
	cleanPath := filepath.Clean(opts.DBPath)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", cleanPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// SQLite performs best with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logger.Warn("pragma busy_timeout failed", "err", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logger.Warn("pragma foreign_keys failed", "err", err)
	}

	if err := initDatabase(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init database: %w", err)
	}

	opts.Logger = logger
	core := newCore(db, opts)
	core.dbPath = cleanPath
	return core, nil
}

// newCore wires a Core around an already initialized database.
func newCore(db *sql.DB, opts Options) *Core {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	rate := fees.DefaultCommissionRate
	if opts.CommissionRate != nil {
		rate = *opts.CommissionRate
	}
	lots := ledger.NewLotAggregator(opts.Averaging)
	lots.Now = func() time.Time { return now().In(manilaLocation) }

	return &Core{
		db:        db,
		logger:    logger,
		rate:      rate,
		lots:      lots,
		reviewer:  opts.Reviewer,
		now:       now,
		locks:     newKeyedMutex(),
		summaries: newSummaryCache(),
		validate:  newValidator(),
	}
}

// Close releases database resources.
func (c *Core) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// DBPath returns the underlying database path.
func (c *Core) DBPath() string {
	return c.dbPath
}

// CommissionRate returns the broker commission rate used for derived fees.
func (c *Core) CommissionRate() decimal.Decimal {
	return c.rate
}

// Averaging returns the name of the lot averaging strategy.
func (c *Core) Averaging() string {
	return c.lots.Averaging.Name()
}

// Logger returns the logger the core writes to.
func (c *Core) Logger() *slog.Logger {
	if c == nil {
		return nil
	}
	return c.logger
}
