package tradejournal

import (
	"context"
	"database/sql"
	"errors"
)

// WithTx runs fn as one unit of work. An error or panic from fn rolls back
// every row it wrote, so a lot never moves without its transaction record.
func (c *Core) WithTx(ctx context.Context, fn func(*sql.Tx) error) (err error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return WrapError(ErrCodeDatabase, "begin transaction", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			c.logger.Error("transaction rollback failed", "err", rbErr, "cause", err)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return WrapError(ErrCodeDatabase, "commit transaction", err)
	}
	committed = true
	return nil
}

// dbError classifies a raw driver error. Structured errors pass through.
func dbError(message string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return WrapError(ErrCodeDatabase, message, err)
}

// nullString stores blank optional text as NULL.
func nullString(value *string) sql.NullString {
	if value == nil || isBlank(*value) {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
