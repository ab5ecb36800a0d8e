package tradejournal

import (
	"context"
	"database/sql"
	"strings"
)

const journalColumns = "id, name, exchange_id, status, created_at, updated_at"

// AddJournal creates an ACTIVE journal.
func (c *Core) AddJournal(ctx context.Context, req AddJournalRequest) (MutationResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := c.validateRequest(req); err != nil {
		return c.rejected("add journal", err), err
	}
	if req.ExchangeID == 0 {
		req.ExchangeID = DefaultExchangeID
	}

	var journal *Journal
	err := c.WithTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			"INSERT INTO journals (name, exchange_id, status) VALUES (?, ?, 1)",
			req.Name, req.ExchangeID,
		)
		if err != nil {
			return dbError("insert journal", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return dbError("insert journal", err)
		}
		journal, err = journalTx(ctx, tx, id)
		return err
	})
	if err != nil {
		return c.rejected("add journal", err), err
	}

	c.logger.Info("journal added", "journal_id", journal.ID, "name", journal.Name)
	return MutationResult{
		Code:    CodeCreated,
		Success: true,
		Message: "Journal was successfully added",
		Journal: journal,
	}, nil
}

// RenameJournal changes the name of a journal in place.
func (c *Core) RenameJournal(ctx context.Context, req RenameJournalRequest) (MutationResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := c.validateRequest(req); err != nil {
		return c.rejected("rename journal", err), err
	}

	var journal *Journal
	err := c.WithTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			"UPDATE journals SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			req.Name, req.ID,
		)
		if err != nil {
			return dbError("rename journal", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return dbError("rename journal", err)
		}
		if rows == 0 {
			return NewError(ErrCodeNotFound, "Journal not found")
		}
		journal, err = journalTx(ctx, tx, req.ID)
		return err
	})
	if err != nil {
		return c.rejected("rename journal", err), err
	}

	c.summaries.invalidate(req.ID)
	c.logger.Info("journal renamed", "journal_id", req.ID, "name", req.Name)
	return MutationResult{
		Code:    CodeUpdated,
		Success: true,
		Message: "Journal was successfully updated",
		Journal: journal,
	}, nil
}

// GetJournals returns all journals ordered by id.
func (c *Core) GetJournals(ctx context.Context) ([]Journal, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT "+journalColumns+" FROM journals ORDER BY id")
	if err != nil {
		return nil, dbError("query journals", err)
	}
	defer rows.Close()

	journals := []Journal{}
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, dbError("scan journal", err)
		}
		journals = append(journals, j)
	}
	return journals, dbError("query journals", rows.Err())
}

// GetJournal returns one journal or a NOT_FOUND error.
func (c *Core) GetJournal(ctx context.Context, id int64) (*Journal, error) {
	row := c.db.QueryRowContext(ctx, "SELECT "+journalColumns+" FROM journals WHERE id = ?", id)
	j, err := scanJournal(row)
	if err == sql.ErrNoRows {
		return nil, NewError(ErrCodeNotFound, "Journal not found")
	}
	if err != nil {
		return nil, dbError("query journal", err)
	}
	return &j, nil
}

func journalTx(ctx context.Context, tx *sql.Tx, id int64) (*Journal, error) {
	row := tx.QueryRowContext(ctx, "SELECT "+journalColumns+" FROM journals WHERE id = ?", id)
	j, err := scanJournal(row)
	if err == sql.ErrNoRows {
		return nil, NewError(ErrCodeNotFound, "Journal not found")
	}
	if err != nil {
		return nil, dbError("query journal", err)
	}
	return &j, nil
}

// requireActiveJournalTx fails unless the journal exists and is ACTIVE.
func requireActiveJournalTx(ctx context.Context, tx *sql.Tx, id int64) error {
	var status int
	err := tx.QueryRowContext(ctx, "SELECT status FROM journals WHERE id = ?", id).Scan(&status)
	if err == sql.ErrNoRows {
		return NewError(ErrCodeNotFound, "Journal not found")
	}
	if err != nil {
		return dbError("query journal", err)
	}
	if status != 1 {
		return NewError(ErrCodeValidation, "Journal is disabled")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJournal(row rowScanner) (Journal, error) {
	var j Journal
	var status int
	var createdAt, updatedAt sql.NullString
	if err := row.Scan(&j.ID, &j.Name, &j.ExchangeID, &status, &createdAt, &updatedAt); err != nil {
		return Journal{}, err
	}
	j.Status = statusName(status == 1)
	j.CreatedAt = stringPtr(createdAt)
	j.UpdatedAt = stringPtr(updatedAt)
	return j, nil
}
