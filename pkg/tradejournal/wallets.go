package tradejournal

import (
	"context"
	"database/sql"

	"tradejournal/pkg/ledger"
)

// AddWalletTransaction applies a cash event to the journal wallet and
// records it. A DEPOSIT into a journal without a wallet creates one.
func (c *Core) AddWalletTransaction(ctx context.Context, req AddWalletTransactionRequest) (MutationResult, error) {
	attrs := []any{"journal_id", req.JournalID, "action", req.Action}
	req.Action = normalizeAction(req.Action)
	if err := c.validateRequest(req); err != nil {
		return c.rejected("add wallet transaction", err, attrs...), err
	}
	action, err := ledger.ParseWalletAction(req.Action)
	if err != nil {
		err = WrapError(ErrCodeValidation, err.Error(), err)
		return c.rejected("add wallet transaction", err, attrs...), err
	}
	date, _, err := c.normalizeDate(req.TransactionDate)
	if err != nil {
		err = WrapError(ErrCodeValidation, err.Error(), err)
		return c.rejected("add wallet transaction", err, attrs...), err
	}

	gross, fee, net := dec(req.GrossAmount), dec(req.Fees), dec(req.NetAmount)
	if net.IsZero() {
		if _, isWithdrawal := action.(ledger.Withdrawal); isWithdrawal {
			net = gross.Add(fee)
		} else {
			net = gross.Sub(fee)
		}
	}
	if gross.IsZero() {
		gross = net
	}
	if !net.IsPositive() {
		err = NewError(ErrCodeValidation, "net_amount must be at least 0.0001")
		return c.rejected("add wallet transaction", err, attrs...), err
	}

	unlock := c.locks.lock(walletKey(req.JournalID))
	defer unlock()

	var wallet Wallet
	var record WalletTransaction
	err = c.WithTx(ctx, func(tx *sql.Tx) error {
		if err := requireActiveJournalTx(ctx, tx, req.JournalID); err != nil {
			return err
		}
		current, err := walletTx(ctx, tx, req.JournalID)
		if err != nil {
			return err
		}
		var currentState *ledger.Wallet
		if current != nil {
			currentState = &ledger.Wallet{ID: current.ID, JournalID: current.JournalID, Balance: current.Balance.Decimal}
		}
		next, err := ledger.ApplyWalletTransaction(currentState, ledger.WalletTransaction{
			JournalID: req.JournalID,
			Action:    action,
			NetAmount: net,
		})
		if err != nil {
			return fromLedger(err)
		}

		walletID, err := saveWalletTx(ctx, tx, next)
		if err != nil {
			return err
		}
		wallet = Wallet{ID: walletID, JournalID: next.JournalID, Balance: Amount{next.Balance}}

		record = WalletTransaction{
			JournalID:       req.JournalID,
			WalletID:        walletID,
			TransactionDate: date,
			Action:          action.String(),
			GrossAmount:     Amount{gross},
			Fees:            Amount{fee},
			NetAmount:       Amount{net},
		}
		result, err := tx.ExecContext(ctx, `
			INSERT INTO wallet_transactions (
				journal_id, wallet_id, transaction_date, action, gross_amount, fees, net_amount
			) VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			record.JournalID, record.WalletID, record.TransactionDate, action.Code(),
			record.GrossAmount, record.Fees, record.NetAmount,
		)
		if err != nil {
			return dbError("insert wallet transaction", err)
		}
		record.ID, err = result.LastInsertId()
		return dbError("insert wallet transaction", err)
	})
	if err != nil {
		return c.rejected("add wallet transaction", err, attrs...), err
	}

	c.summaries.invalidate(req.JournalID)
	c.logger.Info("wallet transaction added",
		"journal_id", req.JournalID,
		"wallet_id", wallet.ID,
		"action", record.Action,
		"balance", wallet.Balance.String(),
	)
	return MutationResult{
		Code:              CodeCreated,
		Success:           true,
		Message:           "Wallet transaction was successfully added",
		Wallet:            &wallet,
		WalletTransaction: &record,
	}, nil
}

func walletTx(ctx context.Context, tx *sql.Tx, journalID int64) (*Wallet, error) {
	row := tx.QueryRowContext(ctx, "SELECT id, journal_id, balance, updated_at FROM wallets WHERE journal_id = ?", journalID)
	w, err := scanWallet(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, dbError("query wallet", err)
	}
	return &w, nil
}

func saveWalletTx(ctx context.Context, tx *sql.Tx, w ledger.Wallet) (int64, error) {
	if w.ID == 0 {
		result, err := tx.ExecContext(ctx,
			"INSERT INTO wallets (journal_id, balance) VALUES (?, ?)",
			w.JournalID, Amount{w.Balance},
		)
		if err != nil {
			return 0, dbError("insert wallet", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return 0, dbError("insert wallet", err)
		}
		return id, nil
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE wallets SET balance = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		Amount{w.Balance}, w.ID,
	); err != nil {
		return 0, dbError("update wallet", err)
	}
	return w.ID, nil
}

// GetWallet returns the wallet of a journal, or nil when no deposit has been
// made yet.
func (c *Core) GetWallet(ctx context.Context, journalID int64) (*Wallet, error) {
	row := c.db.QueryRowContext(ctx, "SELECT id, journal_id, balance, updated_at FROM wallets WHERE journal_id = ?", journalID)
	w, err := scanWallet(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, dbError("query wallet", err)
	}
	return &w, nil
}

// GetWalletTransactions returns the cash events of a journal in the order
// they were recorded.
func (c *Core) GetWalletTransactions(ctx context.Context, journalID int64) ([]WalletTransaction, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, journal_id, wallet_id, transaction_date, action,
			gross_amount, fees, net_amount, created_at
		FROM wallet_transactions
		WHERE journal_id = ?
		ORDER BY transaction_date ASC, id ASC
	`, journalID)
	if err != nil {
		return nil, dbError("query wallet transactions", err)
	}
	defer rows.Close()

	txns := []WalletTransaction{}
	for rows.Next() {
		var t WalletTransaction
		var action int
		var createdAt sql.NullString
		if err := rows.Scan(
			&t.ID, &t.JournalID, &t.WalletID, &t.TransactionDate, &action,
			&t.GrossAmount, &t.Fees, &t.NetAmount, &createdAt,
		); err != nil {
			return nil, dbError("scan wallet transaction", err)
		}
		a, err := ledger.WalletActionFromCode(action)
		if err != nil {
			return nil, WrapError(ErrCodeInternal, "stored wallet action is invalid", err)
		}
		t.Action = a.String()
		t.CreatedAt = stringPtr(createdAt)
		txns = append(txns, t)
	}
	return txns, dbError("query wallet transactions", rows.Err())
}

func scanWallet(row rowScanner) (Wallet, error) {
	var w Wallet
	var updatedAt sql.NullString
	if err := row.Scan(&w.ID, &w.JournalID, &w.Balance, &updatedAt); err != nil {
		return Wallet{}, err
	}
	w.UpdatedAt = stringPtr(updatedAt)
	return w, nil
}
