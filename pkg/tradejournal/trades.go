package tradejournal

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"tradejournal/pkg/fees"
	"tradejournal/pkg/ledger"
)

const tradeColumns = `t.id, t.journal_id, t.stock_id, s.symbol, t.transaction_date_start,
	t.transaction_date_end, t.type, t.shares, t.buy_shares, t.avg_buy_price,
	t.sell_shares, t.avg_sell_price, t.status`

const tradeTransactionColumns = `tt.id, tt.journal_id, tt.stock_id, tt.trade_id, s.symbol, tt.action,
	tt.gross_price, tt.shares, tt.gross_amount, tt.fees, tt.net_amount,
	tt.transaction_date, tt.remarks, tt.created_at`

// preparedTrade is a validated trade request with derived amounts.
type preparedTrade struct {
	action      ledger.TradeAction
	grossPrice  decimal.Decimal
	shares      decimal.Decimal
	grossAmount decimal.Decimal
	fees        decimal.Decimal
	netAmount   decimal.Decimal
	date        string
	day         time.Time
	remarks     *string
}

// AddTradeTransaction applies a trade event to the (journal, stock) lot and
// records it. The lot update and the transaction row are written in one
// unit of work; a rejection writes nothing.
func (c *Core) AddTradeTransaction(ctx context.Context, req AddTradeTransactionRequest) (MutationResult, error) {
	attrs := []any{"journal_id", req.JournalID, "stock_id", req.StockID, "action", req.Action}
	p, err := c.prepareTrade(&req)
	if err != nil {
		return c.rejected("add trade transaction", err, attrs...), err
	}

	unlock := c.locks.lock(lotKey(req.JournalID, req.StockID))
	defer unlock()

	var trade Trade
	var record TradeTransaction
	err = c.WithTx(ctx, func(tx *sql.Tx) error {
		if err := requireActiveJournalTx(ctx, tx, req.JournalID); err != nil {
			return err
		}
		symbol, err := requireStockTx(ctx, tx, req.StockID)
		if err != nil {
			return err
		}

		current, err := activeLotTx(ctx, tx, req.JournalID, req.StockID)
		if err != nil {
			return err
		}
		next, err := c.lots.Apply(current, ledger.TradeTransaction{
			JournalID:       req.JournalID,
			StockID:         req.StockID,
			Action:          p.action,
			Shares:          p.shares,
			NetAmount:       p.netAmount,
			TransactionDate: p.day,
		})
		if err != nil {
			return fromLedger(err)
		}

		tradeID, err := saveLotTx(ctx, tx, next)
		if err != nil {
			return err
		}
		next.ID = tradeID
		trade = tradeFromLot(next, symbol)

		record = TradeTransaction{
			JournalID:       req.JournalID,
			StockID:         req.StockID,
			TradeID:         tradeID,
			Symbol:          symbol,
			Action:          p.action.String(),
			GrossPrice:      Amount{p.grossPrice},
			Shares:          Amount{p.shares},
			GrossAmount:     Amount{p.grossAmount},
			Fees:            Amount{p.fees},
			NetAmount:       Amount{p.netAmount},
			TransactionDate: p.date,
			Remarks:         p.remarks,
		}
		result, err := tx.ExecContext(ctx, `
			INSERT INTO trade_transactions (
				journal_id, stock_id, trade_id, action, gross_price, shares,
				gross_amount, fees, net_amount, transaction_date, remarks
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			record.JournalID, record.StockID, record.TradeID, p.action.Code(),
			record.GrossPrice, record.Shares, record.GrossAmount, record.Fees, record.NetAmount,
			record.TransactionDate, nullString(record.Remarks),
		)
		if err != nil {
			return dbError("insert trade transaction", err)
		}
		record.ID, err = result.LastInsertId()
		return dbError("insert trade transaction", err)
	})
	if err != nil {
		return c.rejected("add trade transaction", err, attrs...), err
	}

	c.summaries.invalidate(req.JournalID)
	c.logger.Info("trade transaction added",
		"journal_id", req.JournalID,
		"stock_id", req.StockID,
		"action", record.Action,
		"trade_id", trade.ID,
		"trade_status", trade.Status,
		"shares", trade.Shares.String(),
	)
	return MutationResult{
		Code:             CodeCreated,
		Success:          true,
		Message:          "Trade transaction was successfully added",
		Trade:            &trade,
		TradeTransaction: &record,
	}, nil
}

// prepareTrade validates req and derives gross amount, fees and net amount
// for BUY and SELL orders submitted without a net amount.
func (c *Core) prepareTrade(req *AddTradeTransactionRequest) (preparedTrade, error) {
	req.Action = normalizeAction(req.Action)
	if err := c.validateRequest(*req); err != nil {
		return preparedTrade{}, err
	}
	action, err := ledger.ParseTradeAction(req.Action)
	if err != nil {
		return preparedTrade{}, WrapError(ErrCodeValidation, err.Error(), err)
	}
	date, day, err := c.normalizeDate(req.TransactionDate)
	if err != nil {
		return preparedTrade{}, WrapError(ErrCodeValidation, err.Error(), err)
	}

	p := preparedTrade{
		action:      action,
		grossPrice:  dec(req.GrossPrice),
		shares:      dec(req.Shares),
		grossAmount: dec(req.GrossAmount),
		fees:        dec(req.Fees),
		netAmount:   dec(req.NetAmount),
		date:        date,
		day:         day,
		remarks:     req.Remarks,
	}
	if !p.shares.IsPositive() {
		return preparedTrade{}, NewError(ErrCodeValidation, "shares must be at least 0.0001")
	}
	if p.grossAmount.IsZero() {
		p.grossAmount = fees.StockWorth(p.grossPrice, p.shares).Round(amountScale)
	}

	switch action.(type) {
	case ledger.Buy, ledger.Sell:
		if p.netAmount.IsZero() {
			p.deriveNet(c.rate)
		}
		if !p.netAmount.IsPositive() {
			return preparedTrade{}, NewError(ErrCodeValidation, "net_amount must be greater than 0")
		}
	}
	return p, nil
}

func (p *preparedTrade) deriveNet(rate decimal.Decimal) {
	_, isSell := p.action.(ledger.Sell)
	if p.fees.IsZero() && p.grossPrice.IsPositive() {
		if isSell {
			p.fees = fees.SellFees(p.grossPrice, p.shares, rate, p.day.Year())
		} else {
			p.fees = fees.BuyFees(p.grossPrice, p.shares, rate)
		}
		p.fees = p.fees.Round(amountScale)
	}
	if isSell {
		p.netAmount = p.grossAmount.Sub(p.fees)
	} else {
		p.netAmount = p.grossAmount.Add(p.fees)
	}
}

// activeLotTx loads the ACTIVE lot of a pair, or nil when there is none.
func activeLotTx(ctx context.Context, tx *sql.Tx, journalID, stockID int64) (*ledger.Lot, error) {
	row := tx.QueryRowContext(ctx,
		"SELECT "+tradeColumns+" FROM trades t JOIN stocks s ON s.id = t.stock_id WHERE t.journal_id = ? AND t.stock_id = ? AND t.status = 1",
		journalID, stockID,
	)
	trade, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, dbError("query active trade", err)
	}
	lot := lotFromTrade(trade)
	return &lot, nil
}

// saveLotTx inserts a new lot (zero ID) or updates an existing one and
// returns its id.
func saveLotTx(ctx context.Context, tx *sql.Tx, lot ledger.Lot) (int64, error) {
	var end sql.NullString
	if lot.TransactionDateEnd != nil {
		end = sql.NullString{String: lot.TransactionDateEnd.Format(time.RFC3339), Valid: true}
	}
	if lot.ID == 0 {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO trades (
				journal_id, stock_id, transaction_date_start, transaction_date_end, type,
				shares, buy_shares, avg_buy_price, sell_shares, avg_sell_price, status
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			lot.JournalID, lot.StockID, lot.TransactionDateStart.Format(dateLayout), end, int(lot.Type),
			Amount{lot.Shares}, Amount{lot.BuyShares}, Amount{lot.AvgBuyPrice},
			Amount{lot.SellShares}, Amount{lot.AvgSellPrice}, int(lot.Status),
		)
		if err != nil {
			return 0, dbError("insert trade", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return 0, dbError("insert trade", err)
		}
		return id, nil
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE trades SET
			transaction_date_end = ?, shares = ?, buy_shares = ?, avg_buy_price = ?,
			sell_shares = ?, avg_sell_price = ?, status = ?
		WHERE id = ?
	`,
		end, Amount{lot.Shares}, Amount{lot.BuyShares}, Amount{lot.AvgBuyPrice},
		Amount{lot.SellShares}, Amount{lot.AvgSellPrice}, int(lot.Status), lot.ID,
	); err != nil {
		return 0, dbError("update trade", err)
	}
	return lot.ID, nil
}

// GetTrades returns the lots of a journal, newest first.
func (c *Core) GetTrades(ctx context.Context, journalID int64, filter TradeStatusFilter) ([]Trade, error) {
	query := "SELECT " + tradeColumns + " FROM trades t JOIN stocks s ON s.id = t.stock_id WHERE t.journal_id = ?"
	switch filter {
	case TradesAll:
	case TradesActive:
		query += " AND t.status = 1"
	case TradesClosed:
		query += " AND t.status = 0"
	default:
		return nil, NewError(ErrCodeValidation, "status must be one of: active closed")
	}
	query += " ORDER BY t.transaction_date_start DESC, t.id DESC"

	rows, err := c.db.QueryContext(ctx, query, journalID)
	if err != nil {
		return nil, dbError("query trades", err)
	}
	defer rows.Close()

	trades := []Trade{}
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, dbError("scan trade", err)
		}
		trades = append(trades, t)
	}
	return trades, dbError("query trades", rows.Err())
}

// GetActiveTrades returns the open lots of a journal.
func (c *Core) GetActiveTrades(ctx context.Context, journalID int64) ([]Trade, error) {
	return c.GetTrades(ctx, journalID, TradesActive)
}

// GetClosedTrades returns the closed lots of a journal.
func (c *Core) GetClosedTrades(ctx context.Context, journalID int64) ([]Trade, error) {
	return c.GetTrades(ctx, journalID, TradesClosed)
}

// GetTradeTransactions returns the trade events of a journal in the order
// they were recorded. A non-zero stockID narrows the result to one stock.
func (c *Core) GetTradeTransactions(ctx context.Context, journalID, stockID int64) ([]TradeTransaction, error) {
	query := "SELECT " + tradeTransactionColumns + " FROM trade_transactions tt JOIN stocks s ON s.id = tt.stock_id WHERE tt.journal_id = ?"
	args := []any{journalID}
	if stockID > 0 {
		query += " AND tt.stock_id = ?"
		args = append(args, stockID)
	}
	query += " ORDER BY tt.transaction_date ASC, tt.id ASC"

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("query trade transactions", err)
	}
	defer rows.Close()

	txns := []TradeTransaction{}
	for rows.Next() {
		var t TradeTransaction
		var action int
		var remarks, createdAt sql.NullString
		if err := rows.Scan(
			&t.ID, &t.JournalID, &t.StockID, &t.TradeID, &t.Symbol, &action,
			&t.GrossPrice, &t.Shares, &t.GrossAmount, &t.Fees, &t.NetAmount,
			&t.TransactionDate, &remarks, &createdAt,
		); err != nil {
			return nil, dbError("scan trade transaction", err)
		}
		a, err := ledger.TradeActionFromCode(action)
		if err != nil {
			return nil, WrapError(ErrCodeInternal, "stored trade action is invalid", err)
		}
		t.Action = a.String()
		t.Remarks = stringPtr(remarks)
		t.CreatedAt = stringPtr(createdAt)
		txns = append(txns, t)
	}
	return txns, dbError("query trade transactions", rows.Err())
}

func scanTrade(row rowScanner) (Trade, error) {
	var t Trade
	var end sql.NullString
	var lotType, status int
	if err := row.Scan(
		&t.ID, &t.JournalID, &t.StockID, &t.Symbol, &t.TransactionDateStart,
		&end, &lotType, &t.Shares, &t.BuyShares, &t.AvgBuyPrice,
		&t.SellShares, &t.AvgSellPrice, &status,
	); err != nil {
		return Trade{}, err
	}
	t.TransactionDateEnd = stringPtr(end)
	t.Type = ledger.LotType(lotType).String()
	t.Status = ledger.LotStatus(status).String()
	return t, nil
}

func lotFromTrade(t Trade) ledger.Lot {
	lot := ledger.Lot{
		ID:                   t.ID,
		JournalID:            t.JournalID,
		StockID:              t.StockID,
		TransactionDateStart: parseStoredDate(t.TransactionDateStart),
		Type:                 ledger.Short,
		Shares:               t.Shares.Decimal,
		BuyShares:            t.BuyShares.Decimal,
		AvgBuyPrice:          t.AvgBuyPrice.Decimal,
		SellShares:           t.SellShares.Decimal,
		AvgSellPrice:         t.AvgSellPrice.Decimal,
		Status:               ledger.LotClosed,
	}
	if t.Type == ledger.Long.String() {
		lot.Type = ledger.Long
	}
	if t.Status == ledger.LotActive.String() {
		lot.Status = ledger.LotActive
	}
	if t.TransactionDateEnd != nil {
		if end, err := time.Parse(time.RFC3339, *t.TransactionDateEnd); err == nil {
			lot.TransactionDateEnd = &end
		}
	}
	return lot
}

func tradeFromLot(lot ledger.Lot, symbol string) Trade {
	t := Trade{
		ID:                   lot.ID,
		JournalID:            lot.JournalID,
		StockID:              lot.StockID,
		Symbol:               symbol,
		TransactionDateStart: lot.TransactionDateStart.Format(dateLayout),
		Type:                 lot.Type.String(),
		Shares:               Amount{lot.Shares},
		BuyShares:            Amount{lot.BuyShares},
		AvgBuyPrice:          Amount{lot.AvgBuyPrice},
		SellShares:           Amount{lot.SellShares},
		AvgSellPrice:         Amount{lot.AvgSellPrice},
		Status:               lot.Status.String(),
	}
	if lot.TransactionDateEnd != nil {
		end := lot.TransactionDateEnd.Format(time.RFC3339)
		t.TransactionDateEnd = &end
	}
	return t
}
