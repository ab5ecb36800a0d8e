package mobile

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"tradejournal/pkg/fees"
	"tradejournal/pkg/tradejournal"
)

// Core wraps the trade journal core for gomobile bindings.
type Core struct {
	core *tradejournal.Core
}

// Open initializes the core with a database path.
func Open(dbPath string) (*Core, error) {
	core, err := tradejournal.Open(dbPath)
	if err != nil {
		return nil, err
	}
	return &Core{core: core}, nil
}

// Close releases resources.
func (c *Core) Close() error {
	if c == nil || c.core == nil {
		return nil
	}
	return c.core.Close()
}

// AddJournalJSON creates a journal and returns the mutation result JSON.
func (c *Core) AddJournalJSON(payloadJSON string) (string, error) {
	var req tradejournal.AddJournalRequest
	if err := json.Unmarshal([]byte(payloadJSON), &req); err != nil {
		return "", err
	}
	result, _ := c.core.AddJournal(context.Background(), req)
	return marshalJSON(result)
}

// GetJournalsJSON returns all journals as JSON.
func (c *Core) GetJournalsJSON() (string, error) {
	data, err := c.core.GetJournals(context.Background())
	if err != nil {
		return "", err
	}
	return marshalJSON(data)
}

// GetJournalSummaryJSON returns the journal summary as JSON.
func (c *Core) GetJournalSummaryJSON(journalID int64) (string, error) {
	data, err := c.core.GetJournalSummary(context.Background(), journalID)
	if err != nil {
		return "", err
	}
	return marshalJSON(data)
}

// AddStockJSON registers a stock and returns it as JSON.
func (c *Core) AddStockJSON(payloadJSON string) (string, error) {
	var stock tradejournal.Stock
	if err := json.Unmarshal([]byte(payloadJSON), &stock); err != nil {
		return "", err
	}
	data, err := c.core.AddStock(context.Background(), stock)
	if err != nil {
		return "", err
	}
	return marshalJSON(data)
}

// AddTradeTransactionJSON records a trade transaction. Rejections and
// storage failures come back inside the result, not as an error.
func (c *Core) AddTradeTransactionJSON(payloadJSON string) (string, error) {
	var req tradejournal.AddTradeTransactionRequest
	if err := json.Unmarshal([]byte(payloadJSON), &req); err != nil {
		return "", err
	}
	result, _ := c.core.AddTradeTransaction(context.Background(), req)
	return marshalJSON(result)
}

// AddWalletTransactionJSON records a wallet transaction.
func (c *Core) AddWalletTransactionJSON(payloadJSON string) (string, error) {
	var req tradejournal.AddWalletTransactionRequest
	if err := json.Unmarshal([]byte(payloadJSON), &req); err != nil {
		return "", err
	}
	result, _ := c.core.AddWalletTransaction(context.Background(), req)
	return marshalJSON(result)
}

// GetTradesJSON returns lots filtered by status ("", "active" or "closed").
func (c *Core) GetTradesJSON(journalID int64, status string) (string, error) {
	data, err := c.core.GetTrades(context.Background(), journalID, tradejournal.TradeStatusFilter(status))
	if err != nil {
		return "", err
	}
	return marshalJSON(data)
}

// GetTradeTransactionsJSON returns trade transactions, optionally for one stock.
func (c *Core) GetTradeTransactionsJSON(journalID, stockID int64) (string, error) {
	data, err := c.core.GetTradeTransactions(context.Background(), journalID, stockID)
	if err != nil {
		return "", err
	}
	return marshalJSON(data)
}

// GetWalletJSON returns the wallet as JSON, or "null" when none exists.
func (c *Core) GetWalletJSON(journalID int64) (string, error) {
	data, err := c.core.GetWallet(context.Background(), journalID)
	if err != nil {
		return "", err
	}
	return marshalJSON(data)
}

// GetWalletTransactionsJSON returns wallet transactions as JSON.
func (c *Core) GetWalletTransactionsJSON(journalID int64) (string, error) {
	data, err := c.core.GetWalletTransactions(context.Background(), journalID)
	if err != nil {
		return "", err
	}
	return marshalJSON(data)
}

// BuyCalculatorJSON runs the buy calculator with the configured commission.
func (c *Core) BuyCalculatorJSON(price string, shares float64, sellPrice float64, year int) (string, error) {
	result, err := fees.ComputeRoundTrip(fees.RoundTripInput{
		BuyPrice:  price,
		SellPrice: decimal.NewFromFloat(sellPrice),
		Shares:    decimal.NewFromFloat(shares),
		Rate:      c.core.CommissionRate(),
		Year:      year,
	})
	if err != nil {
		return "", err
	}
	return marshalJSON(result)
}

func marshalJSON(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
