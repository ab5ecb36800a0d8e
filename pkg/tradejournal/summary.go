package tradejournal

import (
	"context"

	"github.com/shopspring/decimal"
)

// GetJournalSummary aggregates open positions, realized results of closed
// lots and the wallet balance of a journal. Results are cached until the
// journal is mutated.
func (c *Core) GetJournalSummary(ctx context.Context, journalID int64) (*JournalSummary, error) {
	cached, gen, ok := c.summaries.get(journalID)
	if ok {
		return &cached, nil
	}

	journal, err := c.GetJournal(ctx, journalID)
	if err != nil {
		return nil, err
	}
	trades, err := c.GetTrades(ctx, journalID, TradesAll)
	if err != nil {
		return nil, err
	}
	wallet, err := c.GetWallet(ctx, journalID)
	if err != nil {
		return nil, err
	}

	summary := JournalSummary{
		JournalID:   journal.ID,
		JournalName: journal.Name,
		Trades:      trades,
		GeneratedAt: c.nowRFC3339(),
	}
	openShares, openCost, realized := decimal.Zero, decimal.Zero, decimal.Zero
	for _, t := range trades {
		if t.Status == StatusActive {
			summary.OpenPositions++
			openShares = openShares.Add(t.Shares.Decimal)
			openCost = openCost.Add(t.Shares.Mul(t.AvgBuyPrice.Decimal))
			continue
		}
		summary.ClosedTrades++
		realized = realized.Add(realizedProfit(t))
	}
	summary.OpenShares = Amount{openShares}
	summary.TotalOpenCost = Amount{openCost}
	summary.RealizedProfit = Amount{realized}
	if wallet != nil {
		summary.WalletBalance = wallet.Balance
	}

	c.summaries.set(summary, gen)
	return &summary, nil
}

// realizedProfit is the net result of the sold shares of a lot.
func realizedProfit(t Trade) decimal.Decimal {
	return t.SellShares.Mul(t.AvgSellPrice.Sub(t.AvgBuyPrice.Decimal))
}
