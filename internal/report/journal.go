package report

import (
	"strconv"

	"github.com/shopspring/decimal"

	"tradejournal/pkg/tradejournal"
)

// Trades lists the lots of a journal.
func Trades(currency string) Table[tradejournal.Trade] {
	m := Money(currency)
	return Table[tradejournal.Trade]{Columns: []Column[tradejournal.Trade]{
		Text("id", "ID", func(t tradejournal.Trade) string { return strconv.FormatInt(t.ID, 10) }),
		Text("symbol", "SYMBOL", func(t tradejournal.Trade) string { return t.Symbol }),
		Text("start", "START", func(t tradejournal.Trade) string { return t.TransactionDateStart }),
		Text("end", "END", func(t tradejournal.Trade) string { return deref(t.TransactionDateEnd) }),
		Number("shares", "SHARES", Shares, func(t tradejournal.Trade) decimal.Decimal { return t.Shares.Decimal }),
		Number("avg_buy", "AVG BUY", Price, func(t tradejournal.Trade) decimal.Decimal { return t.AvgBuyPrice.Decimal }),
		Number("avg_sell", "AVG SELL", Price, func(t tradejournal.Trade) decimal.Decimal { return t.AvgSellPrice.Decimal }),
		Number("cost", "COST", m, func(t tradejournal.Trade) decimal.Decimal {
			return t.BuyShares.Mul(t.AvgBuyPrice.Decimal)
		}),
		Number("profit", "PROFIT", m, func(t tradejournal.Trade) decimal.Decimal {
			return t.SellShares.Mul(t.AvgSellPrice.Sub(t.AvgBuyPrice.Decimal))
		}),
		Text("status", "STATUS", func(t tradejournal.Trade) string { return t.Status }),
	}}
}

// TradeTransactions lists recorded trade transactions.
func TradeTransactions(currency string) Table[tradejournal.TradeTransaction] {
	m := Money(currency)
	return Table[tradejournal.TradeTransaction]{Columns: []Column[tradejournal.TradeTransaction]{
		Text("date", "DATE", func(t tradejournal.TradeTransaction) string { return t.TransactionDate }),
		Text("symbol", "SYMBOL", func(t tradejournal.TradeTransaction) string { return t.Symbol }),
		Text("action", "ACTION", func(t tradejournal.TradeTransaction) string { return t.Action }),
		Number("shares", "SHARES", Shares, func(t tradejournal.TradeTransaction) decimal.Decimal { return t.Shares.Decimal }),
		Number("price", "PRICE", Price, func(t tradejournal.TradeTransaction) decimal.Decimal { return t.GrossPrice.Decimal }),
		Number("fees", "FEES", m, func(t tradejournal.TradeTransaction) decimal.Decimal { return t.Fees.Decimal }),
		Number("net", "NET", m, func(t tradejournal.TradeTransaction) decimal.Decimal { return t.NetAmount.Decimal }),
		Text("remarks", "REMARKS", func(t tradejournal.TradeTransaction) string { return deref(t.Remarks) }),
	}}
}

// WalletTransactions lists wallet movements.
func WalletTransactions(currency string) Table[tradejournal.WalletTransaction] {
	m := Money(currency)
	return Table[tradejournal.WalletTransaction]{Columns: []Column[tradejournal.WalletTransaction]{
		Text("date", "DATE", func(t tradejournal.WalletTransaction) string { return t.TransactionDate }),
		Text("action", "ACTION", func(t tradejournal.WalletTransaction) string { return t.Action }),
		Number("gross", "GROSS", m, func(t tradejournal.WalletTransaction) decimal.Decimal { return t.GrossAmount.Decimal }),
		Number("fees", "FEES", m, func(t tradejournal.WalletTransaction) decimal.Decimal { return t.Fees.Decimal }),
		Number("net", "NET", m, func(t tradejournal.WalletTransaction) decimal.Decimal { return t.NetAmount.Decimal }),
	}}
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
