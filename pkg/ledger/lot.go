// Package ledger holds the pure aggregation rules of the trading journal:
// how trade transactions move a position lot and how wallet transactions
// move a cash balance.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// LotStatus is the lifecycle state of a lot.
type LotStatus int

const (
	LotClosed LotStatus = 0
	LotActive LotStatus = 1
)

func (s LotStatus) String() string {
	if s == LotActive {
		return "ACTIVE"
	}
	return "DISABLED"
}

// LotType is the direction of a position.
type LotType int

const (
	Short LotType = 0
	Long  LotType = 1
)

func (t LotType) String() string {
	if t == Long {
		return "LONG"
	}
	return "SHORT"
}

// Lot is the position held for one (journal, stock) pair.
type Lot struct {
	ID                   int64
	JournalID            int64
	StockID              int64
	TransactionDateStart time.Time
	TransactionDateEnd   *time.Time
	Type                 LotType
	Shares               decimal.Decimal
	BuyShares            decimal.Decimal
	AvgBuyPrice          decimal.Decimal
	SellShares           decimal.Decimal
	AvgSellPrice         decimal.Decimal
	Status               LotStatus
}

// TradeTransaction carries the fields of a trade event that move a lot.
type TradeTransaction struct {
	JournalID       int64
	StockID         int64
	Action          TradeAction
	Shares          decimal.Decimal
	NetAmount       decimal.Decimal
	TransactionDate time.Time
}

// NetPerShare returns the net amount paid or received per share.
func (t TradeTransaction) NetPerShare() decimal.Decimal {
	return t.NetAmount.Div(t.Shares)
}

// LotAggregator applies trade transactions to lots.
type LotAggregator struct {
	Averaging AveragingStrategy
	Now       func() time.Time
}

// NewLotAggregator returns an aggregator using the given strategy; a nil
// strategy selects TwoTermAverage.
func NewLotAggregator(avg AveragingStrategy) LotAggregator {
	if avg == nil {
		avg = TwoTermAverage{}
	}
	return LotAggregator{Averaging: avg, Now: time.Now}
}

// Apply returns the lot state after txn. current is nil when the pair has
// no ACTIVE lot; in that case only a BUY is accepted and the returned lot
// has a zero ID. The input lot is never modified.
func (a LotAggregator) Apply(current *Lot, txn TradeTransaction) (Lot, error) {
	if txn.Action == nil {
		return Lot{}, ErrMissingAction
	}
	if a.Averaging == nil {
		a.Averaging = TwoTermAverage{}
	}
	if a.Now == nil {
		a.Now = time.Now
	}
	t := &lotTransition{agg: a, current: current, txn: txn}
	if err := txn.Action.Accept(t); err != nil {
		return Lot{}, err
	}
	return t.next, nil
}

type lotTransition struct {
	agg     LotAggregator
	current *Lot
	txn     TradeTransaction
	next    Lot
}

func (t *lotTransition) requireFill() error {
	if !t.txn.Shares.IsPositive() || !t.txn.NetAmount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

func (t *lotTransition) VisitBuy(Buy) error {
	if err := t.requireFill(); err != nil {
		return err
	}
	price := t.txn.NetPerShare()
	if t.current == nil {
		t.next = Lot{
			JournalID:            t.txn.JournalID,
			StockID:              t.txn.StockID,
			TransactionDateStart: t.txn.TransactionDate,
			Type:                 Long,
			Shares:               t.txn.Shares,
			BuyShares:            t.txn.Shares,
			AvgBuyPrice:          price,
			SellShares:           decimal.Zero,
			AvgSellPrice:         decimal.Zero,
			Status:               LotActive,
		}
		return nil
	}
	next := *t.current
	next.AvgBuyPrice = t.agg.Averaging.Average(next.AvgBuyPrice, next.BuyShares, price, t.txn.Shares)
	next.BuyShares = next.BuyShares.Add(t.txn.Shares)
	next.Shares = next.Shares.Add(t.txn.Shares)
	t.next = next
	return nil
}

func (t *lotTransition) VisitSell(Sell) error {
	if t.current == nil {
		return ErrEmptyLot
	}
	if err := t.requireFill(); err != nil {
		return err
	}
	if t.txn.Shares.GreaterThan(t.current.Shares) {
		return ErrOversell
	}
	next := *t.current
	next.AvgSellPrice = t.agg.Averaging.Average(next.AvgSellPrice, next.SellShares, t.txn.NetPerShare(), t.txn.Shares)
	next.SellShares = next.SellShares.Add(t.txn.Shares)
	next.Shares = next.Shares.Sub(t.txn.Shares)
	if !next.Shares.IsPositive() {
		end := t.agg.Now()
		next.Status = LotClosed
		next.TransactionDateEnd = &end
	}
	t.next = next
	return nil
}

// Stock dividends and IPO allotments are recorded against the open lot
// without moving shares or averages.
func (t *lotTransition) VisitStockDividend(StockDividend) error {
	return t.passThrough()
}

func (t *lotTransition) VisitIPO(IPO) error {
	return t.passThrough()
}

func (t *lotTransition) passThrough() error {
	if t.current == nil {
		return ErrEmptyLot
	}
	t.next = *t.current
	return nil
}
