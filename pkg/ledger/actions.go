package ledger

import (
	"fmt"
	"strings"
)

// TradeVisitor handles every trade action. Adding an action to this
// interface breaks every handler until it deals with the new case.
type TradeVisitor interface {
	VisitBuy(Buy) error
	VisitSell(Sell) error
	VisitStockDividend(StockDividend) error
	VisitIPO(IPO) error
}

// TradeAction is one of Buy, Sell, StockDividend or IPO.
type TradeAction interface {
	Code() int
	String() string
	Accept(TradeVisitor) error
}

// Buy adds shares to a lot, opening one if needed.
type Buy struct{}

// Sell removes shares from an open lot.
type Sell struct{}

// StockDividend records shares received as a dividend.
type StockDividend struct{}

// IPO records shares allotted in an initial public offering.
type IPO struct{}

func (Buy) Code() int                      { return 1 }
func (Buy) String() string                 { return "BUY" }
func (a Buy) Accept(v TradeVisitor) error  { return v.VisitBuy(a) }
func (Sell) Code() int                     { return 2 }
func (Sell) String() string                { return "SELL" }
func (a Sell) Accept(v TradeVisitor) error { return v.VisitSell(a) }

func (StockDividend) Code() int                     { return 3 }
func (StockDividend) String() string                { return "STOCKDIVS" }
func (a StockDividend) Accept(v TradeVisitor) error { return v.VisitStockDividend(a) }
func (IPO) Code() int                               { return 4 }
func (IPO) String() string                          { return "IPO" }
func (a IPO) Accept(v TradeVisitor) error           { return v.VisitIPO(a) }

// TradeActions lists every trade action in code order.
var TradeActions = []TradeAction{Buy{}, Sell{}, StockDividend{}, IPO{}}

// ParseTradeAction resolves a trade action by name, case-insensitively.
func ParseTradeAction(name string) (TradeAction, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, a := range TradeActions {
		if a.String() == name {
			return a, nil
		}
	}
	return nil, fmt.Errorf("invalid trade action: %q", name)
}

// TradeActionFromCode resolves a trade action from its stored code.
func TradeActionFromCode(code int) (TradeAction, error) {
	for _, a := range TradeActions {
		if a.Code() == code {
			return a, nil
		}
	}
	return nil, fmt.Errorf("invalid trade action code: %d", code)
}

// WalletVisitor handles every wallet action.
type WalletVisitor interface {
	VisitDeposit(Deposit) error
	VisitWithdrawal(Withdrawal) error
	VisitCashDividend(CashDividend) error
}

// WalletAction is one of Deposit, Withdrawal or CashDividend.
type WalletAction interface {
	Code() int
	String() string
	Accept(WalletVisitor) error
}

// Deposit adds cash, creating the wallet on first use.
type Deposit struct{}

// Withdrawal removes cash; it never overdraws.
type Withdrawal struct{}

// CashDividend adds dividend cash to an existing wallet.
type CashDividend struct{}

func (Deposit) Code() int                           { return 1 }
func (Deposit) String() string                      { return "DEPOSIT" }
func (a Deposit) Accept(v WalletVisitor) error      { return v.VisitDeposit(a) }
func (Withdrawal) Code() int                        { return 2 }
func (Withdrawal) String() string                   { return "WITHDRAWAL" }
func (a Withdrawal) Accept(v WalletVisitor) error   { return v.VisitWithdrawal(a) }
func (CashDividend) Code() int                      { return 3 }
func (CashDividend) String() string                 { return "CASHDIVS" }
func (a CashDividend) Accept(v WalletVisitor) error { return v.VisitCashDividend(a) }

// WalletActions lists every wallet action in code order.
var WalletActions = []WalletAction{Deposit{}, Withdrawal{}, CashDividend{}}

// ParseWalletAction resolves a wallet action by name, case-insensitively.
func ParseWalletAction(name string) (WalletAction, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, a := range WalletActions {
		if a.String() == name {
			return a, nil
		}
	}
	return nil, fmt.Errorf("invalid wallet action: %q", name)
}

// WalletActionFromCode resolves a wallet action from its stored code.
func WalletActionFromCode(code int) (WalletAction, error) {
	for _, a := range WalletActions {
		if a.Code() == code {
			return a, nil
		}
	}
	return nil, fmt.Errorf("invalid wallet action code: %d", code)
}
