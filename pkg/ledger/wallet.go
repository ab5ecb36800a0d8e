package ledger

import "github.com/shopspring/decimal"

// Wallet is the cash balance of a journal.
type Wallet struct {
	ID        int64
	JournalID int64
	Balance   decimal.Decimal
}

// WalletTransaction carries the fields of a cash event that move a wallet.
type WalletTransaction struct {
	JournalID int64
	Action    WalletAction
	NetAmount decimal.Decimal
}

// ApplyWalletTransaction returns the wallet after txn. current is nil when
// the journal has no wallet yet; only a DEPOSIT creates one.
func ApplyWalletTransaction(current *Wallet, txn WalletTransaction) (Wallet, error) {
	if txn.Action == nil {
		return Wallet{}, ErrMissingAction
	}
	if !txn.NetAmount.IsPositive() {
		return Wallet{}, ErrInvalidAmount
	}
	t := &walletTransition{current: current, txn: txn}
	if err := txn.Action.Accept(t); err != nil {
		return Wallet{}, err
	}
	return t.next, nil
}

type walletTransition struct {
	current *Wallet
	txn     WalletTransaction
	next    Wallet
}

func (t *walletTransition) VisitDeposit(Deposit) error {
	if t.current == nil {
		t.next = Wallet{JournalID: t.txn.JournalID, Balance: t.txn.NetAmount}
		return nil
	}
	return t.credit()
}

func (t *walletTransition) VisitCashDividend(CashDividend) error {
	if t.current == nil {
		return ErrEmptyWallet
	}
	return t.credit()
}

func (t *walletTransition) VisitWithdrawal(Withdrawal) error {
	if t.current == nil {
		return ErrEmptyWallet
	}
	balance := t.current.Balance.Sub(t.txn.NetAmount)
	if balance.Sign() < 0 {
		return ErrInsufficientBalance
	}
	t.next = *t.current
	t.next.Balance = balance
	return nil
}

func (t *walletTransition) credit() error {
	t.next = *t.current
	t.next.Balance = t.current.Balance.Add(t.txn.NetAmount)
	return nil
}
