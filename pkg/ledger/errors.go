package ledger

import "errors"

var (
	// ErrEmptyLot is returned when a non-BUY action targets a pair with no open lot.
	ErrEmptyLot = errors.New("trade is empty")
	// ErrOversell is returned when a SELL exceeds the open shares of a lot.
	ErrOversell = errors.New("sell exceeds open shares")
	// ErrEmptyWallet is returned when a non-DEPOSIT action targets a journal without a wallet.
	ErrEmptyWallet = errors.New("wallet is empty")
	// ErrInsufficientBalance is returned when a WITHDRAWAL would overdraw the wallet.
	ErrInsufficientBalance = errors.New("balance is not enough")
	// ErrMissingAction is returned when a transaction carries no action.
	ErrMissingAction = errors.New("action is required")
	// ErrInvalidAmount is returned for non-positive shares or amounts.
	ErrInvalidAmount = errors.New("shares and net amount must be positive")
)
