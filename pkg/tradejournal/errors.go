package tradejournal

import (
	"errors"
	"fmt"

	"tradejournal/pkg/ledger"
)

// ErrorCode defines error classification codes for structured error handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrCodeValidation       ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeEmptyLot         ErrorCode = "EMPTY_LOT"
	ErrCodeEmptyWallet      ErrorCode = "EMPTY_WALLET"
	ErrCodeInsufficientFund ErrorCode = "INSUFFICIENT_FUND"
	ErrCodeOversell         ErrorCode = "OVERSELL"
	ErrCodeDatabase         ErrorCode = "DATABASE_ERROR"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
	ErrCodeUnsupported      ErrorCode = "UNSUPPORTED"
)

// Rejection messages shown to the journal owner.
const (
	MsgEmptyLot            = "Unable to create trade transaction as trade is empty"
	MsgEmptyWallet         = "Unable to create wallet transaction as wallet is empty"
	MsgInsufficientBalance = "Unable to withdraw amount from wallet as balance is not enough"
	MsgOversell            = "Unable to sell more shares than currently held"
	MsgStorageFailure      = "Unable to save transaction, please try again"
)

// Error represents a structured error with classification code.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with classification code and additional context.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf returns the classification code of err, or ErrCodeInternal when err
// carries none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// IsErrorCode checks if an error matches a specific error code.
func IsErrorCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// isRejection reports whether the code is a client-side rejection rather
// than a storage or internal failure.
func isRejection(code ErrorCode) bool {
	switch code {
	case ErrCodeInvalidInput, ErrCodeValidation, ErrCodeNotFound, ErrCodeEmptyLot,
		ErrCodeEmptyWallet, ErrCodeInsufficientFund, ErrCodeOversell:
		return true
	}
	return false
}

// fromLedger classifies an aggregator failure.
func fromLedger(err error) error {
	switch {
	case errors.Is(err, ledger.ErrEmptyLot):
		return WrapError(ErrCodeEmptyLot, MsgEmptyLot, err)
	case errors.Is(err, ledger.ErrOversell):
		return WrapError(ErrCodeOversell, MsgOversell, err)
	case errors.Is(err, ledger.ErrEmptyWallet):
		return WrapError(ErrCodeEmptyWallet, MsgEmptyWallet, err)
	case errors.Is(err, ledger.ErrInsufficientBalance):
		return WrapError(ErrCodeInsufficientFund, MsgInsufficientBalance, err)
	case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrMissingAction):
		return WrapError(ErrCodeValidation, err.Error(), err)
	}
	return WrapError(ErrCodeInternal, "ledger transition failed", err)
}
