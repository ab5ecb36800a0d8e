package tradejournal

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// amountScale is the number of decimal places kept for prices, fees and
// share counts. PSE quotes sub-peso prices at four places.
const amountScale int32 = 4

// Amount is a decimal ledger quantity. It is written to JSON as a bare number
// and to SQLite as a REAL rounded to amountScale.
type Amount struct {
	decimal.Decimal
}

// MarshalJSON writes the rounded decimal text as a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Round(amountScale).String()), nil
}

// UnmarshalJSON accepts both JSON numbers and quoted strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.Decimal.UnmarshalJSON(data)
}

// Scan implements sql.Scanner. NULL reads as zero.
func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		a.Decimal = decimal.Zero
	case float64:
		a.Decimal = decimal.NewFromFloat(v).Round(amountScale)
	case int64:
		a.Decimal = decimal.NewFromInt(v)
	case string:
		return a.parse(v)
	case []byte:
		return a.parse(string(v))
	default:
		return fmt.Errorf("amount: unsupported column type %T", src)
	}
	return nil
}

func (a *Amount) parse(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	a.Decimal = d
	return nil
}

// Value implements driver.Valuer.
func (a Amount) Value() (driver.Value, error) {
	f, _ := a.Round(amountScale).Float64()
	return f, nil
}

// NewAmount creates an Amount from a float64 request field.
func NewAmount(f float64) Amount {
	return Amount{decimal.NewFromFloat(f)}
}

// NewAmountFromDecimal wraps d.
func NewAmountFromDecimal(d decimal.Decimal) Amount {
	return Amount{d}
}
