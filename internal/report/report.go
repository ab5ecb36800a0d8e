// Package report renders journal records as aligned text tables. Each column
// owns its formatter, so rendering never branches on column position.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the trading currency of the exchange.
const DefaultCurrency = money.PHP

// Formatter turns a numeric cell into display text.
type Formatter func(decimal.Decimal) string

// Money formats amounts in the minor units of currency code.
func Money(code string) Formatter {
	cur := money.GetCurrency(code)
	return func(d decimal.Decimal) string {
		if cur == nil {
			return d.StringFixed(2)
		}
		minor := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
		return money.New(minor, cur.Code).Display()
	}
}

// Price shows sub-peso prices at 4 decimals and everything else at 2.
func Price(d decimal.Decimal) string {
	if d.Abs().LessThan(decimal.NewFromInt(1)) && !d.IsZero() {
		return d.StringFixed(4)
	}
	return d.StringFixed(2)
}

// Shares drops the fraction for whole share counts.
func Shares(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return d.StringFixed(0)
	}
	return d.StringFixed(4)
}

// Percent formats a percentage value with a trailing sign.
func Percent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}

// Column describes one table column over rows of type T.
type Column[T any] struct {
	Key    string
	Header string
	Value  func(T) string
}

// Text builds a column that prints a string field.
func Text[T any](key, header string, value func(T) string) Column[T] {
	return Column[T]{Key: key, Header: header, Value: value}
}

// Number builds a column that prints a decimal field through f.
func Number[T any](key, header string, f Formatter, value func(T) decimal.Decimal) Column[T] {
	return Column[T]{Key: key, Header: header, Value: func(row T) string { return f(value(row)) }}
}

// Table is an ordered set of columns.
type Table[T any] struct {
	Columns []Column[T]
}

// Select returns a table with only the named columns, in the given order.
// Unknown keys are reported as an error.
func (t Table[T]) Select(keys ...string) (Table[T], error) {
	if len(keys) == 0 {
		return t, nil
	}
	byKey := make(map[string]Column[T], len(t.Columns))
	for _, c := range t.Columns {
		byKey[c.Key] = c
	}
	out := Table[T]{Columns: make([]Column[T], 0, len(keys))}
	for _, key := range keys {
		c, ok := byKey[strings.TrimSpace(key)]
		if !ok {
			return Table[T]{}, fmt.Errorf("unknown column %q", key)
		}
		out.Columns = append(out.Columns, c)
	}
	return out, nil
}

// Keys lists the column keys.
func (t Table[T]) Keys() []string {
	keys := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		keys = append(keys, c.Key)
	}
	return keys
}

// Rows formats every row into cells.
func (t Table[T]) Rows(rows []T) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(t.Columns))
		for _, c := range t.Columns {
			cells = append(cells, c.Value(row))
		}
		out = append(out, cells)
	}
	return out
}

// Render writes a header line followed by one line per row.
func (t Table[T]) Render(w io.Writer, rows []T) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		headers = append(headers, c.Header)
	}
	if _, err := fmt.Fprintln(tw, strings.Join(headers, "\t")); err != nil {
		return err
	}
	for _, cells := range t.Rows(rows) {
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}
