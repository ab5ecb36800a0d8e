package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// AveragingStrategy folds a new fill into a running per-share average.
type AveragingStrategy interface {
	Name() string
	Average(prevAvg, prevShares, fillPrice, fillShares decimal.Decimal) decimal.Decimal
}

// TwoTermAverage averages the previous average with the new fill price,
// ignoring fill sizes. A zero previous average takes the fill price.
type TwoTermAverage struct{}

// Name implements AveragingStrategy.
func (TwoTermAverage) Name() string { return "two_term" }

// Average implements AveragingStrategy.
func (TwoTermAverage) Average(prevAvg, _, fillPrice, _ decimal.Decimal) decimal.Decimal {
	if prevAvg.IsZero() {
		return fillPrice
	}
	return prevAvg.Add(fillPrice).Div(two)
}

// WeightedAverage weights each fill price by its share count.
type WeightedAverage struct{}

// Name implements AveragingStrategy.
func (WeightedAverage) Name() string { return "weighted" }

// Average implements AveragingStrategy.
func (WeightedAverage) Average(prevAvg, prevShares, fillPrice, fillShares decimal.Decimal) decimal.Decimal {
	total := prevShares.Add(fillShares)
	if !prevShares.IsPositive() || !total.IsPositive() {
		return fillPrice
	}
	return prevAvg.Mul(prevShares).Add(fillPrice.Mul(fillShares)).Div(total)
}

// ParseAveragingStrategy resolves a strategy by name. Empty selects two_term.
func ParseAveragingStrategy(name string) (AveragingStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "two_term", "two-term":
		return TwoTermAverage{}, nil
	case "weighted", "shares_weighted":
		return WeightedAverage{}, nil
	default:
		return nil, fmt.Errorf("unknown averaging strategy: %q", name)
	}
}
