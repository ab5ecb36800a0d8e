package fees

import "github.com/shopspring/decimal"

// TargetPercents are the sell-at projections shown next to a break-even price.
var TargetPercents = []decimal.Decimal{
	decimal.RequireFromString("0.15"),
	decimal.RequireFromString("0.10"),
	decimal.RequireFromString("0.08"),
	decimal.RequireFromString("0.05"),
	decimal.RequireFromString("0.03"),
	decimal.RequireFromString("-0.03"),
	decimal.RequireFromString("-0.05"),
	decimal.RequireFromString("-0.08"),
	decimal.RequireFromString("-0.10"),
	decimal.RequireFromString("-0.15"),
}

// Target is a projected sell price at a percentage away from break-even.
type Target struct {
	Percent decimal.Decimal `json:"percent"`
	Price   decimal.Decimal `json:"price"`
}

// OrderSummary holds the amounts of one side of an order.
type OrderSummary struct {
	GrossAmount decimal.Decimal `json:"gross_amount"`
	Fees        decimal.Decimal `json:"fees"`
	NetAmount   decimal.Decimal `json:"net_amount"`
}

// BuySummary computes a buy order: net amount is gross plus fees.
func BuySummary(price, shares, rate decimal.Decimal) OrderSummary {
	gross := StockWorth(price, shares)
	f := BuyFees(price, shares, rate)
	return OrderSummary{GrossAmount: gross, Fees: f, NetAmount: gross.Add(f)}
}

// SellSummary computes a sell order: net amount is gross minus fees.
func SellSummary(price, shares, rate decimal.Decimal, year int) OrderSummary {
	gross := StockWorth(price, shares)
	f := SellFees(price, shares, rate, year)
	return OrderSummary{GrossAmount: gross, Fees: f, NetAmount: gross.Sub(f)}
}

// RoundTrip describes a buy followed by a sell of the same shares.
type RoundTrip struct {
	Buy              OrderSummary    `json:"buy"`
	Sell             *OrderSummary   `json:"sell,omitempty"`
	BreakEvenPrice   decimal.Decimal `json:"break_even_price"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	NetProfitPercent decimal.Decimal `json:"net_profit_percent"`
	Targets          []Target        `json:"targets"`
}

// RoundTripInput holds the calculator inputs. BuyPrice is a string so its
// precision decides whether prices are quoted at 2 or 4 decimals.
type RoundTripInput struct {
	BuyPrice  string
	SellPrice decimal.Decimal
	Shares    decimal.Decimal
	Rate      decimal.Decimal
	Year      int
}

// ComputeRoundTrip returns buy and sell amounts, the break-even price and
// percentage targets. A zero SellPrice skips the sell side.
func ComputeRoundTrip(in RoundTripInput) (RoundTrip, error) {
	buyPrice, err := decimal.NewFromString(in.BuyPrice)
	if err != nil {
		return RoundTrip{}, err
	}
	buy := BuySummary(buyPrice, in.Shares, in.Rate)
	breakEven := BreakEvenSellPrice(in.Shares, buy.NetAmount, PriceDecimalPlaces(in.BuyPrice), in.Rate)

	result := RoundTrip{
		Buy:            buy,
		BreakEvenPrice: breakEven,
		Targets:        Targets(breakEven),
	}
	if in.SellPrice.IsPositive() {
		sell := SellSummary(in.SellPrice, in.Shares, in.Rate, in.Year)
		result.Sell = &sell
		result.NetProfit = sell.NetAmount.Sub(buy.NetAmount)
		result.NetProfitPercent = ChangePercentage(sell.NetAmount, buy.NetAmount)
	}
	return result, nil
}

// Targets projects TargetPercents from a break-even price.
func Targets(breakEven decimal.Decimal) []Target {
	out := make([]Target, 0, len(TargetPercents))
	for _, pct := range TargetPercents {
		out = append(out, Target{Percent: pct, Price: PercentageSellPrice(breakEven, pct)})
	}
	return out
}
