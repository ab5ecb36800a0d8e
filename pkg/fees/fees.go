// Package fees computes broker commissions, taxes and sell targets for
// stock trades on the Philippine Stock Exchange.
package fees

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// DefaultCommissionRate is the broker commission applied when none is configured.
	DefaultCommissionRate = decimal.RequireFromString("0.0025")
	// MinimumCommission is the flat PHP floor charged by brokers per order.
	MinimumCommission = decimal.NewFromInt(20)

	vatRate            = decimal.RequireFromString("0.12")
	exchangeFeeRate    = decimal.RequireFromString("0.00015")
	salesTaxRate       = decimal.RequireFromString("0.006")
	legacySalesTaxRate = decimal.RequireFromString("0.005")

	// sell-side fee structure folded into one divisor:
	// 1 - salesTax - exchangeFee = 0.99485, commission carries VAT (1.12).
	breakEvenBase       = decimal.RequireFromString("0.99485")
	breakEvenVATFactor  = decimal.RequireFromString("1.12")
	smallTradeThreshold = decimal.NewFromInt(8000)
	balancer2           = decimal.RequireFromString("0.02")
	balancer4           = decimal.RequireFromString("0.0002")
	hundred             = decimal.NewFromInt(100)
)

const salesTaxChangeYear = 2018

// StockWorth returns price * shares.
func StockWorth(price, shares decimal.Decimal) decimal.Decimal {
	return price.Mul(shares)
}

// BrokerCommission returns worth * rate with the flat minimum applied.
// A zero rate means a commission-free broker.
func BrokerCommission(worth, rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return decimal.Zero
	}
	return decimal.Max(worth.Mul(rate), MinimumCommission)
}

// VAT returns the value added tax charged on a commission.
func VAT(commission decimal.Decimal) decimal.Decimal {
	return commission.Mul(vatRate)
}

// ExchangeFee returns the exchange transaction fee.
func ExchangeFee(worth decimal.Decimal) decimal.Decimal {
	return worth.Mul(exchangeFeeRate)
}

// SalesTax returns the stock transaction tax charged on sells. A year before
// 2018 uses the old 0.5% rate; zero means the current rate.
func SalesTax(worth decimal.Decimal, year int) decimal.Decimal {
	rate := salesTaxRate
	if year > 0 && year < salesTaxChangeYear {
		rate = legacySalesTaxRate
	}
	return worth.Mul(rate)
}

// BasicFees returns commission + VAT + exchange fee for a stock worth.
func BasicFees(worth, rate decimal.Decimal) decimal.Decimal {
	commission := BrokerCommission(worth, rate)
	return commission.Add(VAT(commission)).Add(ExchangeFee(worth))
}

// BuyFees returns the total fees of a buy order. A zero price yields zero.
func BuyFees(price, shares, rate decimal.Decimal) decimal.Decimal {
	if price.IsZero() {
		return decimal.Zero
	}
	return BasicFees(StockWorth(price, shares), rate)
}

// SellFees returns the total fees of a sell order, sales tax included.
func SellFees(price, shares, rate decimal.Decimal, year int) decimal.Decimal {
	worth := StockWorth(price, shares)
	return BasicFees(worth, rate).Add(SalesTax(worth, year))
}

// ExactBreakEvenSellPrice returns the per-share sell price at which net sell
// proceeds equal totalCost.
func ExactBreakEvenSellPrice(shares, totalCost, rate decimal.Decimal) decimal.Decimal {
	if !shares.IsPositive() {
		return decimal.Zero
	}
	divisor := breakEvenBase.Sub(breakEvenVATFactor.Mul(rate))
	return totalCost.Div(divisor).Div(shares)
}

// BreakEvenSellPrice rounds the exact break-even price up to decimalPlaces
// (2 or 4) and adds a small balancer for trades under PHP 8,000.
func BreakEvenSellPrice(shares, totalCost decimal.Decimal, decimalPlaces int32, rate decimal.Decimal) decimal.Decimal {
	if totalCost.IsZero() || !shares.IsPositive() {
		return decimal.Zero
	}
	if decimalPlaces <= 0 {
		decimalPlaces = 2
	}
	price := ExactBreakEvenSellPrice(shares, totalCost, rate).RoundCeil(decimalPlaces)
	if totalCost.LessThan(smallTradeThreshold) {
		if decimalPlaces == 2 {
			price = price.Add(balancer2)
		} else {
			price = price.Add(balancer4)
		}
	}
	return price
}

// PercentageSellPrice projects a sell price pct (e.g. 0.15 or -0.10) away
// from the break-even price.
func PercentageSellPrice(breakEvenPrice, pct decimal.Decimal) decimal.Decimal {
	return breakEvenPrice.Mul(decimal.NewFromInt(1).Add(pct))
}

// Change returns current - base.
func Change(current, base decimal.Decimal) decimal.Decimal {
	return current.Sub(base)
}

// ChangePercentage returns the percent change from base to current, or zero
// when base is zero.
func ChangePercentage(current, base decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return Change(current, base).Div(base).Mul(hundred)
}

// PriceDecimalPlaces returns 4 when the price string carries more than two
// fractional digits, otherwise 2.
func PriceDecimalPlaces(price string) int32 {
	price = strings.TrimSpace(price)
	idx := strings.IndexByte(price, '.')
	if idx < 0 {
		return 2
	}
	if len(price[idx+1:]) > 2 {
		return 4
	}
	return 2
}

// Risk returns the percent loss from entry to the cut-loss price.
func Risk(entry, cutLoss decimal.Decimal) decimal.Decimal {
	if !entry.IsPositive() || !cutLoss.IsPositive() {
		return decimal.Zero
	}
	return ChangePercentage(cutLoss, entry)
}

// Reward returns the percent gain from entry to the target price.
func Reward(entry, target decimal.Decimal) decimal.Decimal {
	if !entry.IsPositive() || !target.IsPositive() {
		return decimal.Zero
	}
	return ChangePercentage(target, entry)
}

// RiskRewardRatio returns reward / |risk|, or zero for zero risk.
func RiskRewardRatio(risk, reward decimal.Decimal) decimal.Decimal {
	if risk.IsZero() {
		return decimal.Zero
	}
	return reward.Div(risk.Abs())
}
