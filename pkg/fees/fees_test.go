package fees

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, got, want decimal.Decimal, msg string) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s: got %s, want %s", msg, got, want)
	}
}

func TestBuyFees(t *testing.T) {
	// stockWorth=1000; commission=max(2.5,20)=20; vat=2.4; exchange=0.15
	assertDecimal(t, BuyFees(d("100"), d("10"), DefaultCommissionRate), d("22.55"), "buy fees")
	assertDecimal(t, BuyFees(decimal.Zero, d("10"), DefaultCommissionRate), decimal.Zero, "zero price")
}

func TestBrokerCommission(t *testing.T) {
	tests := []struct {
		name  string
		worth string
		rate  string
		want  string
	}{
		{"minimum applies", "1000", "0.0025", "20"},
		{"above minimum", "100000", "0.0025", "250"},
		{"zero rate", "100000", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, BrokerCommission(d(tt.worth), d(tt.rate)), d(tt.want), tt.name)
		})
	}
}

func TestSalesTaxYear(t *testing.T) {
	assertDecimal(t, SalesTax(d("1000"), 0), d("6"), "current rate")
	assertDecimal(t, SalesTax(d("1000"), 2018), d("6"), "2018 rate")
	assertDecimal(t, SalesTax(d("1000"), 2017), d("5"), "legacy rate")
}

func TestSellFeesExceedBuyFees(t *testing.T) {
	buy := BuyFees(d("12.5"), d("1000"), DefaultCommissionRate)
	sell := SellFees(d("12.5"), d("1000"), DefaultCommissionRate, 0)
	if !sell.GreaterThan(buy) {
		t.Fatalf("expected sell fees %s > buy fees %s", sell, buy)
	}
	assertDecimal(t, sell.Sub(buy), d("75"), "sales tax difference")
}

func TestExactBreakEvenSellPrice(t *testing.T) {
	if got := ExactBreakEvenSellPrice(decimal.Zero, d("5000"), DefaultCommissionRate); !got.IsZero() {
		t.Fatalf("expected zero for zero shares, got %s", got)
	}
	got := ExactBreakEvenSellPrice(d("100"), d("5000"), DefaultCommissionRate)
	want := d("5000").Div(d("0.99205")).Div(d("100"))
	assertDecimal(t, got, want, "exact break-even")
}

func TestBreakEvenSellPrice(t *testing.T) {
	exact := ExactBreakEvenSellPrice(d("100"), d("5000"), DefaultCommissionRate)
	want := exact.RoundCeil(2).Add(d("0.02"))
	got := BreakEvenSellPrice(d("100"), d("5000"), 2, DefaultCommissionRate)
	assertDecimal(t, got, want, "small trade break-even")
	assertDecimal(t, got, d("50.43"), "small trade break-even literal")

	large := BreakEvenSellPrice(d("1000"), d("10000"), 2, DefaultCommissionRate)
	assertDecimal(t, large, d("10.09"), "large trade has no balancer")

	four := BreakEvenSellPrice(d("100"), d("5000"), 4, DefaultCommissionRate)
	assertDecimal(t, four, exact.RoundCeil(4).Add(d("0.0002")), "four decimals")

	if got := BreakEvenSellPrice(d("100"), decimal.Zero, 2, DefaultCommissionRate); !got.IsZero() {
		t.Fatalf("expected zero for zero cost, got %s", got)
	}
}

func TestPercentageSellPrice(t *testing.T) {
	assertDecimal(t, PercentageSellPrice(d("10"), d("0.15")), d("11.5"), "gain")
	assertDecimal(t, PercentageSellPrice(d("10"), d("-0.10")), d("9"), "loss")
}

func TestChangePercentage(t *testing.T) {
	assertDecimal(t, ChangePercentage(d("12"), d("10")), d("20"), "gain")
	assertDecimal(t, ChangePercentage(d("12"), decimal.Zero), decimal.Zero, "zero base")
}

func TestPriceDecimalPlaces(t *testing.T) {
	tests := map[string]int32{
		"10":     2,
		"10.5":   2,
		"10.50":  2,
		"0.0051": 4,
		"10.500": 4,
	}
	for in, want := range tests {
		if got := PriceDecimalPlaces(in); got != want {
			t.Errorf("PriceDecimalPlaces(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestRiskReward(t *testing.T) {
	risk := Risk(d("10"), d("9"))
	reward := Reward(d("10"), d("12"))
	assertDecimal(t, risk, d("-10"), "risk")
	assertDecimal(t, reward, d("20"), "reward")
	assertDecimal(t, RiskRewardRatio(risk, reward), d("2"), "ratio")
	assertDecimal(t, RiskRewardRatio(decimal.Zero, reward), decimal.Zero, "zero risk")
	assertDecimal(t, Risk(decimal.Zero, d("9")), decimal.Zero, "no entry")
}

func TestComputeRoundTrip(t *testing.T) {
	rt, err := ComputeRoundTrip(RoundTripInput{
		BuyPrice:  "10",
		SellPrice: d("12"),
		Shares:    d("1000"),
		Rate:      DefaultCommissionRate,
	})
	if err != nil {
		t.Fatalf("ComputeRoundTrip: %v", err)
	}
	assertDecimal(t, rt.Buy.GrossAmount, d("10000"), "buy gross")
	assertDecimal(t, rt.Buy.Fees, d("29.5"), "buy fees")
	assertDecimal(t, rt.Buy.NetAmount, d("10029.5"), "buy net")
	if rt.Sell == nil {
		t.Fatal("expected sell side")
	}
	assertDecimal(t, rt.Sell.NetAmount, d("12000").Sub(SellFees(d("12"), d("1000"), DefaultCommissionRate, 0)), "sell net")
	assertDecimal(t, rt.NetProfit, rt.Sell.NetAmount.Sub(rt.Buy.NetAmount), "net profit")
	if len(rt.Targets) != len(TargetPercents) {
		t.Fatalf("expected %d targets, got %d", len(TargetPercents), len(rt.Targets))
	}

	if _, err := ComputeRoundTrip(RoundTripInput{BuyPrice: "abc", Shares: d("1")}); err == nil {
		t.Fatal("expected error for invalid price")
	}

	noSell, err := ComputeRoundTrip(RoundTripInput{BuyPrice: "10", Shares: d("100"), Rate: DefaultCommissionRate})
	if err != nil {
		t.Fatalf("ComputeRoundTrip: %v", err)
	}
	if noSell.Sell != nil {
		t.Fatal("expected no sell side without a sell price")
	}
}
