package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"tradejournal/internal/report"
	"tradejournal/pkg/fees"
)

var now = time.Now

type calcFlags struct {
	price   string
	sell    float64
	shares  float64
	rate    float64
	year    int
	entry   float64
	cutLoss float64
	target  float64
}

func newCalcCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "PSE fee calculator",
	}
	cmd.AddCommand(newCalcBuyCmd(a), newCalcSellCmd(a), newCalcRiskCmd())
	return cmd
}

func newCalcBuyCmd(a *app) *cobra.Command {
	f := &calcFlags{}
	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Fees, net amount, break-even and targets of a buy order",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := fees.ComputeRoundTrip(fees.RoundTripInput{
				BuyPrice:  f.price,
				SellPrice: decimal.NewFromFloat(f.sell),
				Shares:    decimal.NewFromFloat(f.shares),
				Rate:      a.rate(f.rate),
				Year:      f.resolvedYear(),
			})
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", f.price, err)
			}
			m := report.Money(a.currency)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Gross:      %s\n", m(rt.Buy.GrossAmount))
			fmt.Fprintf(out, "Fees:       %s\n", m(rt.Buy.Fees))
			fmt.Fprintf(out, "Net:        %s\n", m(rt.Buy.NetAmount))
			fmt.Fprintf(out, "Break-even: %s\n", report.Price(rt.BreakEvenPrice))
			if rt.Sell != nil {
				fmt.Fprintf(out, "Sell net:   %s\n", m(rt.Sell.NetAmount))
				fmt.Fprintf(out, "Profit:     %s (%s)\n", m(rt.NetProfit), report.Percent(rt.NetProfitPercent))
			}
			fmt.Fprintln(out)
			return targetTable().Render(out, rt.Targets)
		},
	}
	cmd.Flags().StringVar(&f.price, "price", "", "buy price per share")
	cmd.Flags().Float64Var(&f.shares, "shares", 0, "number of shares")
	cmd.Flags().Float64Var(&f.sell, "sell", 0, "optional sell price for a round trip")
	cmd.Flags().Float64Var(&f.rate, "rate", 0, "broker commission rate (defaults to config)")
	cmd.Flags().IntVar(&f.year, "year", 0, "transaction year for sales tax (defaults to this year)")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("shares")
	return cmd
}

func newCalcSellCmd(a *app) *cobra.Command {
	f := &calcFlags{}
	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Fees and net proceeds of a sell order",
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := decimal.NewFromString(f.price)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", f.price, err)
			}
			s := fees.SellSummary(price, decimal.NewFromFloat(f.shares), a.rate(f.rate), f.resolvedYear())
			m := report.Money(a.currency)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Gross: %s\n", m(s.GrossAmount))
			fmt.Fprintf(out, "Fees:  %s\n", m(s.Fees))
			fmt.Fprintf(out, "Net:   %s\n", m(s.NetAmount))
			return nil
		},
	}
	cmd.Flags().StringVar(&f.price, "price", "", "sell price per share")
	cmd.Flags().Float64Var(&f.shares, "shares", 0, "number of shares")
	cmd.Flags().Float64Var(&f.rate, "rate", 0, "broker commission rate (defaults to config)")
	cmd.Flags().IntVar(&f.year, "year", 0, "transaction year for sales tax (defaults to this year)")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("shares")
	return cmd
}

func newCalcRiskCmd() *cobra.Command {
	f := &calcFlags{}
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Risk, reward and risk-reward ratio of a planned entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := decimal.NewFromFloat(f.entry)
			risk := fees.Risk(entry, decimal.NewFromFloat(f.cutLoss))
			reward := fees.Reward(entry, decimal.NewFromFloat(f.target))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Risk:   %s\n", report.Percent(risk))
			fmt.Fprintf(out, "Reward: %s\n", report.Percent(reward))
			fmt.Fprintf(out, "Ratio:  %s\n", fees.RiskRewardRatio(risk, reward).StringFixed(2))
			return nil
		},
	}
	cmd.Flags().Float64Var(&f.entry, "entry", 0, "entry price")
	cmd.Flags().Float64Var(&f.cutLoss, "cut-loss", 0, "cut-loss price")
	cmd.Flags().Float64Var(&f.target, "target", 0, "target price")
	_ = cmd.MarkFlagRequired("entry")
	return cmd
}

func targetTable() report.Table[fees.Target] {
	return report.Table[fees.Target]{Columns: []report.Column[fees.Target]{
		report.Number("percent", "TARGET", func(d decimal.Decimal) string {
			return report.Percent(d.Shift(2))
		}, func(t fees.Target) decimal.Decimal { return t.Percent }),
		report.Number("price", "PRICE", report.Price, func(t fees.Target) decimal.Decimal { return t.Price }),
	}}
}

func (a *app) rate(override float64) decimal.Decimal {
	if override > 0 {
		return decimal.NewFromFloat(override)
	}
	return a.cfg.CommissionRate
}

func (f *calcFlags) resolvedYear() int {
	if f.year > 0 {
		return f.year
	}
	return now().Year()
}
