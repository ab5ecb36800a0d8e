package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tradejournal/internal/report"
	"tradejournal/pkg/tradejournal"
)

func newJournalsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "journals",
		Short: "List journals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := a.open()
			if err != nil {
				return err
			}
			defer core.Close()

			journals, err := core.GetJournals(ctxOf(cmd))
			if err != nil {
				return err
			}
			table := report.Table[tradejournal.Journal]{Columns: []report.Column[tradejournal.Journal]{
				report.Text("id", "ID", func(j tradejournal.Journal) string { return strconv.FormatInt(j.ID, 10) }),
				report.Text("name", "NAME", func(j tradejournal.Journal) string { return j.Name }),
				report.Text("status", "STATUS", func(j tradejournal.Journal) string { return j.Status }),
			}}
			return table.Render(cmd.OutOrStdout(), journals)
		},
	}
}

func newTradesCmd(a *app) *cobra.Command {
	var status, columns string
	cmd := &cobra.Command{
		Use:   "trades <journal-id>",
		Short: "List the lots of a journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			journalID, err := parseJournalID(args[0])
			if err != nil {
				return err
			}
			filter := tradejournal.TradeStatusFilter(strings.ToLower(status))
			switch filter {
			case tradejournal.TradesAll, tradejournal.TradesActive, tradejournal.TradesClosed:
			default:
				return fmt.Errorf("status must be active or closed, got %q", status)
			}
			table, err := report.Trades(a.currency).Select(splitColumns(columns)...)
			if err != nil {
				return err
			}

			core, err := a.open()
			if err != nil {
				return err
			}
			defer core.Close()

			trades, err := core.GetTrades(ctxOf(cmd), journalID, filter)
			if err != nil {
				return err
			}
			return table.Render(cmd.OutOrStdout(), trades)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filter by lot status: active or closed")
	cmd.Flags().StringVar(&columns, "columns", "", "comma separated columns to show")
	return cmd
}

func newTransactionsCmd(a *app) *cobra.Command {
	var stockID int64
	cmd := &cobra.Command{
		Use:   "transactions <journal-id>",
		Short: "List the trade transactions of a journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			journalID, err := parseJournalID(args[0])
			if err != nil {
				return err
			}
			core, err := a.open()
			if err != nil {
				return err
			}
			defer core.Close()

			txns, err := core.GetTradeTransactions(ctxOf(cmd), journalID, stockID)
			if err != nil {
				return err
			}
			return report.TradeTransactions(a.currency).Render(cmd.OutOrStdout(), txns)
		},
	}
	cmd.Flags().Int64Var(&stockID, "stock-id", 0, "only show transactions of this stock")
	return cmd
}

func newWalletCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "wallet <journal-id>",
		Short: "Show the wallet balance and movements of a journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			journalID, err := parseJournalID(args[0])
			if err != nil {
				return err
			}
			core, err := a.open()
			if err != nil {
				return err
			}
			defer core.Close()

			ctx := ctxOf(cmd)
			wallet, err := core.GetWallet(ctx, journalID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if wallet == nil {
				fmt.Fprintln(out, "No wallet yet. Record a DEPOSIT first.")
				return nil
			}
			fmt.Fprintf(out, "Balance: %s\n\n", report.Money(a.currency)(wallet.Balance.Decimal))

			txns, err := core.GetWalletTransactions(ctx, journalID)
			if err != nil {
				return err
			}
			return report.WalletTransactions(a.currency).Render(out, txns)
		},
	}
}

func parseJournalID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid journal id %q", raw)
	}
	return id, nil
}

func splitColumns(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
