package main

import (
	"github.com/spf13/cobra"

	"tradejournal/internal/config"
	"tradejournal/internal/logging"
	"tradejournal/pkg/ledger"
	"tradejournal/pkg/tradejournal"
)

// app carries state shared by subcommands.
type app struct {
	dbPath   string
	currency string
	cfg      config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "journalctl",
		Short: "Operate a PSE trade journal from the terminal",
		Long: `journalctl reads trade journals and runs the fee calculator.

Examples:
  journalctl calc buy --price 10 --shares 1000 --sell 12
  journalctl trades 1 --status active
  journalctl wallet 1`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "path to the journal database (defaults to the configured data dir)")
	cmd.PersistentFlags().StringVar(&a.currency, "currency", "PHP", "currency used to display amounts")

	cmd.AddCommand(
		newCalcCmd(a),
		newJournalsCmd(a),
		newTradesCmd(a),
		newTransactionsCmd(a),
		newWalletCmd(a),
		newConfigCmd(a),
	)
	return cmd
}

// open connects to the journal database. Logs are discarded so table output
// stays clean.
func (a *app) open() (*tradejournal.Core, error) {
	path := a.dbPath
	if path == "" {
		resolved, err := a.cfg.ResolveDBPath()
		if err != nil {
			return nil, err
		}
		path = resolved
	}
	averaging, err := ledger.ParseAveragingStrategy(a.cfg.Averaging)
	if err != nil {
		return nil, err
	}
	return tradejournal.OpenWithOptions(tradejournal.Options{
		DBPath:         path,
		Logger:         logging.Discard(),
		CommissionRate: &a.cfg.CommissionRate,
		Averaging:      averaging,
	})
}
