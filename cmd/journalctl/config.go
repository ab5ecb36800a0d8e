package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tradejournal/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialise the user configuration",
	}

	var path string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the resolved configuration to the user config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := path
			if target == "" {
				resolved, err := config.ConfigPath()
				if err != nil {
					return err
				}
				target = resolved
			}
			err := config.SaveUserConfig(target, config.UserConfig{
				DataDir:        a.cfg.DataDir,
				DBName:         a.cfg.DBName,
				Port:           a.cfg.Port,
				CommissionRate: a.cfg.CommissionRate.String(),
				Averaging:      a.cfg.Averaging,
				Review: config.ReviewConfig{
					Provider: a.cfg.Review.Provider,
					BaseURL:  a.cfg.Review.BaseURL,
					Model:    a.cfg.Review.Model,
				},
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", target)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&path, "output", "o", "", "config file path (defaults to the user config dir)")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			dbPath := a.dbPath
			if dbPath == "" {
				resolved, err := a.cfg.ResolveDBPath()
				if err != nil {
					return err
				}
				dbPath = resolved
			}
			fmt.Fprintf(out, "db_path:         %s\n", dbPath)
			fmt.Fprintf(out, "addr:            %s\n", a.cfg.Addr())
			fmt.Fprintf(out, "commission_rate: %s\n", a.cfg.CommissionRate)
			fmt.Fprintf(out, "averaging:       %s\n", a.cfg.Averaging)
			fmt.Fprintf(out, "review_provider: %s\n", valueOr(a.cfg.Review.Provider, "none"))
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
