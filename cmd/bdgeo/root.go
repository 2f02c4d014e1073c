package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/bdgeo/internal/config"
	"github.com/kailas-cloud/bdgeo/internal/version"
)

func newRootCmd() *cobra.Command {
	var g globalOptions

	cmd := &cobra.Command{
		Use:   "bdgeo",
		Short: "Fuzzy search over Bangladesh administrative regions",
		Long: `bdgeo searches divisions, districts and upazilas by English name,
Bengali name or slug, tolerating typos and partial input.

Examples:
  bdgeo search Dahka --fuzzy
  bdgeo search ঢাকা --bengali --category district
  bdgeo quick savar
  bdgeo autocomplete gazi
  bdgeo serve`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("bdgeo {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&g.env, "env", config.GetEnv(), "Environment: local, dev, docker, prod (selects config/<env>.yaml)")
	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Path to a config file (overrides --env lookup)")
	cmd.PersistentFlags().StringVar(&g.catalogDir, "catalog", "", "Directory with divisions/districts/upazilas files (default: embedded data)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(newServeCmd(&g))
	cmd.AddCommand(newSearchCmd(&g))
	cmd.AddCommand(newQuickCmd(&g))
	cmd.AddCommand(newAutocompleteCmd(&g))
	cmd.AddCommand(newAddressCmd(&g))

	return cmd
}
