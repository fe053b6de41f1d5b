package main

import (
	"github.com/amaumene/gostremioagg/internal/config"
	"github.com/amaumene/gostremioagg/internal/constants"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "gostremioagg",
		Short: "Aggregate and parse Torrentio streams across debrid services",
		Long: `gostremioagg - Torrentio stream aggregation

Queries Torrentio once per configured debrid service (or once for all of
them), parses the free-text results into structured stream records and
merges them into a single list.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "",
		"config file (JSON, TOML or YAML); defaults to $"+config.ConfigFileEnv)

	cmd.Version = constants.AddonVersion
	cmd.SetVersionTemplate("gostremioagg {{.Version}}\n")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newStreamsCmd(opts))
	return cmd
}

func (o *rootOptions) load() (*config.Config, error) {
	if o.configFile != "" {
		return config.LoadFile(o.configFile)
	}
	return config.Load()
}
