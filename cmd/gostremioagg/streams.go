package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/amaumene/gostremioagg/internal/models"
	"github.com/spf13/cobra"
)

type streamsOptions struct {
	userConfig string
	mediaType  string
	id         string
	addonID    string
}

func newStreamsCmd(root *rootOptions) *cobra.Command {
	opts := &streamsOptions{}

	cmd := &cobra.Command{
		Use:   "streams",
		Short: "Aggregate streams for one title and print them as JSON",
		Example: `  gostremioagg streams --user-config services.json --type movie --id tt0111161
  gostremioagg streams --user-config services.json --type series --id tt0903747:1:2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}

			userConfig, err := readUserConfig(opts.userConfig)
			if err != nil {
				return err
			}

			req, err := models.ParseStreamRequest(opts.mediaType, opts.id)
			if err != nil {
				return err
			}

			addonID := opts.addonID
			if addonID == "" {
				addonID = cfg.AddonID
			}

			a := newApp(cfg, cmd.ErrOrStderr())
			streams := a.aggregator.Aggregate(cmd.Context(), userConfig, req, addonID)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(models.StreamResponse{Streams: streams})
		},
	}

	cmd.Flags().StringVar(&opts.userConfig, "user-config", "", "JSON file with services and torrentio options (empty for an unscoped query)")
	cmd.Flags().StringVar(&opts.mediaType, "type", "movie", "content type: movie or series")
	cmd.Flags().StringVar(&opts.id, "id", "", "Stremio id, e.g. tt0903747:1:2")
	cmd.Flags().StringVar(&opts.addonID, "addon-id", "", "addon instance id stamped on every stream (defaults to addon.id)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func readUserConfig(path string) (models.UserConfig, error) {
	var cfg models.UserConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read user config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse user config %s: %w", path, err)
	}
	return cfg, nil
}
