package main

import (
	"encoding/json"
	"fmt"

	"github.com/UnknownOlympus/hermes/internal/config"
	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/routing"
	"github.com/spf13/cobra"
)

func newEstimateCmd() *cobra.Command {
	var origin, destination string

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate a route against a single traffic snapshot",
		Example: `  hermes estimate --origin 8.7642,78.1348 --destination 8.7700,78.1400
  HERMES_PROVIDER_TYPE=file HERMES_SNAPSHOT_FILE=snapshot.yaml hermes estimate --origin ... --destination ...`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, err := models.ParseGeoPoint(origin)
			if err != nil {
				return fmt.Errorf("invalid origin %q: %w", origin, err)
			}
			to, err := models.ParseGeoPoint(destination)
			if err != nil {
				return fmt.Errorf("invalid destination %q: %w", destination, err)
			}

			cfg := config.MustLoad()
			logger := setupLogger(cfg.Env, cmd.ErrOrStderr())

			provider, pool, err := openProvider(cfg, logger)
			if err != nil {
				return err
			}
			if pool != nil {
				defer pool.Close()
			}

			snapshot, err := provider.Snapshot(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get traffic snapshot: %w", err)
			}

			estimate, err := routing.EstimateRoute(from, to, *snapshot)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")

			return encoder.Encode(estimate)
		},
	}

	cmd.Flags().StringVar(&origin, "origin", "", "origin as lat,lng")
	cmd.Flags().StringVar(&destination, "destination", "", "destination as lat,lng")
	_ = cmd.MarkFlagRequired("origin")
	_ = cmd.MarkFlagRequired("destination")

	return cmd
}
