package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vnkhanh/wild-series-backend/config"
	"github.com/vnkhanh/wild-series-backend/fixtures"
)

func newSeedCommand(ctx *commandContext) *cobra.Command {
	var purge bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo catalog",
		Long:  "Load users, categories, actors, programs, seasons, episodes and comments. Run it before serving, never alongside.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := ctx.ensure()
			if err != nil {
				return err
			}
			db, err := ctx.openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			if err := config.Migrate(db); err != nil {
				return err
			}

			loader := fixtures.NewLoader(db, log)
			if err := loader.Add(fixtures.All()...); err != nil {
				return err
			}
			if purge {
				if err := loader.Purge(cmd.Context()); err != nil {
					return err
				}
			}

			refs, err := loader.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d references\n", refs.Len())
			return nil
		},
	}

	cmd.Flags().BoolVar(&purge, "purge", false, "Delete existing catalog rows first")
	return cmd
}
