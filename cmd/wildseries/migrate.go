package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vnkhanh/wild-series-backend/config"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			if err := config.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			return nil
		},
	}
}
