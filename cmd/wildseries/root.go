package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var envFile string

	ctx := newCommandContext(&envFile)

	rootCmd := &cobra.Command{
		Use:           "wildseries",
		Short:         "Wild Series catalog backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, _, err := ctx.ensure()
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to the .env file")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newSeedCommand(ctx))

	return rootCmd
}
