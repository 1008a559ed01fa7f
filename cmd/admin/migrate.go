package main

import (
	"fmt"

	"memoria/internal/repository/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var statusOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireDatabase(); err != nil {
				return err
			}
			ctx := cmd.Context()

			if !statusOnly {
				if err := postgres.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			v, err := postgres.MigrationVersion(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("read schema version: %w", err)
			}
			logger.Info("schema version", "version", v, "applied", !statusOnly)
			fmt.Fprintln(cmd.OutOrStdout(), "schema version", v)
			return nil
		},
	}

	cmd.Flags().BoolVar(&statusOnly, "status", false, "print the current schema version without migrating")
	return cmd
}
