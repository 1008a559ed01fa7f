package main

import (
	"fmt"
	"io"

	"memoria/internal/repository/postgres"
	postgresFlash "memoria/internal/repository/postgres/flashcard"
	serviceFlash "memoria/internal/service/flashcard"
	"memoria/internal/templates"

	"github.com/spf13/cobra"
)

func newSeedTemplatesCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "seed-templates",
		Short: "Upsert the built-in template catalog",
		Long: `Loads the embedded template catalog and upserts every template by name.
Existing field ids are kept, so cards bound to them stay valid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := templates.NewRegistry()
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}

			if dryRun {
				printCatalog(cmd.OutOrStdout(), registry)
				return nil
			}

			if err := requireDatabase(); err != nil {
				return err
			}
			ctx := cmd.Context()
			pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer pool.Close()

			repoConfig := &postgres.RepositoryConfig{Pool: pool, Logger: logger}
			svc := serviceFlash.NewTemplateService(
				postgresFlash.NewTemplateRepository(repoConfig),
				postgres.NewTransactionManager(repoConfig),
				logger,
			)

			if err := svc.SeedCatalog(ctx, registry.Templates()); err != nil {
				return fmt.Errorf("seed templates: %w", err)
			}
			printCatalog(cmd.OutOrStdout(), registry)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the catalog without touching the database")
	return cmd
}

func printCatalog(w io.Writer, registry *templates.Registry) {
	for _, name := range registry.Names() {
		t, _ := registry.Get(name)
		fmt.Fprintf(w, "%s (%d fields)\n", name, len(t.Fields))
	}
}
