// Package main provides memoria-admin, the operator CLI for schema
// migrations and the built-in template catalog.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"memoria/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

var (
	// cfg and logger are initialized by PersistentPreRunE.
	cfg    *config.Config
	logger *slog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "memoria-admin",
		Short:             "Administer the memoria flashcard backend",
		SilenceUsage:      true,
		PersistentPreRunE: loadEnvironment,
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSeedTemplatesCmd())
	return root
}

// loadEnvironment loads configuration and the logger for every subcommand.
func loadEnvironment(cmd *cobra.Command, args []string) error {
	// Skip init for version command
	if cmd.Name() == "version" {
		return nil
	}

	_ = godotenv.Load()

	cfg = config.Load()
	logger = config.NewLogger(cfg, nil)
	return nil
}

// requireDatabase is called by subcommands that open a connection
func requireDatabase() error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}
