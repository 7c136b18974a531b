package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdulachik/descricoes/internal/config"
	"github.com/abdulachik/descricoes/internal/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the descriptions database",
	Long: `Apply pending schema migrations to the accounts, descriptions and
analytics tables. With --status only the applied versions are printed.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().Bool("status", false, "list applied migrations without changing the database")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	statusOnly, _ := cmd.Flags().GetBool("status")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open %s: %w", cfg.DatabasePath, err)
	}
	defer store.Close()

	before, err := store.MigrationVersions(ctx)
	if err != nil {
		return err
	}

	if statusOnly {
		if len(before) == 0 {
			fmt.Println("No migrations applied.")
			return nil
		}
		for _, v := range before {
			fmt.Println(v)
		}
		return nil
	}

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	after, err := store.MigrationVersions(ctx)
	if err != nil {
		return err
	}

	slog.Info("database ready",
		"path", cfg.DatabasePath,
		"applied", len(after)-len(before),
		"total", len(after),
	)
	return nil
}
