package main

import (
	"fmt"

	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/migrate"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/postgres"
	"github.com/spf13/cobra"
)

var migrateSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down]",
	Short: "Apply or roll back SQL migrations",
	Args:  cobra.ExactArgs(1),
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().IntVar(&migrateSteps, "steps", 1, "number of migrations to roll back with down")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db := postgres.MustInitDB(cfg)
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	switch args[0] {
	case "up":
		return migrate.RunMigrations(db, cfg.WalletDB.MigrationsPath)
	case "down":
		return migrate.RollbackMigrations(db, cfg.WalletDB.MigrationsPath, migrateSteps)
	default:
		return fmt.Errorf("unknown direction %q, expected up or down", args[0])
	}
}
