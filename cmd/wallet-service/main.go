package main

import (
	"fmt"
	"log"
	"os"

	"github.com/LavaJover/storefront-wallet-service/internal/config"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "wallet-service",
	Short: "Storefront wallet: deposits, bank-transfer settlement and order charges",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config (defaults to $WALLET_CONFIG_PATH)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig читает конфиг и настраивает slog по умолчанию.
func loadConfig() (*config.WalletConfig, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("WALLET_CONFIG_PATH")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.LogConfig)
	return cfg, nil
}
