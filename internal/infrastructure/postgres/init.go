package postgres

import (
	"log"
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/config"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.WalletConfig) *gorm.DB {
	db, err := InitDB(cfg.WalletDB.Dsn)
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}
	return db
}

func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate строит схему по моделям. В проде схему ведут SQL-миграции.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.WalletModel{},
		&models.TransactionModel{},
		&models.OrderModel{},
		&models.LedgerEntryModel{},
		&models.SettlementLogModel{},
		&models.BankProfileModel{},
	)
}
