package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultWalletRepository struct {
	DB *gorm.DB
}

func NewDefaultWalletRepository(db *gorm.DB) *DefaultWalletRepository {
	return &DefaultWalletRepository{DB: db}
}

// GetOrCreateWallet inserts an empty wallet unless the user already has one
// and returns the stored row. Safe to call concurrently for the same user.
func (r *DefaultWalletRepository) GetOrCreateWallet(ctx context.Context, userID, currency string) (*domain.Wallet, error) {
	return getOrCreateWallet(r.DB.WithContext(ctx), userID, currency)
}

func getOrCreateWallet(db *gorm.DB, userID, currency string) (*domain.Wallet, error) {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	now := time.Now().UTC()
	walletModel := models.WalletModel{
		ID: uuid.New().String(),
		UserID: userID,
		Balance: 0,
		Currency: currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&walletModel).Error; err != nil {
		return nil, fmt.Errorf("create wallet: %w", err)
	}

	var stored models.WalletModel
	if err := db.First(&stored, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("load wallet: %w", err)
	}
	return mappers.ToDomainWallet(&stored), nil
}

func (r *DefaultWalletRepository) GetWalletByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	var walletModel models.WalletModel
	if err := r.DB.WithContext(ctx).First(&walletModel, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return mappers.ToDomainWallet(&walletModel), nil
}

// AuditWallet recomputes the balance from the ledger and from the deposit and
// order tables so an operator can see whether they agree.
func (r *DefaultWalletRepository) AuditWallet(ctx context.Context, userID string) (*domain.WalletAudit, error) {
	db := r.DB.WithContext(ctx)

	var walletModel models.WalletModel
	if err := db.First(&walletModel, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}

	audit := &domain.WalletAudit{
		WalletID: walletModel.ID,
		UserID: walletModel.UserID,
		Balance: walletModel.Balance,
	}

	if err := db.Model(&models.LedgerEntryModel{}).
		Where("wallet_id = ?", walletModel.ID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&audit.LedgerSum).Error; err != nil {
		return nil, fmt.Errorf("sum ledger: %w", err)
	}

	// soft-deleted deposits were still credited
	if err := db.Unscoped().Model(&models.TransactionModel{}).
		Where("wallet_id = ? AND status = ?", walletModel.ID, domain.TransactionSuccess).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&audit.SettledDeposits).Error; err != nil {
		return nil, fmt.Errorf("sum deposits: %w", err)
	}

	if err := db.Model(&models.OrderModel{}).
		Where("user_id = ? AND wallet_charged = ?", userID, true).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&audit.OutstandingCharges).Error; err != nil {
		return nil, fmt.Errorf("sum charges: %w", err)
	}

	return audit, nil
}

// adjustBalance applies delta to the wallet and appends the matching ledger
// entry. A debit only succeeds while the balance covers it.
func adjustBalance(tx *gorm.DB, entry *models.LedgerEntryModel) (*models.WalletModel, error) {
	query := tx.Model(&models.WalletModel{}).Where("id = ?", entry.WalletID)
	if entry.Amount < 0 {
		query = query.Where("balance >= ?", -entry.Amount)
	}
	result := query.Updates(map[string]interface{}{
		"balance": gorm.Expr("balance + ?", entry.Amount),
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return nil, fmt.Errorf("update balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if entry.Amount < 0 {
			return nil, domain.ErrInsufficientBalance
		}
		return nil, domain.ErrWalletNotFound
	}

	var walletModel models.WalletModel
	if err := tx.First(&walletModel, "id = ?", entry.WalletID).Error; err != nil {
		return nil, fmt.Errorf("reload wallet: %w", err)
	}

	entry.ID = uuid.New().String()
	entry.UserID = walletModel.UserID
	entry.BalanceAfter = walletModel.Balance
	entry.CreatedAt = time.Now().UTC()
	if err := tx.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("append ledger entry: %w", err)
	}
	return &walletModel, nil
}
