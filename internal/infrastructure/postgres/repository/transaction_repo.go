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
)

type DefaultTransactionRepository struct {
	DB *gorm.DB
}

func NewDefaultTransactionRepository(db *gorm.DB) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{DB: db}
}

func (r *DefaultTransactionRepository) CreateTransaction(ctx context.Context, transaction *domain.Transaction) error {
	transactionModel := mappers.ToGORMTransaction(transaction)
	if err := r.DB.WithContext(ctx).Create(transactionModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateReference
		}
		return err
	}
	return nil
}

// ReferenceCodeExists also looks at soft-deleted rows.
func (r *DefaultTransactionRepository) ReferenceCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Unscoped().
		Model(&models.TransactionModel{}).
		Where("reference_code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *DefaultTransactionRepository) GetTransactionByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if !isUUID(id) {
		return nil, domain.ErrTransactionNotFound
	}
	return r.first(ctx, "id = ?", id)
}

func (r *DefaultTransactionRepository) GetTransactionByReference(ctx context.Context, code string) (*domain.Transaction, error) {
	return r.first(ctx, "reference_code = ?", code)
}

func (r *DefaultTransactionRepository) GetTransactionByGatewayID(ctx context.Context, gatewayTxnID string) (*domain.Transaction, error) {
	var transactionModel models.TransactionModel
	if err := r.DB.WithContext(ctx).Unscoped().First(&transactionModel, "gateway_txn_id = ?", gatewayTxnID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return mappers.ToDomainTransaction(&transactionModel), nil
}

func (r *DefaultTransactionRepository) first(ctx context.Context, query string, args ...interface{}) (*domain.Transaction, error) {
	var transactionModel models.TransactionModel
	if err := r.DB.WithContext(ctx).Where(query, args...).First(&transactionModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return mappers.ToDomainTransaction(&transactionModel), nil
}

func (r *DefaultTransactionRepository) FindPendingByAmount(ctx context.Context, amount int64, createdAfter time.Time) ([]*domain.Transaction, error) {
	var transactionModels []models.TransactionModel
	if err := r.DB.WithContext(ctx).
		Where("status = ? AND amount = ? AND created_at >= ?", domain.TransactionPending, amount, createdAfter).
		Order("created_at DESC").
		Find(&transactionModels).Error; err != nil {
		return nil, err
	}
	return toDomainTransactions(transactionModels), nil
}

func (r *DefaultTransactionRepository) ListPendingBetween(ctx context.Context, createdAfter, createdBefore time.Time) ([]*domain.Transaction, error) {
	var transactionModels []models.TransactionModel
	if err := r.DB.WithContext(ctx).
		Where("status = ? AND created_at >= ? AND created_at <= ?", domain.TransactionPending, createdAfter, createdBefore).
		Order("created_at ASC").
		Find(&transactionModels).Error; err != nil {
		return nil, err
	}
	return toDomainTransactions(transactionModels), nil
}

func (r *DefaultTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, int64, error) {
	query := r.DB.WithContext(ctx).Model(&models.TransactionModel{})
	if filter.IncludeDeleted {
		query = query.Unscoped()
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var transactionModels []models.TransactionModel
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&transactionModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainTransactions(transactionModels), total, nil
}

func (r *DefaultTransactionRepository) SettleTransaction(ctx context.Context, id string, params domain.SettleParams) (*domain.Transaction, *domain.Wallet, error) {
	if !isUUID(id) {
		return nil, nil, domain.ErrTransactionNotFound
	}
	var (
		settled models.TransactionModel
		wallet  *models.WalletModel
	)

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := finishPending(tx, id, domain.TransactionSuccess, params); err != nil {
			return err
		}
		if err := tx.First(&settled, "id = ?", id).Error; err != nil {
			return fmt.Errorf("reload transaction: %w", err)
		}

		transactionID := settled.ID
		var err error
		wallet, err = adjustBalance(tx, &models.LedgerEntryModel{
			WalletID: settled.WalletID,
			Amount: settled.Amount,
			Kind: domain.LedgerDeposit,
			TransactionID: &transactionID,
		})
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return mappers.ToDomainTransaction(&settled), mappers.ToDomainWallet(wallet), nil
}

func (r *DefaultTransactionRepository) FailTransaction(ctx context.Context, id string, params domain.SettleParams) (*domain.Transaction, error) {
	if !isUUID(id) {
		return nil, domain.ErrTransactionNotFound
	}
	var failed models.TransactionModel
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := finishPending(tx, id, domain.TransactionFailed, params); err != nil {
			return err
		}
		return tx.First(&failed, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainTransaction(&failed), nil
}

// finishPending is the pending -> terminal compare-and-set. Whoever loses the
// race sees zero affected rows.
func finishPending(tx *gorm.DB, id string, status domain.TransactionStatus, params domain.SettleParams) error {
	confirmedAt := params.ConfirmedAt
	if confirmedAt.IsZero() {
		confirmedAt = time.Now().UTC()
	}
	updates := map[string]interface{}{
		"status": status,
		"confirmed_by": params.ConfirmedBy,
		"confirmed_at": confirmedAt,
		"updated_at": time.Now().UTC(),
	}
	if params.GatewayTxnID != "" {
		updates["gateway_txn_id"] = params.GatewayTxnID
	}
	if params.PayerAccount != "" {
		updates["payer_account"] = params.PayerAccount
	}
	if params.PayerName != "" {
		updates["payer_name"] = params.PayerName
	}

	result := tx.Model(&models.TransactionModel{}).
		Where("id = ? AND status = ?", id, domain.TransactionPending).
		Updates(updates)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateGatewayTxn
		}
		return fmt.Errorf("update transaction status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.TransactionModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrTransactionNotFound
		}
		return domain.ErrAlreadySettled
	}
	return nil
}

func (r *DefaultTransactionRepository) SoftDeleteTransaction(ctx context.Context, id, actor string) error {
	if !isUUID(id) {
		return domain.ErrTransactionNotFound
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.TransactionModel{}).
			Where("id = ?", id).
			Update("deleted_by", actor).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.TransactionModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrTransactionNotFound
		}
		return nil
	})
}

func (r *DefaultTransactionRepository) RestoreTransaction(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.ErrTransactionNotFound
	}
	result := r.DB.WithContext(ctx).Unscoped().
		Model(&models.TransactionModel{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Updates(map[string]interface{}{
			"deleted_at": nil,
			"deleted_by": "",
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func toDomainTransactions(transactionModels []models.TransactionModel) []*domain.Transaction {
	transactions := make([]*domain.Transaction, 0, len(transactionModels))
	for i := range transactionModels {
		transactions = append(transactions, mappers.ToDomainTransaction(&transactionModels[i]))
	}
	return transactions
}

// isUUID keeps malformed path ids away from uuid columns, where postgres
// would fail the query instead of finding nothing.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
