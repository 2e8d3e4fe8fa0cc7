package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/LavaJover/storefront-wallet-service/internal/domain"
)

type AdminUsecase interface {
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, int64, error)
	DeleteTransaction(ctx context.Context, transactionID, adminID string) error
	RestoreTransaction(ctx context.Context, transactionID string) error
	AuditWallet(ctx context.Context, userID string) (*domain.WalletAudit, error)
}

type DefaultAdminUsecase struct {
	TransactionRepo domain.TransactionRepository
	WalletRepo 		domain.WalletRepository
}

func NewDefaultAdminUsecase(transactionRepo domain.TransactionRepository, walletRepo domain.WalletRepository) *DefaultAdminUsecase {
	return &DefaultAdminUsecase{
		TransactionRepo: transactionRepo,
		WalletRepo: walletRepo,
	}
}

func (uc *DefaultAdminUsecase) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, int64, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, filter.Status)
	}
	return uc.TransactionRepo.ListTransactions(ctx, filter)
}

// DeleteTransaction hides the row; its reference code stays reserved and a
// credited amount stays on the wallet.
func (uc *DefaultAdminUsecase) DeleteTransaction(ctx context.Context, transactionID, adminID string) error {
	if err := uc.TransactionRepo.SoftDeleteTransaction(ctx, transactionID, adminID); err != nil {
		return err
	}
	slog.Info("transaction deleted", "transaction_id", transactionID, "admin_id", adminID)
	return nil
}

func (uc *DefaultAdminUsecase) RestoreTransaction(ctx context.Context, transactionID string) error {
	if err := uc.TransactionRepo.RestoreTransaction(ctx, transactionID); err != nil {
		return err
	}
	slog.Info("transaction restored", "transaction_id", transactionID)
	return nil
}

func (uc *DefaultAdminUsecase) AuditWallet(ctx context.Context, userID string) (*domain.WalletAudit, error) {
	audit, err := uc.WalletRepo.AuditWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !audit.Consistent() {
		slog.Error("wallet balance drift",
			"user_id", userID,
			"balance", audit.Balance,
			"ledger_sum", audit.LedgerSum,
			"settled_deposits", audit.SettledDeposits,
			"outstanding_charges", audit.OutstandingCharges,
		)
	}
	return audit, nil
}
