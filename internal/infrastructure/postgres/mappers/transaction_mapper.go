package mappers

import (
	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	transaction := &domain.Transaction{
		ID: model.ID,
		UserID: model.UserID,
		WalletID: model.WalletID,
		Amount: model.Amount,
		Method: model.Method,
		Bank: model.Bank,
		ReferenceCode: model.ReferenceCode,
		Note: model.Note,
		Status: model.Status,
		ConfirmedBy: model.ConfirmedBy,
		ConfirmedAt: model.ConfirmedAt,
		PayerAccount: model.PayerAccount,
		PayerName: model.PayerName,
		BankProfileID: model.BankProfileID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		DeletedBy: model.DeletedBy,
	}
	if model.GatewayTxnID != nil {
		transaction.GatewayTxnID = *model.GatewayTxnID
	}
	if model.DeletedAt.Valid {
		deletedAt := model.DeletedAt.Time
		transaction.DeletedAt = &deletedAt
	}
	return transaction
}

func ToGORMTransaction(transaction *domain.Transaction) *models.TransactionModel {
	model := &models.TransactionModel{
		ID: transaction.ID,
		UserID: transaction.UserID,
		WalletID: transaction.WalletID,
		Amount: transaction.Amount,
		Method: transaction.Method,
		Bank: transaction.Bank,
		ReferenceCode: transaction.ReferenceCode,
		Note: transaction.Note,
		Status: transaction.Status,
		ConfirmedBy: transaction.ConfirmedBy,
		ConfirmedAt: transaction.ConfirmedAt,
		GatewayTxnID: optionalString(transaction.GatewayTxnID),
		PayerAccount: transaction.PayerAccount,
		PayerName: transaction.PayerName,
		BankProfileID: transaction.BankProfileID,
		CreatedAt: transaction.CreatedAt,
		UpdatedAt: transaction.UpdatedAt,
		DeletedBy: transaction.DeletedBy,
	}
	if transaction.DeletedAt != nil {
		model.DeletedAt = gorm.DeletedAt{Time: *transaction.DeletedAt, Valid: true}
	}
	return model
}

func ToDomainWallet(model *models.WalletModel) *domain.Wallet {
	return &domain.Wallet{
		ID: model.ID,
		UserID: model.UserID,
		Balance: model.Balance,
		Currency: model.Currency,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToDomainLedgerEntry(model *models.LedgerEntryModel) *domain.LedgerEntry {
	entry := &domain.LedgerEntry{
		ID: model.ID,
		WalletID: model.WalletID,
		UserID: model.UserID,
		Amount: model.Amount,
		Kind: model.Kind,
		BalanceAfter: model.BalanceAfter,
		CreatedAt: model.CreatedAt,
	}
	if model.TransactionID != nil {
		entry.TransactionID = *model.TransactionID
	}
	if model.OrderID != nil {
		entry.OrderID = *model.OrderID
	}
	return entry
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
