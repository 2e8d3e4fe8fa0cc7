package domain

import (
	"context"
	"time"
)

type WalletRepository interface {
	GetOrCreateWallet(ctx context.Context, userID, currency string) (*Wallet, error)
	GetWalletByUserID(ctx context.Context, userID string) (*Wallet, error)
	AuditWallet(ctx context.Context, userID string) (*WalletAudit, error)
}

type TransactionRepository interface {
	CreateTransaction(ctx context.Context, transaction *Transaction) error
	ReferenceCodeExists(ctx context.Context, code string) (bool, error)
	GetTransactionByID(ctx context.Context, id string) (*Transaction, error)
	GetTransactionByReference(ctx context.Context, code string) (*Transaction, error)
	GetTransactionByGatewayID(ctx context.Context, gatewayTxnID string) (*Transaction, error)
	FindPendingByAmount(ctx context.Context, amount int64, createdAfter time.Time) ([]*Transaction, error)
	ListPendingBetween(ctx context.Context, createdAfter, createdBefore time.Time) ([]*Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]*Transaction, int64, error)

	// SettleTransaction moves a pending transaction to success and credits
	// its wallet in one database transaction. ErrAlreadySettled is returned
	// when the row was no longer pending.
	SettleTransaction(ctx context.Context, id string, params SettleParams) (*Transaction, *Wallet, error)
	FailTransaction(ctx context.Context, id string, params SettleParams) (*Transaction, error)
	SoftDeleteTransaction(ctx context.Context, id, actor string) error
	RestoreTransaction(ctx context.Context, id string) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetOrderByID(ctx context.Context, orderID string) (*Order, error)
	GetOrdersByUserID(ctx context.Context, userID string) ([]*Order, error)

	// ChangeOrderStatus sets the status and applies the wallet effect in
	// one database transaction, guarded by the wallet_charged flag. A
	// non-empty from only lets orders in that status move.
	ChangeOrderStatus(ctx context.Context, orderID string, from, newStatus OrderStatus, effect WalletEffect) (*OrderStatusChange, error)
}

type SettlementLogRepository interface {
	SaveSettlementLog(ctx context.Context, log *SettlementLog) error
	GetSettlementLogs(ctx context.Context, filter SettlementLogFilter) ([]*SettlementLog, int64, error)
}

type BankProfileRepository interface {
	UpsertBankProfiles(ctx context.Context, profiles []*BankProfile) error
	GetBankProfileByCode(ctx context.Context, code string) (*BankProfile, error)
	ListBankProfiles(ctx context.Context, onlyVisible bool) ([]*BankProfile, error)
}
