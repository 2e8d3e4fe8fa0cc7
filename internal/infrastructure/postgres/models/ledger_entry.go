package models

import (
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/domain"
)

type LedgerEntryModel struct {
	ID 				string 				`gorm:"primaryKey;type:uuid"`
	WalletID 		string 				`gorm:"type:uuid;not null;index"`
	UserID 			string 				`gorm:"not null"`
	Amount 			int64 				`gorm:"not null"`
	Kind 			domain.LedgerKind 	`gorm:"not null"`
	TransactionID 	*string 			`gorm:"uniqueIndex"`
	OrderID 		*string 			`gorm:"index"`
	BalanceAfter 	int64 				`gorm:"not null"`
	CreatedAt 		time.Time
}

func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}
