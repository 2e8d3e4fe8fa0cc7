package models

import (
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"gorm.io/gorm"
)

type TransactionModel struct {
	ID 				string 						`gorm:"primaryKey;type:uuid"`
	UserID 			string 						`gorm:"not null;index:idx_transactions_user"`
	WalletID 		string 						`gorm:"type:uuid;not null;index"`
	Amount 			int64 						`gorm:"not null;index:idx_transactions_pending_amount"`
	Method 			domain.PaymentMethod 		`gorm:"not null;default:'bank_transfer'"`
	Bank 			string 						`gorm:"not null;default:'mb'"`
	ReferenceCode 	string 						`gorm:"not null;uniqueIndex"`
	Note 			string
	Status 			domain.TransactionStatus 	`gorm:"not null;default:'pending';index:idx_transactions_pending_amount"`
	ConfirmedBy 	string
	ConfirmedAt 	*time.Time
	GatewayTxnID 	*string 					`gorm:"uniqueIndex"`
	PayerAccount 	string
	PayerName 		string
	BankProfileID 	string
	CreatedAt 		time.Time 					`gorm:"index"`
	UpdatedAt 		time.Time
	DeletedAt 		gorm.DeletedAt 				`gorm:"index"`
	DeletedBy 		string
}

func (TransactionModel) TableName() string {
	return "transactions"
}
