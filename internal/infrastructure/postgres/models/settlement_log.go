package models

import (
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/domain"
)

type SettlementLogModel struct {
	ID 				string 						`gorm:"primaryKey;type:uuid"`
	Source 			domain.SettlementSource 	`gorm:"not null"`
	GatewayTxnID 	string 						`gorm:"index:idx_settlement_logs_gateway"`

	// payment as reported by the gateway
	Amount 			int64
	Content 		string 						`gorm:"type:text"`
	PayerAccount 	string
	PayerName 		string
	BankCode 		string
	ReceivedAt 		time.Time

	// processing result
	Outcome 		domain.SettlementOutcome 	`gorm:"not null;index:idx_settlement_logs_outcome"`
	TransactionID 	*string 					`gorm:"type:uuid;index"`
	ReferenceCode 	string
	Candidates 		int
	ErrorMessage 	string 						`gorm:"type:text"`
	ProcessingTime 	int64

	CreatedAt 		time.Time 					`gorm:"index:idx_settlement_logs_created"`
}

func (SettlementLogModel) TableName() string {
	return "settlement_logs"
}
