package models

import "time"

type WalletModel struct {
	ID 			string 		`gorm:"primaryKey;type:uuid"`
	UserID 		string 		`gorm:"uniqueIndex;not null"`
	Balance 	int64 		`gorm:"not null;default:0;check:balance >= 0"`
	Currency 	string 		`gorm:"not null;default:'VND'"`
	CreatedAt 	time.Time
	UpdatedAt 	time.Time
}

func (WalletModel) TableName() string {
	return "wallets"
}
