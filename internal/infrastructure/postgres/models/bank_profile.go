package models

import "time"

type BankProfileModel struct {
	ID 			string	`gorm:"primaryKey;type:uuid"`
	Code 		string	`gorm:"uniqueIndex;not null"`
	Name 		string	`gorm:"not null"`
	Bin 		string
	AccountNo 	string
	AccountName string
	Visible 	bool 	
	CreatedAt	time.Time
	UpdatedAt 	time.Time
}

func (BankProfileModel) TableName() string {
	return "bank_profiles"
}
