package models

import (
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/domain"
)

type OrderModel struct {
	ID 			  	string  			`gorm:"primaryKey;type:uuid"`
	UserID 	  		string  			`gorm:"not null;index:idx_orders_user"`
	TotalAmount 	int64 				`gorm:"not null"`
	Status 		  	domain.OrderStatus	`gorm:"not null;default:'pending';index"`
	WalletCharged 	bool 				`gorm:"not null;default:false"`
	PaymentMethod 	string 				`gorm:"not null;default:'wallet'"`
	CreatedAt 	  	time.Time			`gorm:"index:idx_orders_user"`
	UpdatedAt 	  	time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}
