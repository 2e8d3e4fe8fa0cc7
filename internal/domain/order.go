package domain

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCompleted OrderStatus = "completed"
	OrderDelivered OrderStatus = "delivered"
	OrderFailed    OrderStatus = "failed"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderCompleted, OrderDelivered, OrderFailed, OrderCancelled:
		return true
	}
	return false
}

// IsCharging reports whether entering s debits the wallet.
func (s OrderStatus) IsCharging() bool {
	return s == OrderPaid || s == OrderCompleted || s == OrderDelivered
}

// IsReversing reports whether entering s gives a previous debit back.
func (s OrderStatus) IsReversing() bool {
	return s == OrderFailed || s == OrderCancelled
}

type Order struct {
	ID 				string
	UserID 			string
	TotalAmount 	int64
	Status 			OrderStatus
	WalletCharged 	bool
	PaymentMethod 	string
	CreatedAt 		time.Time
	UpdatedAt 		time.Time
}

type WalletEffect string

const (
	EffectNone   WalletEffect = "none"
	EffectCharge WalletEffect = "charge"
	EffectRefund WalletEffect = "refund"
)

// OrderStatusChange is the result of an applied status transition. Applied is
// false when the wallet effect had already been applied before.
type OrderStatusChange struct {
	Order 		*Order
	Effect 		WalletEffect
	Applied 	bool
	Balance 	int64
}
