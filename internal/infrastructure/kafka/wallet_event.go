package publisher

import "time"

const (
	EventDepositSettled = "deposit.settled"
	EventOrderCharged 	= "order.charged"
	EventOrderRefunded 	= "order.refunded"
)

type WalletEvent struct {
	Type 			string		`json:"type"`
	UserID 			string		`json:"user_id"`
	WalletID 		string		`json:"wallet_id,omitempty"`
	TransactionID 	string		`json:"transaction_id,omitempty"`
	OrderID 		string		`json:"order_id,omitempty"`
	ReferenceCode 	string		`json:"reference_code,omitempty"`
	Amount 			int64		`json:"amount"`
	Balance 		int64		`json:"balance"`
	Source 			string		`json:"source,omitempty"`
	OccurredAt 		time.Time	`json:"occurred_at"`
}
