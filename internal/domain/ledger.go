package domain

import "time"

type LedgerKind string

const (
	LedgerDeposit     LedgerKind = "deposit"
	LedgerOrderCharge LedgerKind = "order_charge"
	LedgerOrderRefund LedgerKind = "order_refund"
)

// LedgerEntry is one signed balance mutation. Deposits and refunds are
// positive, order charges negative.
type LedgerEntry struct {
	ID 				string
	WalletID 		string
	UserID 			string
	Amount 			int64
	Kind 			LedgerKind
	TransactionID 	string
	OrderID 		string
	BalanceAfter 	int64
	CreatedAt 		time.Time
}
