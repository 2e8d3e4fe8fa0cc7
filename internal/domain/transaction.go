package domain

import "time"

type TransactionStatus string

const (
	TransactionPending TransactionStatus = "pending"
	TransactionSuccess TransactionStatus = "success"
	TransactionFailed  TransactionStatus = "failed"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionPending, TransactionSuccess, TransactionFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the transaction can no longer change state.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionSuccess || s == TransactionFailed
}

type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodMomo         PaymentMethod = "momo"
	MethodCash         PaymentMethod = "cash"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodBankTransfer, MethodMomo, MethodCash:
		return true
	}
	return false
}

type Transaction struct {
	ID 				string
	UserID 			string
	WalletID 		string
	Amount 			int64
	Method 			PaymentMethod
	Bank 			string
	ReferenceCode 	string
	Note 			string
	Status 			TransactionStatus
	ConfirmedBy 	string
	ConfirmedAt 	*time.Time
	GatewayTxnID 	string
	PayerAccount 	string
	PayerName 		string
	BankProfileID 	string
	CreatedAt 		time.Time
	UpdatedAt 		time.Time
	DeletedAt 		*time.Time
	DeletedBy 		string
}

type TransactionFilter struct {
	UserID 			string
	Status 			TransactionStatus
	IncludeDeleted 	bool
	Limit 			int
	Offset 			int
}

// SettleParams carries what the confirming side knows about the payment.
type SettleParams struct {
	ConfirmedBy 	string
	ConfirmedAt 	time.Time
	GatewayTxnID 	string
	PayerAccount 	string
	PayerName 		string
}
