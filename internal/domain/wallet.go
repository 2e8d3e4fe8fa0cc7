package domain

import "time"

const DefaultCurrency = "VND"

type Wallet struct {
	ID 			string
	UserID 		string
	Balance 	int64
	Currency 	string
	CreatedAt 	time.Time
	UpdatedAt 	time.Time
}

// WalletAudit compares the stored balance with the sum of the ledger.
type WalletAudit struct {
	WalletID 			string
	UserID 				string
	Balance 			int64
	LedgerSum 			int64
	SettledDeposits 	int64
	OutstandingCharges 	int64
}

func (a *WalletAudit) Consistent() bool {
	return a.Balance == a.LedgerSum && a.Balance == a.SettledDeposits-a.OutstandingCharges
}
