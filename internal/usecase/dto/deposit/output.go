package depositdto

import "github.com/LavaJover/storefront-wallet-service/internal/domain"

type DepositOutput struct {
	Transaction *domain.Transaction
	QR 			*domain.QRDescriptor
}

type WalletInfoOutput struct {
	Wallet 				*domain.Wallet
	RecentTransactions 	[]*domain.Transaction
}

type TransactionStatusOutput struct {
	Transaction *domain.Transaction
	Balance 	int64
}
