package orderdto

import "github.com/LavaJover/storefront-wallet-service/internal/domain"

type OrderStatusOutput struct {
	Order 		*domain.Order
	Effect 		domain.WalletEffect
	Applied 	bool
	Balance 	int64
}
