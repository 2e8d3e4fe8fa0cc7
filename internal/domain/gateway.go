package domain

import (
	"context"
	"time"
)

// GatewayQuery bounds a list request. Until is inclusive and left zero for
// the newest page.
type GatewayQuery struct {
	AccountNumber 	string
	Since 			time.Time
	Until 			time.Time
	Limit 			int
}

// GatewayPage is one page of the gateway's transfer list, newest first.
// Rows and Oldest describe everything the gateway returned, outgoing
// transfers included, so callers can tell a full page from a short one.
type GatewayPage struct {
	Payments 	[]GatewayPayment
	Rows 		int
	Oldest 		time.Time
}

// PaymentGateway is the outbound query side of the bank-transfer gateway.
type PaymentGateway interface {
	ListTransactions(ctx context.Context, query GatewayQuery) (*GatewayPage, error)
}
