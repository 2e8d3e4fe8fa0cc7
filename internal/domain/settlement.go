package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SettlementOutcome string

const (
	OutcomeSettled        SettlementOutcome = "settled"
	OutcomeAlreadySettled SettlementOutcome = "already_settled"
	OutcomeUnmatched      SettlementOutcome = "unmatched"
	OutcomeAmbiguous      SettlementOutcome = "ambiguous"
	OutcomeAmountMismatch SettlementOutcome = "amount_mismatch"
	OutcomeIgnored        SettlementOutcome = "ignored"
	OutcomeError          SettlementOutcome = "error"
	OutcomeMarkedFailed   SettlementOutcome = "marked_failed"
)

type SettlementSource string

const (
	SourceWebhook SettlementSource = "webhook"
	SourcePoller  SettlementSource = "poller"
	SourceAdmin   SettlementSource = "admin"
)

// GatewayPayment is an incoming transfer as reported by the payment gateway,
// either pushed by webhook or pulled by the poller.
type GatewayPayment struct {
	TransactionID 	string
	// ReferenceCode is the payment code the gateway already extracted, if any.
	ReferenceCode 	string
	Content 		string
	Amount 			decimal.Decimal
	PayerAccount 	string
	PayerName 		string
	BankCode 		string
	Timestamp 		time.Time
	Status 			string
}

type SettlementResult struct {
	Outcome 		SettlementOutcome
	Transaction 	*Transaction
	Balance 		int64
	Candidates 		int
}

type SettlementLog struct {
	ID 				string
	Source 			SettlementSource
	GatewayTxnID 	string
	Amount 			int64
	Content 		string
	PayerAccount 	string
	PayerName 		string
	BankCode 		string
	Outcome 		SettlementOutcome
	TransactionID 	string
	ReferenceCode 	string
	Candidates 		int
	ErrorMessage 	string
	ProcessingTime 	int64
	ReceivedAt 		time.Time
	CreatedAt 		time.Time
}

type SettlementLogFilter struct {
	Outcome 	SettlementOutcome
	Source 		SettlementSource
	Limit 		int
	Offset 		int
}
