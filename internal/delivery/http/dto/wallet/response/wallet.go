package response

import (
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type WalletResponse struct {
	ID 			string 		`json:"id"`
	UserID 		string 		`json:"user_id"`
	Balance 	int64 		`json:"balance"`
	Currency 	string 		`json:"currency"`
	UpdatedAt 	time.Time 	`json:"updated_at"`
}

type TransactionResponse struct {
	ID 				string 		`json:"id"`
	UserID 			string 		`json:"user_id"`
	Amount 			int64 		`json:"amount"`
	Method 			string 		`json:"method"`
	Bank 			string 		`json:"bank"`
	ReferenceCode 	string 		`json:"reference_code"`
	Note 			string 		`json:"note,omitempty"`
	Status 			string 		`json:"status"`
	ConfirmedBy 	string 		`json:"confirmed_by,omitempty"`
	ConfirmedAt 	*time.Time 	`json:"confirmed_at,omitempty"`
	GatewayTxnID 	string 		`json:"gateway_txn_id,omitempty"`
	CreatedAt 		time.Time 	`json:"created_at"`
	DeletedAt 		*time.Time 	`json:"deleted_at,omitempty"`
	DeletedBy 		string 		`json:"deleted_by,omitempty"`
}

type TopUpResponse struct {
	Transaction TransactionResponse 	`json:"transaction"`
	QR 			*domain.QRDescriptor 	`json:"qr"`
}

type WalletInfoResponse struct {
	Wallet 				WalletResponse 			`json:"wallet"`
	RecentTransactions 	[]TransactionResponse 	`json:"recent_transactions"`
}

type TransactionListResponse struct {
	Transactions 	[]TransactionResponse 	`json:"transactions"`
	Total 			int64 					`json:"total"`
}

type TransactionStatusResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Balance 	int64 				`json:"balance"`
}

type WebhookResponse struct {
	Success 		bool 	`json:"success"`
	Outcome 		string 	`json:"outcome"`
	TransactionID 	string 	`json:"transaction_id,omitempty"`
	ReferenceCode 	string 	`json:"reference_code,omitempty"`
	Balance 		int64 	`json:"balance,omitempty"`
	Candidates 		int 	`json:"candidates,omitempty"`
}

type OrderResponse struct {
	ID 				string 		`json:"id"`
	UserID 			string 		`json:"user_id"`
	TotalAmount 	int64 		`json:"total_amount"`
	Status 			string 		`json:"status"`
	WalletCharged 	bool 		`json:"wallet_charged"`
	PaymentMethod 	string 		`json:"payment_method"`
	CreatedAt 		time.Time 	`json:"created_at"`
	UpdatedAt 		time.Time 	`json:"updated_at"`
}

type OrderStatusResponse struct {
	Order 	OrderResponse 	`json:"order"`
	Effect 	string 			`json:"effect"`
	Applied bool 			`json:"applied"`
	Balance int64 			`json:"balance"`
}

type BankResponse struct {
	Code 		string `json:"code"`
	Name 		string `json:"name"`
	Bin 		string `json:"bin"`
	AccountNo 	string `json:"account_no"`
	AccountName string `json:"account_name"`
}

type SettlementLogResponse struct {
	ID 				string 		`json:"id"`
	Source 			string 		`json:"source"`
	GatewayTxnID 	string 		`json:"gateway_txn_id"`
	Amount 			int64 		`json:"amount"`
	Content 		string 		`json:"content"`
	Outcome 		string 		`json:"outcome"`
	TransactionID 	string 		`json:"transaction_id,omitempty"`
	ReferenceCode 	string 		`json:"reference_code,omitempty"`
	Candidates 		int 		`json:"candidates"`
	ErrorMessage 	string 		`json:"error_message,omitempty"`
	ProcessingTime 	int64 		`json:"processing_time_ms"`
	CreatedAt 		time.Time 	`json:"created_at"`
}

type WalletAuditResponse struct {
	WalletID 			string 	`json:"wallet_id"`
	UserID 				string 	`json:"user_id"`
	Balance 			int64 	`json:"balance"`
	LedgerSum 			int64 	`json:"ledger_sum"`
	SettledDeposits 	int64 	`json:"settled_deposits"`
	OutstandingCharges 	int64 	`json:"outstanding_charges"`
	Consistent 			bool 	`json:"consistent"`
}

func NewWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		ID: w.ID,
		UserID: w.UserID,
		Balance: w.Balance,
		Currency: w.Currency,
		UpdatedAt: w.UpdatedAt,
	}
}

func NewTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID: t.ID,
		UserID: t.UserID,
		Amount: t.Amount,
		Method: string(t.Method),
		Bank: t.Bank,
		ReferenceCode: t.ReferenceCode,
		Note: t.Note,
		Status: string(t.Status),
		ConfirmedBy: t.ConfirmedBy,
		ConfirmedAt: t.ConfirmedAt,
		GatewayTxnID: t.GatewayTxnID,
		CreatedAt: t.CreatedAt,
		DeletedAt: t.DeletedAt,
		DeletedBy: t.DeletedBy,
	}
}

func NewTransactionResponses(transactions []*domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, NewTransactionResponse(t))
	}
	return out
}

func NewOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID: o.ID,
		UserID: o.UserID,
		TotalAmount: o.TotalAmount,
		Status: string(o.Status),
		WalletCharged: o.WalletCharged,
		PaymentMethod: o.PaymentMethod,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func NewSettlementLogResponse(l *domain.SettlementLog) SettlementLogResponse {
	return SettlementLogResponse{
		ID: l.ID,
		Source: string(l.Source),
		GatewayTxnID: l.GatewayTxnID,
		Amount: l.Amount,
		Content: l.Content,
		Outcome: string(l.Outcome),
		TransactionID: l.TransactionID,
		ReferenceCode: l.ReferenceCode,
		Candidates: l.Candidates,
		ErrorMessage: l.ErrorMessage,
		ProcessingTime: l.ProcessingTime,
		CreatedAt: l.CreatedAt,
	}
}
