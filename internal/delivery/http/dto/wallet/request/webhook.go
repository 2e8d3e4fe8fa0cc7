package request

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// SePayWebhookRequest accepts both the storefront's flat payload and the
// field names SePay uses in its native webhook.
type SePayWebhookRequest struct {
	TransactionID 	FlexibleString 	`json:"transaction_id"`
	ReferenceCode 	string 			`json:"reference_code"`
	Amount 			decimal.Decimal `json:"amount"`
	Content 		string 			`json:"content"`
	AccountNo 		string 			`json:"account_no"`
	AccountName 	string 			`json:"account_name"`
	BankCode 		string 			`json:"bank_code"`
	TransactionDate string 			`json:"transaction_date"`
	Status 			string 			`json:"status"`

	// native SePay fields
	ID 				FlexibleString 	`json:"id"`
	Code 			FlexibleString 	`json:"code"`
	Gateway 		string 			`json:"gateway"`
	TransferType 	string 			`json:"transferType"`
	TransferAmount 	decimal.Decimal `json:"transferAmount"`
	NativeDate 		string 			`json:"transactionDate"`
	Description 	string 			`json:"description"`
}

// Normalize folds the native SePay fields into the flat ones.
func (r *SePayWebhookRequest) Normalize() {
	if r.TransactionID == "" {
		r.TransactionID = r.ID
	}
	if r.Amount.IsZero() && !r.TransferAmount.IsZero() {
		r.Amount = r.TransferAmount
	}
	if r.ReferenceCode == "" {
		r.ReferenceCode = string(r.Code)
	}
	if r.Content == "" {
		r.Content = r.Description
	}
	if r.BankCode == "" {
		r.BankCode = r.Gateway
	}
	if r.TransactionDate == "" {
		r.TransactionDate = r.NativeDate
	}
	if r.Status == "" && strings.EqualFold(r.TransferType, "out") {
		r.Status = "outgoing"
	}
}

// FlexibleString decodes a JSON string or number.
type FlexibleString string

func (s *FlexibleString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexibleString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = FlexibleString(num.String())
	return nil
}
