package sepay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02 15:04:05"

// gateway dates carry no zone; the bank reports local time
var vietnamZone = time.FixedZone("ICT", 7*60*60)

type HTTPClient struct {
	BaseURL 	string
	APIToken 	string
	httpClient 	*http.Client
}

func NewHTTPClient(baseURL, apiToken string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIToken: apiToken,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type listResponse struct {
	Status 			int 			`json:"status"`
	Error 			json.RawMessage `json:"error"`
	Messages 		struct {
		Success bool `json:"success"`
	} 								`json:"messages"`
	Transactions 	[]transaction 	`json:"transactions"`
}

type transaction struct {
	ID 					string 	`json:"id"`
	BankBrandName 		string 	`json:"bank_brand_name"`
	AccountNumber 		string 	`json:"account_number"`
	TransactionDate 	string 	`json:"transaction_date"`
	AmountOut 			string 	`json:"amount_out"`
	AmountIn 			string 	`json:"amount_in"`
	TransactionContent 	string 	`json:"transaction_content"`
	ReferenceNumber 	string 	`json:"reference_number"`
	Code 				*string `json:"code"`
	SubAccount 			*string `json:"sub_account"`
}

// ListTransactions returns one page. Outgoing rows (amount_in = 0) are
// counted in Rows but left out of Payments.
func (c *HTTPClient) ListTransactions(ctx context.Context, query domain.GatewayQuery) (*domain.GatewayPage, error) {
	params := url.Values{}
	if query.AccountNumber != "" {
		params.Set("account_number", query.AccountNumber)
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if !query.Since.IsZero() {
		params.Set("transaction_date_min", query.Since.In(vietnamZone).Format(dateLayout))
	}
	if !query.Until.IsZero() {
		params.Set("transaction_date_max", query.Until.In(vietnamZone).Format(dateLayout))
	}

	endpoint := fmt.Sprintf("%s/transactions/list", c.BaseURL)
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Authorization", "Bearer "+c.APIToken)
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("sepay request failed: %w", err)
	}
	defer response.Body.Close()

	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("sepay responded %d: %s", response.StatusCode, truncate(string(responseBodyBytes), 200))
	}

	var body listResponse
	if err := json.Unmarshal(responseBodyBytes, &body); err != nil {
		return nil, fmt.Errorf("decode sepay response: %w", err)
	}
	if body.Status != 0 && body.Status != http.StatusOK {
		return nil, fmt.Errorf("sepay reported status %d", body.Status)
	}

	page := &domain.GatewayPage{
		Payments: make([]domain.GatewayPayment, 0, len(body.Transactions)),
		Rows: len(body.Transactions),
	}
	for _, txn := range body.Transactions {
		if ts, ok := parseDate(txn.TransactionDate); ok && (page.Oldest.IsZero() || ts.Before(page.Oldest)) {
			page.Oldest = ts
		}
		payment, ok, err := toPayment(txn)
		if err != nil {
			return nil, err
		}
		if ok {
			page.Payments = append(page.Payments, payment)
		}
	}
	return page, nil
}

func toPayment(txn transaction) (domain.GatewayPayment, bool, error) {
	amountIn, err := parseAmount(txn.AmountIn)
	if err != nil {
		return domain.GatewayPayment{}, false, fmt.Errorf("transaction %s: amount_in: %w", txn.ID, err)
	}
	if !amountIn.IsPositive() {
		return domain.GatewayPayment{}, false, nil
	}

	payment := domain.GatewayPayment{
		TransactionID: txn.ID,
		Content: txn.TransactionContent,
		Amount: amountIn,
		BankCode: txn.BankBrandName,
		Status: "success",
	}
	if txn.Code != nil {
		payment.ReferenceCode = *txn.Code
	}
	if ts, ok := parseDate(txn.TransactionDate); ok {
		payment.Timestamp = ts
	}
	return payment, true, nil
}

func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	ts, err := time.ParseInLocation(dateLayout, raw, vietnamZone)
	if err != nil {
		return time.Time{}, false
	}
	return ts.UTC(), true
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.TrimSpace(raw))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
