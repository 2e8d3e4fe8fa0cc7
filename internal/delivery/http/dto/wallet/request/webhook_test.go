package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSePayWebhookRequest_NativePayload(t *testing.T) {
	body := `{
		"id": 92704,
		"gateway": "Vietcombank",
		"transactionDate": "2024-05-01 14:02:37",
		"transferType": "in",
		"transferAmount": 2277000,
		"description": "NAPTIEN-ABC234 chuyen tien"
	}`
	var req SePayWebhookRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	req.Normalize()

	assert.Equal(t, FlexibleString("92704"), req.TransactionID)
	assert.Equal(t, "2277000", req.Amount.String())
	assert.Equal(t, "NAPTIEN-ABC234 chuyen tien", req.Content)
	assert.Equal(t, "Vietcombank", req.BankCode)
	assert.Equal(t, "2024-05-01 14:02:37", req.TransactionDate)
	assert.Empty(t, req.Status)
}

func TestSePayWebhookRequest_NativeCode(t *testing.T) {
	body := `{
		"id": 92705,
		"gateway": "MBBank",
		"code": "NAPTIEN-ABC234",
		"content": "chuyen tien",
		"referenceCode": "MBVCB.3278907687",
		"transferType": "in",
		"transferAmount": 50000
	}`
	var req SePayWebhookRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	req.Normalize()

	assert.Equal(t, "NAPTIEN-ABC234", req.ReferenceCode)
	assert.Equal(t, "chuyen tien", req.Content)

	// code: null leaves the memo as the only source
	req = SePayWebhookRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "code": null, "content": "x", "transferAmount": 1}`), &req))
	req.Normalize()
	assert.Empty(t, req.ReferenceCode)
}

func TestSePayWebhookRequest_FlatPayloadWins(t *testing.T) {
	body := `{"transaction_id": "FT123", "amount": "50000", "content": "NAPTIEN-XYZ789", "id": 1, "description": "other"}`
	var req SePayWebhookRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	req.Normalize()

	assert.Equal(t, FlexibleString("FT123"), req.TransactionID)
	assert.Equal(t, "50000", req.Amount.String())
	assert.Equal(t, "NAPTIEN-XYZ789", req.Content)
}

func TestSePayWebhookRequest_OutgoingMarked(t *testing.T) {
	var req SePayWebhookRequest
	require.NoError(t, json.Unmarshal([]byte(`{"id": "7", "transferType": "out", "transferAmount": 1000}`), &req))
	req.Normalize()
	assert.Equal(t, "outgoing", req.Status)
}

func TestFlexibleString(t *testing.T) {
	var v struct {
		A FlexibleString `json:"a"`
		B FlexibleString `json:"b"`
		C FlexibleString `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": "x1", "b": 12345678901234, "c": null}`), &v))
	assert.Equal(t, FlexibleString("x1"), v.A)
	assert.Equal(t, FlexibleString("12345678901234"), v.B)
	assert.Equal(t, FlexibleString(""), v.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a": true}`), &v))
}
