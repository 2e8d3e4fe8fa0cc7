package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/delivery/http/dto/wallet/request"
	"github.com/LavaJover/storefront-wallet-service/internal/delivery/http/dto/wallet/response"
	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/LavaJover/storefront-wallet-service/internal/usecase"
	"github.com/gin-gonic/gin"
)

const webhookDateLayout = "2006-01-02 15:04:05"

var gatewayZone = time.FixedZone("ICT", 7*60*60)

type PaymentHandler struct {
	settlementUsecase 	usecase.SettlementUsecase
	bankUsecase 		usecase.BankProfileUsecase
}

func NewPaymentHandler(settlementUsecase usecase.SettlementUsecase, bankUsecase usecase.BankProfileUsecase) *PaymentHandler {
	return &PaymentHandler{
		settlementUsecase: settlementUsecase,
		bankUsecase: bankUsecase,
	}
}

// SePayWebhook always answers 200 once the payload is well formed, so the
// gateway does not redeliver unmatched payments forever.
func (h *PaymentHandler) SePayWebhook(c *gin.Context) {
	var req request.SePayWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	req.Normalize()

	payment := domain.GatewayPayment{
		TransactionID: string(req.TransactionID),
		ReferenceCode: req.ReferenceCode,
		Content: req.Content,
		Amount: req.Amount,
		PayerAccount: req.AccountNo,
		PayerName: req.AccountName,
		BankCode: req.BankCode,
		Status: req.Status,
	}
	if ts, err := time.Parse(time.RFC3339, req.TransactionDate); err == nil {
		payment.Timestamp = ts.UTC()
	} else if ts, err := time.ParseInLocation(webhookDateLayout, req.TransactionDate, gatewayZone); err == nil {
		payment.Timestamp = ts.UTC()
	}

	result, err := h.settlementUsecase.Settle(c.Request.Context(), payment, domain.SourceWebhook)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPayload) {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
			return
		}
		writeError(c, err)
		return
	}

	resp := response.WebhookResponse{
		Success: true,
		Outcome: string(result.Outcome),
		Balance: result.Balance,
		Candidates: result.Candidates,
	}
	if result.Transaction != nil {
		resp.TransactionID = result.Transaction.ID
		resp.ReferenceCode = result.Transaction.ReferenceCode
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) GetQR(c *gin.Context) {
	amount, err := strconv.ParseInt(c.Query("amount"), 10, 64)
	if err != nil {
		writeError(c, domain.ErrInvalidAmount)
		return
	}
	qr, err := h.bankUsecase.GetQR(c.Request.Context(), c.Query("bank"), amount, c.Query("content"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, qr)
}

func (h *PaymentHandler) ListBanks(c *gin.Context) {
	profiles, err := h.bankUsecase.ListBanks(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	banks := make([]response.BankResponse, 0, len(profiles))
	for _, p := range profiles {
		banks = append(banks, response.BankResponse{
			Code: p.Code,
			Name: p.Name,
			Bin: p.Bin,
			AccountNo: p.AccountNo,
			AccountName: p.AccountName,
		})
	}
	c.JSON(http.StatusOK, gin.H{"banks": banks})
}
