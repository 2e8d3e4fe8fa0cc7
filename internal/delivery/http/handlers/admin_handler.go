package handlers

import (
	"net/http"

	"github.com/LavaJover/storefront-wallet-service/internal/delivery/http/dto/wallet/request"
	"github.com/LavaJover/storefront-wallet-service/internal/delivery/http/dto/wallet/response"
	"github.com/LavaJover/storefront-wallet-service/internal/delivery/http/middleware"
	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/LavaJover/storefront-wallet-service/internal/usecase"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUsecase 		usecase.AdminUsecase
	settlementUsecase 	usecase.SettlementUsecase
	reconcileUsecase 	usecase.ReconcileUsecase
}

func NewAdminHandler(
	adminUsecase usecase.AdminUsecase,
	settlementUsecase usecase.SettlementUsecase,
	reconcileUsecase usecase.ReconcileUsecase,
) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		settlementUsecase: settlementUsecase,
		reconcileUsecase: reconcileUsecase,
	}
}

func (h *AdminHandler) ListTransactions(c *gin.Context) {
	limit, offset := pagination(c)
	transactions, total, err := h.adminUsecase.ListTransactions(c.Request.Context(), domain.TransactionFilter{
		Status: domain.TransactionStatus(c.Query("status")),
		IncludeDeleted: c.Query("include_deleted") == "true",
		Limit: limit,
		Offset: offset,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.TransactionListResponse{
		Transactions: response.NewTransactionResponses(transactions),
		Total: total,
	})
}

func (h *AdminHandler) OverrideTransaction(c *gin.Context) {
	var req request.OverrideTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	result, err := h.settlementUsecase.OverrideStatus(
		c.Request.Context(),
		c.Param("id"),
		middleware.UserID(c),
		domain.TransactionStatus(req.Status),
	)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"outcome": result.Outcome,
		"transaction": response.NewTransactionResponse(result.Transaction),
		"balance": result.Balance,
	})
}

func (h *AdminHandler) DeleteTransaction(c *gin.Context) {
	if err := h.adminUsecase.DeleteTransaction(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) RestoreTransaction(c *gin.Context) {
	if err := h.adminUsecase.RestoreTransaction(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restored": true})
}

func (h *AdminHandler) ListSettlementLogs(c *gin.Context) {
	limit, offset := pagination(c)
	logs, total, err := h.settlementUsecase.GetSettlementLogs(c.Request.Context(), domain.SettlementLogFilter{
		Outcome: domain.SettlementOutcome(c.Query("outcome")),
		Source: domain.SettlementSource(c.Query("source")),
		Limit: limit,
		Offset: offset,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]response.SettlementLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, response.NewSettlementLogResponse(l))
	}
	c.JSON(http.StatusOK, gin.H{"logs": out, "total": total})
}

func (h *AdminHandler) Reconcile(c *gin.Context) {
	report, err := h.reconcileUsecase.PollOnce(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AdminHandler) AuditWallet(c *gin.Context) {
	audit, err := h.adminUsecase.AuditWallet(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.WalletAuditResponse{
		WalletID: audit.WalletID,
		UserID: audit.UserID,
		Balance: audit.Balance,
		LedgerSum: audit.LedgerSum,
		SettledDeposits: audit.SettledDeposits,
		OutstandingCharges: audit.OutstandingCharges,
		Consistent: audit.Consistent(),
	})
}
