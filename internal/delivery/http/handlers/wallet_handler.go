package handlers

import (
	"net/http"
	"strconv"

	"github.com/LavaJover/storefront-wallet-service/internal/delivery/http/dto/wallet/request"
	"github.com/LavaJover/storefront-wallet-service/internal/delivery/http/dto/wallet/response"
	"github.com/LavaJover/storefront-wallet-service/internal/delivery/http/middleware"
	"github.com/LavaJover/storefront-wallet-service/internal/usecase"
	depositdto "github.com/LavaJover/storefront-wallet-service/internal/usecase/dto/deposit"
	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	depositUsecase usecase.DepositUsecase
}

func NewWalletHandler(depositUsecase usecase.DepositUsecase) *WalletHandler {
	return &WalletHandler{depositUsecase: depositUsecase}
}

func (h *WalletHandler) GetWallet(c *gin.Context) {
	info, err := h.depositUsecase.GetWalletInfo(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.WalletInfoResponse{
		Wallet: response.NewWalletResponse(info.Wallet),
		RecentTransactions: response.NewTransactionResponses(info.RecentTransactions),
	})
}

func (h *WalletHandler) TopUp(c *gin.Context) {
	var req request.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	output, err := h.depositUsecase.RequestDeposit(c.Request.Context(), &depositdto.RequestDepositInput{
		UserID: middleware.UserID(c),
		Amount: req.Amount,
		Bank: req.Bank,
		Method: req.Method,
		Note: req.Note,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.TopUpResponse{
		Transaction: response.NewTransactionResponse(output.Transaction),
		QR: output.QR,
	})
}

func (h *WalletHandler) ListTransactions(c *gin.Context) {
	limit, offset := pagination(c)
	transactions, total, err := h.depositUsecase.ListUserTransactions(c.Request.Context(), middleware.UserID(c), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.TransactionListResponse{
		Transactions: response.NewTransactionResponses(transactions),
		Total: total,
	})
}

func (h *WalletHandler) GetTransactionStatus(c *gin.Context) {
	output, err := h.depositUsecase.GetTransactionStatus(c.Request.Context(), middleware.UserID(c), c.Param("identifier"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.TransactionStatusResponse{
		Transaction: response.NewTransactionResponse(output.Transaction),
		Balance: output.Balance,
	})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
