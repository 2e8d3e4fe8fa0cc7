package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/LavaJover/storefront-wallet-service/internal/delivery/http/dto/wallet/response"
	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidPayload),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrUnknownBank):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrWalletNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrOrderStatusConflict),
		errors.Is(err, domain.ErrAlreadySettled),
		errors.Is(err, domain.ErrReconcileInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCodeAllocationFailed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		message = "internal error"
	}
	c.JSON(status, response.ErrorResponse{Error: message})
}
