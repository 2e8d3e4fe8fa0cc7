package handlers

import (
	"net/http"

	"github.com/LavaJover/storefront-wallet-service/internal/delivery/http/dto/wallet/request"
	"github.com/LavaJover/storefront-wallet-service/internal/delivery/http/dto/wallet/response"
	"github.com/LavaJover/storefront-wallet-service/internal/delivery/http/middleware"
	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/LavaJover/storefront-wallet-service/internal/usecase"
	orderdto "github.com/LavaJover/storefront-wallet-service/internal/usecase/dto/order"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUsecase
}

func NewOrderHandler(orderUsecase usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	order, err := h.orderUsecase.CreateOrder(c.Request.Context(), &orderdto.CreateOrderInput{
		UserID: middleware.UserID(c),
		TotalAmount: req.TotalAmount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.NewOrderResponse(order))
}

func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	orders, err := h.orderUsecase.ListUserOrders(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]response.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, response.NewOrderResponse(o))
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}

// PayOrder lets the owner pay a pending order from the wallet.
func (h *OrderHandler) PayOrder(c *gin.Context) {
	h.changeStatus(c, &orderdto.UpdateOrderStatusInput{
		OrderID: c.Param("id"),
		Status: string(domain.OrderPaid),
		ActorID: middleware.UserID(c),
	})
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	h.changeStatus(c, &orderdto.UpdateOrderStatusInput{
		OrderID: c.Param("id"),
		Status: req.Status,
	})
}

func (h *OrderHandler) changeStatus(c *gin.Context, input *orderdto.UpdateOrderStatusInput) {
	output, err := h.orderUsecase.UpdateOrderStatus(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OrderStatusResponse{
		Order: response.NewOrderResponse(output.Order),
		Effect: string(output.Effect),
		Applied: output.Applied,
		Balance: output.Balance,
	})
}
