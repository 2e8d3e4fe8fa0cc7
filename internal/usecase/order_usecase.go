package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/metrics"
	publisher "github.com/LavaJover/storefront-wallet-service/internal/infrastructure/kafka"
	orderdto "github.com/LavaJover/storefront-wallet-service/internal/usecase/dto/order"
	"github.com/google/uuid"
)

const defaultOrderPaymentMethod = "wallet"

type OrderUsecase interface {
	CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListUserOrders(ctx context.Context, userID string) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, input *orderdto.UpdateOrderStatusInput) (*orderdto.OrderStatusOutput, error)
}

type DefaultOrderUsecase struct {
	OrderRepo 	domain.OrderRepository
	Publisher 	WalletEventPublisher
	Metrics 	*metrics.WalletMetrics
}

func NewDefaultOrderUsecase(
	orderRepo domain.OrderRepository,
	eventPublisher WalletEventPublisher,
	walletMetrics *metrics.WalletMetrics,
) *DefaultOrderUsecase {
	return &DefaultOrderUsecase{
		OrderRepo: orderRepo,
		Publisher: eventPublisher,
		Metrics: walletMetrics,
	}
}

func (uc *DefaultOrderUsecase) CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*domain.Order, error) {
	if input.TotalAmount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	paymentMethod := strings.TrimSpace(input.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = defaultOrderPaymentMethod
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID: uuid.New().String(),
		UserID: input.UserID,
		TotalAmount: input.TotalAmount,
		Status: domain.OrderPending,
		WalletCharged: false,
		PaymentMethod: paymentMethod,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.OrderRepo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	slog.Info("order created", "order_id", order.ID, "user_id", order.UserID, "total_amount", order.TotalAmount)
	return order, nil
}

func (uc *DefaultOrderUsecase) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return uc.OrderRepo.GetOrderByID(ctx, orderID)
}

func (uc *DefaultOrderUsecase) ListUserOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	return uc.OrderRepo.GetOrdersByUserID(ctx, userID)
}

// UpdateOrderStatus moves the order and applies its wallet effect. Entering
// paid/completed/delivered charges the wallet once, entering failed/cancelled
// gives the charge back once; replays only touch the status.
func (uc *DefaultOrderUsecase) UpdateOrderStatus(ctx context.Context, input *orderdto.UpdateOrderStatusInput) (*orderdto.OrderStatusOutput, error) {
	newStatus := domain.OrderStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, input.Status)
	}

	// покупатель может только оплатить свой заказ, пока он pending
	var from domain.OrderStatus
	if input.ActorID != "" {
		order, err := uc.OrderRepo.GetOrderByID(ctx, input.OrderID)
		if err != nil {
			return nil, err
		}
		if order.UserID != input.ActorID {
			return nil, domain.ErrOrderNotFound
		}
		if newStatus != domain.OrderPaid {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, input.Status)
		}
		if order.Status != domain.OrderPending {
			return nil, fmt.Errorf("%w: order is %s", domain.ErrOrderStatusConflict, order.Status)
		}
		from = domain.OrderPending
	}

	effect := domain.EffectNone
	switch {
	case newStatus.IsCharging():
		effect = domain.EffectCharge
	case newStatus.IsReversing():
		effect = domain.EffectRefund
	}

	change, err := uc.OrderRepo.ChangeOrderStatus(ctx, input.OrderID, from, newStatus, effect)
	if err != nil {
		if uc.Metrics != nil {
			uc.Metrics.RecordError("order_status", errorType(err))
		}
		return nil, err
	}

	if change.Applied {
		uc.onWalletEffect(change)
	}

	return &orderdto.OrderStatusOutput{
		Order: change.Order,
		Effect: change.Effect,
		Applied: change.Applied,
		Balance: change.Balance,
	}, nil
}

func (uc *DefaultOrderUsecase) onWalletEffect(change *domain.OrderStatusChange) {
	order := change.Order
	eventType := publisher.EventOrderCharged
	if change.Effect == domain.EffectRefund {
		eventType = publisher.EventOrderRefunded
	}

	slog.Info("order wallet effect applied",
		"order_id", order.ID,
		"user_id", order.UserID,
		"effect", change.Effect,
		"amount", order.TotalAmount,
		"balance", change.Balance,
	)
	if uc.Metrics != nil {
		uc.Metrics.RecordOrderEffect(string(change.Effect), order.TotalAmount)
	}
	publishAsync(uc.Publisher, publisher.WalletEvent{
		Type: eventType,
		UserID: order.UserID,
		OrderID: order.ID,
		Amount: order.TotalAmount,
		Balance: change.Balance,
	})
}
