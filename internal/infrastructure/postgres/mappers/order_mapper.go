package mappers

import (
	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	return &domain.Order{
		ID: model.ID,
		UserID: model.UserID,
		TotalAmount: model.TotalAmount,
		Status: model.Status,
		WalletCharged: model.WalletCharged,
		PaymentMethod: model.PaymentMethod,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	return &models.OrderModel{
		ID: order.ID,
		UserID: order.UserID,
		TotalAmount: order.TotalAmount,
		Status: order.Status,
		WalletCharged: order.WalletCharged,
		PaymentMethod: order.PaymentMethod,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}
