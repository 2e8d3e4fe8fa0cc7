package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	orderModel := mappers.ToGORMOrder(order)
	if err := r.DB.WithContext(ctx).Create(orderModel).Error; err != nil {
		return err
	}
	return nil
}

func (r *DefaultOrderRepository) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	if !isUUID(orderID) {
		return nil, domain.ErrOrderNotFound
	}
	var order models.OrderModel
	if err := r.DB.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&order), nil
}

func (r *DefaultOrderRepository) GetOrdersByUserID(ctx context.Context, userID string) ([]*domain.Order, error) {
	var orderModels []models.OrderModel
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, 0, len(orderModels))
	for i := range orderModels {
		orders = append(orders, mappers.ToDomainOrder(&orderModels[i]))
	}
	return orders, nil
}

// ChangeOrderStatus moves the order to newStatus and applies the wallet
// effect. A non-empty from restricts the move to orders currently in that
// status; otherwise the order is left alone and ErrOrderStatusConflict returned.
func (r *DefaultOrderRepository) ChangeOrderStatus(
	ctx context.Context,
	orderID string,
	from domain.OrderStatus,
	newStatus domain.OrderStatus,
	effect domain.WalletEffect,
) (*domain.OrderStatusChange, error) {
	if !isUUID(orderID) {
		return nil, domain.ErrOrderNotFound
	}
	change := &domain.OrderStatusChange{Effect: effect}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.OrderModel
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}
		if from != "" && order.Status != from {
			return fmt.Errorf("%w: order is %s", domain.ErrOrderStatusConflict, order.Status)
		}

		now := time.Now().UTC()
		switch effect {
		case domain.EffectCharge, domain.EffectRefund:
			charge := effect == domain.EffectCharge
			// wallet_charged is the compare-and-set guard for both directions
			result := orderScope(tx, orderID, from).
				Where("wallet_charged = ?", !charge).
				Updates(map[string]interface{}{
					"status": newStatus,
					"wallet_charged": charge,
					"updated_at": now,
				})
			if result.Error != nil {
				return fmt.Errorf("flip wallet_charged: %w", result.Error)
			}
			if result.RowsAffected == 1 {
				wallet, err := getOrCreateWallet(tx, order.UserID, "")
				if err != nil {
					return err
				}

				entry := &models.LedgerEntryModel{
					WalletID: wallet.ID,
					Amount: order.TotalAmount,
					Kind: domain.LedgerOrderRefund,
					OrderID: &order.ID,
				}
				if charge {
					entry.Amount = -order.TotalAmount
					entry.Kind = domain.LedgerOrderCharge
				}

				updated, err := adjustBalance(tx, entry)
				if err != nil {
					return err
				}
				change.Applied = true
				change.Balance = updated.Balance
				break
			}
			if err := setOrderStatus(tx, orderID, from, newStatus, now); err != nil {
				return err
			}
		default:
			if err := setOrderStatus(tx, orderID, from, newStatus, now); err != nil {
				return err
			}
		}

		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}
		change.Order = mappers.ToDomainOrder(&order)

		if !change.Applied {
			var wallet models.WalletModel
			err := tx.First(&wallet, "user_id = ?", order.UserID).Error
			switch {
			case err == nil:
				change.Balance = wallet.Balance
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return change, nil
}

func orderScope(tx *gorm.DB, orderID string, from domain.OrderStatus) *gorm.DB {
	query := tx.Model(&models.OrderModel{}).Where("id = ?", orderID)
	if from != "" {
		query = query.Where("status = ?", from)
	}
	return query
}

func setOrderStatus(tx *gorm.DB, orderID string, from, status domain.OrderStatus, now time.Time) error {
	result := orderScope(tx, orderID, from).
		Updates(map[string]interface{}{"status": status, "updated_at": now})
	if result.Error != nil {
		return fmt.Errorf("update order status: %w", result.Error)
	}
	if from != "" && result.RowsAffected == 0 {
		return domain.ErrOrderStatusConflict
	}
	return nil
}
