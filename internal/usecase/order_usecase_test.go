package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	publisher "github.com/LavaJover/storefront-wallet-service/internal/infrastructure/kafka"
	orderdto "github.com/LavaJover/storefront-wallet-service/internal/usecase/dto/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (env *testEnv) fund(t *testing.T, userID, code string, amount int64) {
	t.Helper()
	transaction := env.seedPending(t, userID, code, amount, time.Now())
	_, err := env.settlement.OverrideStatus(context.Background(), transaction.ID, "admin", domain.TransactionSuccess)
	require.NoError(t, err)
}

func (env *testEnv) newOrder(t *testing.T, userID string, amount int64) *domain.Order {
	t.Helper()
	order, err := env.orders.CreateOrder(context.Background(), &orderdto.CreateOrderInput{UserID: userID, TotalAmount: amount})
	require.NoError(t, err)
	return order
}

func (env *testEnv) setStatus(t *testing.T, orderID, status string) *orderdto.OrderStatusOutput {
	t.Helper()
	out, err := env.orders.UpdateOrderStatus(context.Background(), &orderdto.UpdateOrderStatusInput{OrderID: orderID, Status: status})
	require.NoError(t, err)
	return out
}

func TestCreateOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order := env.newOrder(t, "user-1", 25_000)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.False(t, order.WalletCharged)
	assert.Equal(t, "wallet", order.PaymentMethod)

	_, err := env.orders.CreateOrder(ctx, &orderdto.CreateOrderInput{UserID: "user-1", TotalAmount: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	orders, err := env.orders.ListUserOrders(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestUpdateOrderStatus_ChargeRefundRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, "user-1", "NAPTIEN-AAAAAA", 100_000)
	order := env.newOrder(t, "user-1", 60_000)

	out := env.setStatus(t, order.ID, "paid")
	assert.Equal(t, domain.EffectCharge, out.Effect)
	assert.True(t, out.Applied)
	assert.Equal(t, int64(40_000), out.Balance)
	assert.True(t, out.Order.WalletCharged)

	// already charged, only the status moves
	out = env.setStatus(t, order.ID, "completed")
	assert.False(t, out.Applied)
	assert.Equal(t, domain.OrderCompleted, out.Order.Status)
	assert.Equal(t, int64(40_000), out.Balance)

	out = env.setStatus(t, order.ID, "delivered")
	assert.Equal(t, domain.EffectCharge, out.Effect)
	assert.False(t, out.Applied)

	out = env.setStatus(t, order.ID, "cancelled")
	assert.Equal(t, domain.EffectRefund, out.Effect)
	assert.True(t, out.Applied)
	assert.Equal(t, int64(100_000), out.Balance)
	assert.False(t, out.Order.WalletCharged)

	out = env.setStatus(t, order.ID, "failed")
	assert.False(t, out.Applied)
	assert.Equal(t, int64(100_000), out.Balance)

	out = env.setStatus(t, order.ID, "PAID")
	assert.True(t, out.Applied)
	assert.Equal(t, int64(40_000), out.Balance)

	out = env.setStatus(t, order.ID, "pending")
	assert.Equal(t, domain.EffectNone, out.Effect)
	assert.True(t, out.Order.WalletCharged)

	env.requireConsistent(t, "user-1")

	assert.Eventually(t, func() bool {
		return len(env.events.ofType(publisher.EventOrderCharged)) == 2 &&
			len(env.events.ofType(publisher.EventOrderRefunded)) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestUpdateOrderStatus_InsufficientBalance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.fund(t, "user-1", "NAPTIEN-AAAAAA", 30_000)
	order := env.newOrder(t, "user-1", 50_000)

	_, err := env.orders.UpdateOrderStatus(ctx, &orderdto.UpdateOrderStatusInput{OrderID: order.ID, Status: "paid"})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	stored, err := env.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPending, stored.Status)
	assert.False(t, stored.WalletCharged)
	assert.Equal(t, int64(30_000), env.balance(t, "user-1"))
	env.requireConsistent(t, "user-1")
}

func TestUpdateOrderStatus_NoWalletYet(t *testing.T) {
	env := newTestEnv(t)
	order := env.newOrder(t, "user-9", 10_000)

	_, err := env.orders.UpdateOrderStatus(context.Background(), &orderdto.UpdateOrderStatusInput{OrderID: order.ID, Status: "paid"})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestUpdateOrderStatus_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.newOrder(t, "user-1", 10_000)

	_, err := env.orders.UpdateOrderStatus(ctx, &orderdto.UpdateOrderStatusInput{OrderID: order.ID, Status: "shipped"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = env.orders.UpdateOrderStatus(ctx, &orderdto.UpdateOrderStatusInput{OrderID: order.ID, Status: "paid", ActorID: "user-2"})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = env.orders.UpdateOrderStatus(ctx, &orderdto.UpdateOrderStatusInput{OrderID: "missing", Status: "paid"})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdateOrderStatus_ConcurrentPayChargesOnce(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, "user-1", "NAPTIEN-AAAAAA", 100_000)
	order := env.newOrder(t, "user-1", 30_000)

	const workers = 6
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := env.orders.UpdateOrderStatus(context.Background(), &orderdto.UpdateOrderStatusInput{
				OrderID: order.ID,
				Status: "paid",
				ActorID: "user-1",
			})
			if errors.Is(err, domain.ErrOrderStatusConflict) {
				return
			}
			if !assert.NoError(t, err) {
				return
			}
			if out.Applied {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, applied)
	assert.Equal(t, int64(70_000), env.balance(t, "user-1"))
	env.requireConsistent(t, "user-1")
}

func TestPayOrder_OnlyFromPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.fund(t, "user-1", "NAPTIEN-AAAAAA", 100_000)

	pay := func(orderID string) (*orderdto.OrderStatusOutput, error) {
		return env.orders.UpdateOrderStatus(ctx, &orderdto.UpdateOrderStatusInput{
			OrderID: orderID,
			Status: "paid",
			ActorID: "user-1",
		})
	}

	delivered := env.newOrder(t, "user-1", 60_000)
	env.setStatus(t, delivered.ID, "delivered")
	_, err := pay(delivered.ID)
	assert.ErrorIs(t, err, domain.ErrOrderStatusConflict)
	stored, err := env.orders.GetOrder(ctx, delivered.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderDelivered, stored.Status)

	cancelled := env.newOrder(t, "user-1", 30_000)
	out, err := pay(cancelled.ID)
	require.NoError(t, err)
	assert.True(t, out.Applied)
	env.setStatus(t, cancelled.ID, "cancelled")

	_, err = pay(cancelled.ID)
	assert.ErrorIs(t, err, domain.ErrOrderStatusConflict)
	stored, err = env.orders.GetOrder(ctx, cancelled.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, stored.Status)
	assert.False(t, stored.WalletCharged)

	// second pay of an already paid order charges nothing
	paid := env.newOrder(t, "user-1", 10_000)
	_, err = pay(paid.ID)
	require.NoError(t, err)
	_, err = pay(paid.ID)
	assert.ErrorIs(t, err, domain.ErrOrderStatusConflict)

	_, err = env.orders.UpdateOrderStatus(ctx, &orderdto.UpdateOrderStatusInput{
		OrderID: env.newOrder(t, "user-1", 5_000).ID,
		Status: "delivered",
		ActorID: "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	assert.Equal(t, int64(100_000-60_000-10_000), env.balance(t, "user-1"))
	env.requireConsistent(t, "user-1")
}
