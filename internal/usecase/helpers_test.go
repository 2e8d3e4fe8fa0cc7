package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/config"
	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	publisher "github.com/LavaJover/storefront-wallet-service/internal/infrastructure/kafka"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/metrics"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/postgres/testdb"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db 				*gorm.DB
	walletRepo 		*repository.DefaultWalletRepository
	transactionRepo *repository.DefaultTransactionRepository
	orderRepo 		*repository.DefaultOrderRepository
	logRepo 		*repository.DefaultSettlementLogRepository
	allocator 		*ReferenceAllocator
	banks 			*DefaultBankProfileUsecase
	deposits 		*DefaultDepositUsecase
	settlement 		*DefaultSettlementUsecase
	orders 			*DefaultOrderUsecase
	admin 			*DefaultAdminUsecase
	events 			*recordingPublisher
	metrics 		*metrics.WalletMetrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testdb.New(t)
	env := &testEnv{
		db: db,
		walletRepo: repository.NewDefaultWalletRepository(db),
		transactionRepo: repository.NewDefaultTransactionRepository(db),
		orderRepo: repository.NewDefaultOrderRepository(db),
		logRepo: repository.NewDefaultSettlementLogRepository(db),
		events: &recordingPublisher{},
		metrics: metrics.NewWalletMetrics(prometheus.NewRegistry()),
	}

	allocator, err := NewReferenceAllocator(env.transactionRepo, "NAPTIEN", 6)
	require.NoError(t, err)
	env.allocator = allocator

	env.banks = NewDefaultBankProfileUsecase(repository.NewDefaultBankProfileRepository(db), "mb")
	require.NoError(t, env.banks.SeedBankProfiles(context.Background(), []config.BankConfig{
		{Code: "mb", Name: "MB Bank", Bin: "970422", AccountNo: "0123456789", AccountName: "STOREFRONT"},
		{Code: "vcb", Name: "Vietcombank", Bin: "970436", AccountNo: "999", AccountName: "STOREFRONT", Hidden: true},
	}))

	env.deposits = NewDefaultDepositUsecase(env.walletRepo, env.transactionRepo, env.banks, allocator, "VND", env.metrics)
	env.settlement = NewDefaultSettlementUsecase(env.transactionRepo, env.logRepo, allocator, env.events, env.metrics, DefaultMatchWindow)
	env.orders = NewDefaultOrderUsecase(env.orderRepo, env.events, env.metrics)
	env.admin = NewDefaultAdminUsecase(env.transactionRepo, env.walletRepo)
	return env
}

// fixCodes makes the allocator hand out the given bodies in order.
func (env *testEnv) fixCodes(bodies ...string) {
	var mu sync.Mutex
	env.allocator.generate = func() string {
		mu.Lock()
		defer mu.Unlock()
		body := bodies[0]
		if len(bodies) > 1 {
			bodies = bodies[1:]
		}
		return body
	}
}

// seedPending inserts a pending deposit directly, bypassing allocation.
func (env *testEnv) seedPending(t *testing.T, userID, code string, amount int64, createdAt time.Time) *domain.Transaction {
	t.Helper()
	ctx := context.Background()

	wallet, err := env.walletRepo.GetOrCreateWallet(ctx, userID, "VND")
	require.NoError(t, err)

	transaction := &domain.Transaction{
		ID: uuid.New().String(),
		UserID: userID,
		WalletID: wallet.ID,
		Amount: amount,
		Method: domain.MethodBankTransfer,
		Bank: "mb",
		ReferenceCode: code,
		Status: domain.TransactionPending,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: createdAt.UTC(),
	}
	require.NoError(t, env.transactionRepo.CreateTransaction(ctx, transaction))
	return transaction
}

func (env *testEnv) balance(t *testing.T, userID string) int64 {
	t.Helper()
	wallet, err := env.walletRepo.GetWalletByUserID(context.Background(), userID)
	require.NoError(t, err)
	return wallet.Balance
}

func (env *testEnv) requireConsistent(t *testing.T, userID string) {
	t.Helper()
	audit, err := env.admin.AuditWallet(context.Background(), userID)
	require.NoError(t, err)
	require.Truef(t, audit.Consistent(), "wallet drift: %+v", audit)
}

func payment(id, content string, amount int64) domain.GatewayPayment {
	return domain.GatewayPayment{
		TransactionID: id,
		Content: content,
		Amount: decimal.NewFromInt(amount),
		BankCode: "MBBank",
		Timestamp: time.Now().UTC(),
	}
}

type recordingPublisher struct {
	mu 		sync.Mutex
	events 	[]publisher.WalletEvent
}

func (p *recordingPublisher) PublishWalletEvent(ctx context.Context, event publisher.WalletEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) ofType(eventType string) []publisher.WalletEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []publisher.WalletEvent
	for _, e := range p.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
