package setup

import (
	"fmt"

	"github.com/LavaJover/storefront-wallet-service/internal/usecase"
)

type UseCases struct {
    BankProfileUsecase  usecase.BankProfileUsecase
    DepositUsecase      usecase.DepositUsecase
    SettlementUsecase   usecase.SettlementUsecase
    ReconcileUsecase    usecase.ReconcileUsecase
    OrderUsecase        usecase.OrderUsecase
    AdminUsecase        usecase.AdminUsecase
}

func InitializeUseCases(deps *Dependencies) (*UseCases, error) {
    cfg := deps.Config
    repos := deps.Repositories

    allocator, err := usecase.NewReferenceAllocator(repos.TransactionRepo, cfg.Reference.Prefix, cfg.Reference.Length)
    if err != nil {
        return nil, fmt.Errorf("reference allocator: %w", err)
    }

    bankProfileUsecase := usecase.NewDefaultBankProfileUsecase(repos.BankProfileRepo, cfg.Deposit.DefaultBank)

    depositUsecase := usecase.NewDefaultDepositUsecase(
        repos.WalletRepo,
        repos.TransactionRepo,
        bankProfileUsecase,
        allocator,
        cfg.Deposit.Currency,
        deps.Metrics,
    )

    settlementUsecase := usecase.NewDefaultSettlementUsecase(
        repos.TransactionRepo,
        repos.SettlementLogRepo,
        allocator,
        deps.EventPublisher,
        deps.Metrics,
        cfg.Deposit.MatchWindow,
    )
    if cfg.Deposit.Currency != "" {
        settlementUsecase.Currency = cfg.Deposit.Currency
    }

    reconcileUsecase := usecase.NewDefaultReconcileUsecase(
        repos.TransactionRepo,
        deps.Gateway,
        settlementUsecase,
        allocator,
        deps.Locker,
        deps.Metrics,
        usecase.ReconcileConfig{
            AccountNumber: cfg.Gateway.AccountNumber,
            GracePeriod:   cfg.Reconcile.GracePeriod,
            Lookback:      cfg.Reconcile.Lookback,
            Timeout:       cfg.Reconcile.Timeout,
            LockTTL:       cfg.Reconcile.LockTTL,
            PageLimit:     cfg.Gateway.PageLimit,
        },
    )

    orderUsecase := usecase.NewDefaultOrderUsecase(repos.OrderRepo, deps.EventPublisher, deps.Metrics)
    adminUsecase := usecase.NewDefaultAdminUsecase(repos.TransactionRepo, repos.WalletRepo)

    return &UseCases{
        BankProfileUsecase: bankProfileUsecase,
        DepositUsecase:     depositUsecase,
        SettlementUsecase:  settlementUsecase,
        ReconcileUsecase:   reconcileUsecase,
        OrderUsecase:       orderUsecase,
        AdminUsecase:       adminUsecase,
    }, nil
}
