package setup

import (
	"fmt"
	"log/slog"

	"github.com/LavaJover/storefront-wallet-service/internal/config"
	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/kafka"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/metrics"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/postgres"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/redislock"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/sepay"
	"github.com/LavaJover/storefront-wallet-service/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Dependencies struct {
    Config          *config.WalletConfig
    DB              *gorm.DB
    KafkaPublisher  *publisher.DefaultKafkaPublisher
    EventPublisher  usecase.WalletEventPublisher
    Redis           *redis.Client
    Locker          usecase.DistributedLocker
    Gateway         domain.PaymentGateway
    Registry        *prometheus.Registry
    Metrics         *metrics.WalletMetrics
    Repositories    *Repositories
}

type Repositories struct {
    WalletRepo          domain.WalletRepository
    TransactionRepo     domain.TransactionRepository
    OrderRepo           domain.OrderRepository
    SettlementLogRepo   domain.SettlementLogRepository
    BankProfileRepo     domain.BankProfileRepository
}

func InitializeDependencies(cfg *config.WalletConfig) (*Dependencies, error) {
    db, err := postgres.InitDB(cfg.WalletDB.Dsn)
    if err != nil {
        return nil, fmt.Errorf("database: %w", err)
    }

    deps := &Dependencies{
        Config:       cfg,
        DB:           db,
        Gateway:      sepay.NewHTTPClient(cfg.Gateway.BaseURL, cfg.Gateway.APIToken, cfg.Gateway.Timeout),
        Repositories: NewRepositories(db),
    }

    deps.Registry = prometheus.NewRegistry()
    deps.Registry.MustRegister(
        collectors.NewGoCollector(),
        collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
    )
    deps.Metrics = metrics.NewWalletMetrics(deps.Registry)

    // interface fields stay nil when the backend is disabled
    if cfg.KafkaService.Enabled {
        brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
        deps.KafkaPublisher = publisher.NewDefaultKafkaPublisher(brokers)
        deps.EventPublisher = publisher.NewWalletEventPublisher(deps.KafkaPublisher, cfg.KafkaService.Topic)
        slog.Info("kafka publisher enabled", "brokers", brokers, "topic", cfg.KafkaService.Topic)
    }

    if cfg.RedisService.Enabled {
        client, err := redislock.NewClient(cfg.RedisService.Addr, cfg.RedisService.Password, cfg.RedisService.DB)
        if err != nil {
            return nil, fmt.Errorf("redis: %w", err)
        }
        deps.Redis = client
        deps.Locker = redislock.NewLocker(client)
    }

    return deps, nil
}

func NewRepositories(db *gorm.DB) *Repositories {
    return &Repositories{
        WalletRepo:        repository.NewDefaultWalletRepository(db),
        TransactionRepo:   repository.NewDefaultTransactionRepository(db),
        OrderRepo:         repository.NewDefaultOrderRepository(db),
        SettlementLogRepo: repository.NewDefaultSettlementLogRepository(db),
        BankProfileRepo:   repository.NewDefaultBankProfileRepository(db),
    }
}

// Close освобождает внешние соединения.
func (d *Dependencies) Close() {
    if d.KafkaPublisher != nil {
        if err := d.KafkaPublisher.Close(); err != nil {
            slog.Error("failed to close kafka writer", "error", err.Error())
        }
    }
    if d.Redis != nil {
        if err := d.Redis.Close(); err != nil {
            slog.Error("failed to close redis client", "error", err.Error())
        }
    }
    if sqlDB, err := d.DB.DB(); err == nil {
        sqlDB.Close()
    }
}
