package repository

import (
	"context"
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultSettlementLogRepository struct {
	DB *gorm.DB
}

func NewDefaultSettlementLogRepository(db *gorm.DB) *DefaultSettlementLogRepository {
	return &DefaultSettlementLogRepository{DB: db}
}

func (r *DefaultSettlementLogRepository) SaveSettlementLog(ctx context.Context, log *domain.SettlementLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	return r.DB.WithContext(ctx).Create(mappers.ToModelSettlementLog(log)).Error
}

func (r *DefaultSettlementLogRepository) GetSettlementLogs(ctx context.Context, filter domain.SettlementLogFilter) ([]*domain.SettlementLog, int64, error) {
	query := r.DB.WithContext(ctx).Model(&models.SettlementLogModel{})
	if filter.Outcome != "" {
		query = query.Where("outcome = ?", filter.Outcome)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var logModels []models.SettlementLogModel
	if err := query.Order("created_at DESC").Limit(limit).Offset(filter.Offset).Find(&logModels).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]*domain.SettlementLog, 0, len(logModels))
	for i := range logModels {
		logs = append(logs, mappers.ToDomainSettlementLog(&logModels[i]))
	}
	return logs, total, nil
}
