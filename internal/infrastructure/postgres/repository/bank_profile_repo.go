package repository

import (
	"context"
	"errors"
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultBankProfileRepository struct {
	DB *gorm.DB
}

func NewDefaultBankProfileRepository(db *gorm.DB) *DefaultBankProfileRepository {
	return &DefaultBankProfileRepository{DB: db}
}

// UpsertBankProfiles inserts profiles by code and overwrites the account
// details of existing ones.
func (r *DefaultBankProfileRepository) UpsertBankProfiles(ctx context.Context, profiles []*domain.BankProfile) error {
	if len(profiles) == 0 {
		return nil
	}

	now := time.Now().UTC()
	profileModels := make([]models.BankProfileModel, 0, len(profiles))
	for _, profile := range profiles {
		id := profile.ID
		if id == "" {
			id = uuid.New().String()
		}
		profileModels = append(profileModels, models.BankProfileModel{
			ID: id,
			Code: profile.Code,
			Name: profile.Name,
			Bin: profile.Bin,
			AccountNo: profile.AccountNo,
			AccountName: profile.AccountName,
			Visible: profile.Visible,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "bin", "account_no", "account_name", "visible", "updated_at"}),
	}).Create(&profileModels).Error
}

func (r *DefaultBankProfileRepository) GetBankProfileByCode(ctx context.Context, code string) (*domain.BankProfile, error) {
	var profileModel models.BankProfileModel
	if err := r.DB.WithContext(ctx).First(&profileModel, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnknownBank
		}
		return nil, err
	}
	return mappers.ToDomainBankProfile(&profileModel), nil
}

func (r *DefaultBankProfileRepository) ListBankProfiles(ctx context.Context, onlyVisible bool) ([]*domain.BankProfile, error) {
	query := r.DB.WithContext(ctx).Order("code ASC")
	if onlyVisible {
		query = query.Where("visible = ?", true)
	}

	var profileModels []models.BankProfileModel
	if err := query.Find(&profileModels).Error; err != nil {
		return nil, err
	}

	profiles := make([]*domain.BankProfile, 0, len(profileModels))
	for i := range profileModels {
		profiles = append(profiles, mappers.ToDomainBankProfile(&profileModels[i]))
	}
	return profiles, nil
}
