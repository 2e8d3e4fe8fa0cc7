package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/LavaJover/storefront-wallet-service/internal/config"
	"github.com/LavaJover/storefront-wallet-service/internal/domain"
)

const vietQRImageBase = "https://img.vietqr.io/image"

type BankProfileUsecase interface {
	SeedBankProfiles(ctx context.Context, banks []config.BankConfig) error
	ListBanks(ctx context.Context) ([]*domain.BankProfile, error)
	ResolveBank(ctx context.Context, bankTag string) (*domain.BankProfile, error)
	GetQR(ctx context.Context, bankTag string, amount int64, content string) (*domain.QRDescriptor, error)
}

type DefaultBankProfileUsecase struct {
	bankProfileRepo domain.BankProfileRepository
	defaultBank 	string
}

func NewDefaultBankProfileUsecase(bankProfileRepo domain.BankProfileRepository, defaultBank string) *DefaultBankProfileUsecase {
	return &DefaultBankProfileUsecase{
		bankProfileRepo: bankProfileRepo,
		defaultBank: strings.ToLower(defaultBank),
	}
}

func (uc *DefaultBankProfileUsecase) SeedBankProfiles(ctx context.Context, banks []config.BankConfig) error {
	profiles := make([]*domain.BankProfile, 0, len(banks))
	for _, bank := range banks {
		if bank.Code == "" {
			return fmt.Errorf("bank profile without code: %w", domain.ErrUnknownBank)
		}
		profiles = append(profiles, &domain.BankProfile{
			Code: strings.ToLower(bank.Code),
			Name: bank.Name,
			Bin: bank.Bin,
			AccountNo: bank.AccountNo,
			AccountName: bank.AccountName,
			Visible: !bank.Hidden,
		})
	}
	return uc.bankProfileRepo.UpsertBankProfiles(ctx, profiles)
}

func (uc *DefaultBankProfileUsecase) ListBanks(ctx context.Context) ([]*domain.BankProfile, error) {
	return uc.bankProfileRepo.ListBankProfiles(ctx, true)
}

// ResolveBank maps a client supplied bank tag to a visible profile. An empty
// tag means the configured default bank.
func (uc *DefaultBankProfileUsecase) ResolveBank(ctx context.Context, bankTag string) (*domain.BankProfile, error) {
	code := strings.ToLower(strings.TrimSpace(bankTag))
	if code == "" {
		code = uc.defaultBank
	}
	profile, err := uc.bankProfileRepo.GetBankProfileByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !profile.Visible {
		return nil, domain.ErrUnknownBank
	}
	return profile, nil
}

func (uc *DefaultBankProfileUsecase) GetQR(ctx context.Context, bankTag string, amount int64, content string) (*domain.QRDescriptor, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	profile, err := uc.ResolveBank(ctx, bankTag)
	if err != nil {
		return nil, err
	}
	return RenderQR(profile, amount, content), nil
}

// RenderQR builds the VietQR descriptor for a transfer of amount to profile
// with memo as the transfer content.
func RenderQR(profile *domain.BankProfile, amount int64, memo string) *domain.QRDescriptor {
	query := url.Values{}
	query.Set("amount", strconv.FormatInt(amount, 10))
	if memo != "" {
		query.Set("addInfo", memo)
	}
	if profile.AccountName != "" {
		query.Set("accountName", profile.AccountName)
	}

	return &domain.QRDescriptor{
		BankCode: profile.Code,
		BankName: profile.Name,
		AccountNo: profile.AccountNo,
		AccountName: profile.AccountName,
		Bin: profile.Bin,
		Amount: amount,
		Memo: memo,
		ImageURL: fmt.Sprintf("%s/%s-%s-compact2.png?%s", vietQRImageBase, profile.Bin, profile.AccountNo, query.Encode()),
	}
}
