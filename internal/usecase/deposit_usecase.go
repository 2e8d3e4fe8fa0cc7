package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/metrics"
	depositdto "github.com/LavaJover/storefront-wallet-service/internal/usecase/dto/deposit"
	"github.com/google/uuid"
)

const recentTransactionsLimit = 10

type DepositUsecase interface {
	RequestDeposit(ctx context.Context, input *depositdto.RequestDepositInput) (*depositdto.DepositOutput, error)
	GetWalletInfo(ctx context.Context, userID string) (*depositdto.WalletInfoOutput, error)
	ListUserTransactions(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, int64, error)
	GetTransactionStatus(ctx context.Context, userID, identifier string) (*depositdto.TransactionStatusOutput, error)
}

type DefaultDepositUsecase struct {
	WalletRepo 		domain.WalletRepository
	TransactionRepo domain.TransactionRepository
	Banks 			BankProfileUsecase
	Allocator 		*ReferenceAllocator
	Currency 		string
	Metrics 		*metrics.WalletMetrics
}

func NewDefaultDepositUsecase(
	walletRepo domain.WalletRepository,
	transactionRepo domain.TransactionRepository,
	banks BankProfileUsecase,
	allocator *ReferenceAllocator,
	currency string,
	walletMetrics *metrics.WalletMetrics,
) *DefaultDepositUsecase {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return &DefaultDepositUsecase{
		WalletRepo: walletRepo,
		TransactionRepo: transactionRepo,
		Banks: banks,
		Allocator: allocator,
		Currency: currency,
		Metrics: walletMetrics,
	}
}

func (uc *DefaultDepositUsecase) RequestDeposit(ctx context.Context, input *depositdto.RequestDepositInput) (*depositdto.DepositOutput, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	method := domain.MethodBankTransfer
	if input.Method != "" {
		method = domain.PaymentMethod(strings.ToLower(input.Method))
		if !method.Valid() {
			return nil, fmt.Errorf("%w: method %q", domain.ErrInvalidStatus, input.Method)
		}
	}

	profile, err := uc.Banks.ResolveBank(ctx, input.Bank)
	if err != nil {
		return nil, err
	}

	wallet, err := uc.WalletRepo.GetOrCreateWallet(ctx, input.UserID, uc.Currency)
	if err != nil {
		return nil, fmt.Errorf("get or create wallet: %w", err)
	}

	code, err := uc.Allocator.Allocate(ctx)
	if err != nil {
		uc.recordError("request_deposit", err)
		return nil, err
	}

	now := time.Now().UTC()
	transaction := &domain.Transaction{
		ID: uuid.New().String(),
		UserID: input.UserID,
		WalletID: wallet.ID,
		Amount: input.Amount,
		Method: method,
		Bank: profile.Code,
		ReferenceCode: code,
		Note: input.Note,
		Status: domain.TransactionPending,
		BankProfileID: profile.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.TransactionRepo.CreateTransaction(ctx, transaction); err != nil {
		if errors.Is(err, domain.ErrDuplicateReference) {
			// another request grabbed the same code between check and insert
			uc.recordError("request_deposit", domain.ErrCodeAllocationFailed)
			return nil, domain.ErrCodeAllocationFailed
		}
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordDepositRequested(profile.Code, uc.Currency, input.Amount)
	}
	slog.Info("deposit requested",
		"user_id", input.UserID,
		"transaction_id", transaction.ID,
		"reference_code", code,
		"amount", input.Amount,
		"bank", profile.Code,
	)

	return &depositdto.DepositOutput{
		Transaction: transaction,
		QR: RenderQR(profile, input.Amount, code),
	}, nil
}

func (uc *DefaultDepositUsecase) GetWalletInfo(ctx context.Context, userID string) (*depositdto.WalletInfoOutput, error) {
	wallet, err := uc.WalletRepo.GetOrCreateWallet(ctx, userID, uc.Currency)
	if err != nil {
		return nil, err
	}
	transactions, _, err := uc.TransactionRepo.ListTransactions(ctx, domain.TransactionFilter{
		UserID: userID,
		Limit: recentTransactionsLimit,
	})
	if err != nil {
		return nil, err
	}
	return &depositdto.WalletInfoOutput{
		Wallet: wallet,
		RecentTransactions: transactions,
	}, nil
}

func (uc *DefaultDepositUsecase) ListUserTransactions(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, int64, error) {
	return uc.TransactionRepo.ListTransactions(ctx, domain.TransactionFilter{
		UserID: userID,
		Limit: limit,
		Offset: offset,
	})
}

// GetTransactionStatus accepts either a transaction id or a reference code.
// Transactions of other users are reported as not found.
func (uc *DefaultDepositUsecase) GetTransactionStatus(ctx context.Context, userID, identifier string) (*depositdto.TransactionStatusOutput, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, domain.ErrTransactionNotFound
	}

	var (
		transaction *domain.Transaction
		err         error
	)
	if _, parseErr := uuid.Parse(identifier); parseErr == nil {
		transaction, err = uc.TransactionRepo.GetTransactionByID(ctx, identifier)
	} else {
		transaction, err = uc.TransactionRepo.GetTransactionByReference(ctx, strings.ToUpper(identifier))
	}
	if err != nil {
		return nil, err
	}
	if transaction.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}

	output := &depositdto.TransactionStatusOutput{Transaction: transaction}
	wallet, err := uc.WalletRepo.GetWalletByUserID(ctx, userID)
	switch {
	case err == nil:
		output.Balance = wallet.Balance
	case !errors.Is(err, domain.ErrWalletNotFound):
		return nil, err
	}
	return output, nil
}

func (uc *DefaultDepositUsecase) recordError(operation string, err error) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordError(operation, errorType(err))
}

func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrCodeAllocationFailed):
		return "code_allocation"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrOrderStatusConflict):
		return "order_status_conflict"
	case errors.Is(err, domain.ErrAlreadySettled):
		return "already_settled"
	case errors.Is(err, domain.ErrInvalidPayload):
		return "invalid_payload"
	default:
		return "internal"
	}
}
