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
	publisher "github.com/LavaJover/storefront-wallet-service/internal/infrastructure/kafka"
)

const DefaultMatchWindow = 24 * time.Hour

type SettlementUsecase interface {
	Settle(ctx context.Context, payment domain.GatewayPayment, source domain.SettlementSource) (*domain.SettlementResult, error)
	SettleMatched(ctx context.Context, transaction *domain.Transaction, payment domain.GatewayPayment, source domain.SettlementSource) (*domain.SettlementResult, error)
	OverrideStatus(ctx context.Context, transactionID, adminID string, status domain.TransactionStatus) (*domain.SettlementResult, error)
	GetSettlementLogs(ctx context.Context, filter domain.SettlementLogFilter) ([]*domain.SettlementLog, int64, error)
}

type DefaultSettlementUsecase struct {
	TransactionRepo domain.TransactionRepository
	LogRepo 		domain.SettlementLogRepository
	Allocator 		*ReferenceAllocator
	Publisher 		WalletEventPublisher
	Metrics 		*metrics.WalletMetrics
	MatchWindow 	time.Duration
	Currency 		string
}

func NewDefaultSettlementUsecase(
	transactionRepo domain.TransactionRepository,
	logRepo domain.SettlementLogRepository,
	allocator *ReferenceAllocator,
	eventPublisher WalletEventPublisher,
	walletMetrics *metrics.WalletMetrics,
	matchWindow time.Duration,
) *DefaultSettlementUsecase {
	if matchWindow <= 0 {
		matchWindow = DefaultMatchWindow
	}
	return &DefaultSettlementUsecase{
		TransactionRepo: transactionRepo,
		LogRepo: logRepo,
		Allocator: allocator,
		Publisher: eventPublisher,
		Metrics: walletMetrics,
		MatchWindow: matchWindow,
		Currency: domain.DefaultCurrency,
	}
}

// Settle resolves an incoming gateway payment to a pending deposit and
// credits the wallet at most once. Matching failures are outcomes, not
// errors; only malformed payloads and persistence failures return an error.
func (uc *DefaultSettlementUsecase) Settle(ctx context.Context, payment domain.GatewayPayment, source domain.SettlementSource) (*domain.SettlementResult, error) {
	startTime := time.Now()

	amount, err := validatePayment(payment)
	if err != nil {
		uc.recordOutcome(source, "rejected", startTime)
		return nil, err
	}

	settlementLog := newSettlementLog(payment, source, amount)

	// 1. Статус платежа на стороне шлюза
	if status := strings.ToLower(strings.TrimSpace(payment.Status)); status != "" && status != "success" {
		slog.Info("gateway payment ignored", "gateway_txn_id", payment.TransactionID, "status", payment.Status)
		return uc.finish(ctx, settlementLog, &domain.SettlementResult{Outcome: domain.OutcomeIgnored}, startTime), nil
	}

	// 2. Повторная доставка того же платежа
	if existing, err := uc.TransactionRepo.GetTransactionByGatewayID(ctx, payment.TransactionID); err == nil {
		return uc.finish(ctx, settlementLog, &domain.SettlementResult{
			Outcome: domain.OutcomeAlreadySettled,
			Transaction: existing,
		}, startTime), nil
	} else if !errors.Is(err, domain.ErrTransactionNotFound) {
		return nil, uc.fail(ctx, settlementLog, fmt.Errorf("lookup gateway transaction: %w", err), startTime)
	}

	// 3. Поиск по коду в назначении платежа
	transaction, err := uc.findByReference(ctx, payment)
	if err != nil {
		return nil, uc.fail(ctx, settlementLog, err, startTime)
	}
	if transaction != nil && transaction.Amount != amount {
		slog.Warn("gateway payment amount mismatch",
			"gateway_txn_id", payment.TransactionID,
			"reference_code", transaction.ReferenceCode,
			"expected", transaction.Amount,
			"received", amount,
		)
		return uc.finish(ctx, settlementLog, &domain.SettlementResult{
			Outcome: domain.OutcomeAmountMismatch,
			Transaction: transaction,
		}, startTime), nil
	}

	// 4. Поиск по сумме, только если кандидат единственный
	if transaction == nil {
		candidates, err := uc.TransactionRepo.FindPendingByAmount(ctx, amount, time.Now().UTC().Add(-uc.MatchWindow))
		if err != nil {
			return nil, uc.fail(ctx, settlementLog, fmt.Errorf("find pending by amount: %w", err), startTime)
		}
		settlementLog.Candidates = len(candidates)
		switch len(candidates) {
		case 0:
			return uc.finish(ctx, settlementLog, &domain.SettlementResult{Outcome: domain.OutcomeUnmatched}, startTime), nil
		case 1:
			transaction = candidates[0]
		default:
			slog.Warn("ambiguous gateway payment", "gateway_txn_id", payment.TransactionID, "amount", amount, "candidates", len(candidates))
			return uc.finish(ctx, settlementLog, &domain.SettlementResult{
				Outcome: domain.OutcomeAmbiguous,
				Candidates: len(candidates),
			}, startTime), nil
		}
	}

	result, err := uc.apply(ctx, transaction, payment, source)
	if err != nil {
		return nil, uc.fail(ctx, settlementLog, err, startTime)
	}
	return uc.finish(ctx, settlementLog, result, startTime), nil
}

// SettleMatched settles a transaction the caller already paired with the
// gateway payment.
func (uc *DefaultSettlementUsecase) SettleMatched(ctx context.Context, transaction *domain.Transaction, payment domain.GatewayPayment, source domain.SettlementSource) (*domain.SettlementResult, error) {
	startTime := time.Now()
	settlementLog := newSettlementLog(payment, source, transaction.Amount)

	if payment.TransactionID != "" {
		existing, err := uc.TransactionRepo.GetTransactionByGatewayID(ctx, payment.TransactionID)
		switch {
		case err == nil:
			return uc.finish(ctx, settlementLog, &domain.SettlementResult{
				Outcome: domain.OutcomeAlreadySettled,
				Transaction: existing,
			}, startTime), nil
		case !errors.Is(err, domain.ErrTransactionNotFound):
			return nil, uc.fail(ctx, settlementLog, err, startTime)
		}
	}

	result, err := uc.apply(ctx, transaction, payment, source)
	if err != nil {
		return nil, uc.fail(ctx, settlementLog, err, startTime)
	}
	return uc.finish(ctx, settlementLog, result, startTime), nil
}

// OverrideStatus is the operator's manual confirmation. Success goes through
// the same pending guard as a gateway settlement.
func (uc *DefaultSettlementUsecase) OverrideStatus(ctx context.Context, transactionID, adminID string, status domain.TransactionStatus) (*domain.SettlementResult, error) {
	transaction, err := uc.TransactionRepo.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.Status.IsTerminal() {
		return nil, domain.ErrAlreadySettled
	}

	switch status {
	case domain.TransactionSuccess:
		startTime := time.Now()
		settlementLog := &domain.SettlementLog{
			Source: domain.SourceAdmin,
			Amount: transaction.Amount,
			Content: "manual confirmation by " + adminID,
			ReceivedAt: startTime.UTC(),
		}

		settled, wallet, err := uc.TransactionRepo.SettleTransaction(ctx, transaction.ID, domain.SettleParams{
			ConfirmedBy: adminID,
			ConfirmedAt: startTime.UTC(),
		})
		if err != nil {
			if !errors.Is(err, domain.ErrAlreadySettled) {
				uc.fail(ctx, settlementLog, err, startTime)
			}
			return nil, err
		}

		result := &domain.SettlementResult{
			Outcome: domain.OutcomeSettled,
			Transaction: settled,
			Balance: wallet.Balance,
		}
		uc.onSettled(result, domain.SourceAdmin)
		return uc.finish(ctx, settlementLog, result, startTime), nil

	case domain.TransactionFailed:
		startTime := time.Now()
		failed, err := uc.TransactionRepo.FailTransaction(ctx, transaction.ID, domain.SettleParams{
			ConfirmedBy: adminID,
			ConfirmedAt: startTime.UTC(),
		})
		if err != nil {
			return nil, err
		}
		slog.Info("transaction marked failed", "transaction_id", failed.ID, "admin_id", adminID)
		return uc.finish(ctx, &domain.SettlementLog{
			Source: domain.SourceAdmin,
			Amount: failed.Amount,
			Content: "marked failed by " + adminID,
			ReceivedAt: startTime.UTC(),
		}, &domain.SettlementResult{Outcome: domain.OutcomeMarkedFailed, Transaction: failed}, startTime), nil

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
}

func (uc *DefaultSettlementUsecase) GetSettlementLogs(ctx context.Context, filter domain.SettlementLogFilter) ([]*domain.SettlementLog, int64, error) {
	return uc.LogRepo.GetSettlementLogs(ctx, filter)
}

// apply runs the pending -> success transition for a resolved transaction.
func (uc *DefaultSettlementUsecase) apply(ctx context.Context, transaction *domain.Transaction, payment domain.GatewayPayment, source domain.SettlementSource) (*domain.SettlementResult, error) {
	if transaction.Status.IsTerminal() {
		return &domain.SettlementResult{Outcome: domain.OutcomeAlreadySettled, Transaction: transaction}, nil
	}

	settled, wallet, err := uc.TransactionRepo.SettleTransaction(ctx, transaction.ID, domain.SettleParams{
		ConfirmedBy: string(source),
		ConfirmedAt: time.Now().UTC(),
		GatewayTxnID: payment.TransactionID,
		PayerAccount: payment.PayerAccount,
		PayerName: payment.PayerName,
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAlreadySettled), errors.Is(err, domain.ErrDuplicateGatewayTxn):
		// lost the race against another delivery
		current, getErr := uc.TransactionRepo.GetTransactionByID(ctx, transaction.ID)
		if getErr != nil {
			current = transaction
		}
		return &domain.SettlementResult{Outcome: domain.OutcomeAlreadySettled, Transaction: current}, nil
	default:
		return nil, fmt.Errorf("settle transaction %s: %w", transaction.ID, err)
	}

	result := &domain.SettlementResult{
		Outcome: domain.OutcomeSettled,
		Transaction: settled,
		Balance: wallet.Balance,
	}
	uc.onSettled(result, source)
	return result, nil
}

func (uc *DefaultSettlementUsecase) onSettled(result *domain.SettlementResult, source domain.SettlementSource) {
	transaction := result.Transaction
	slog.Info("deposit settled",
		"transaction_id", transaction.ID,
		"reference_code", transaction.ReferenceCode,
		"user_id", transaction.UserID,
		"amount", transaction.Amount,
		"balance", result.Balance,
		"source", source,
	)
	if uc.Metrics != nil {
		uc.Metrics.RecordDepositSettled(string(source), uc.Currency, transaction.Amount)
	}
	publishAsync(uc.Publisher, publisher.WalletEvent{
		Type: publisher.EventDepositSettled,
		UserID: transaction.UserID,
		WalletID: transaction.WalletID,
		TransactionID: transaction.ID,
		ReferenceCode: transaction.ReferenceCode,
		Amount: transaction.Amount,
		Balance: result.Balance,
		Source: string(source),
	})
}

// findByReference tries the gateway's own code first, then the memo.
func (uc *DefaultSettlementUsecase) findByReference(ctx context.Context, payment domain.GatewayPayment) (*domain.Transaction, error) {
	if uc.Allocator == nil {
		return nil, nil
	}
	codes := uc.Allocator.Candidates(payment.ReferenceCode)
	codes = append(codes, uc.Allocator.Candidates(payment.Content)...)
	for _, code := range codes {
		transaction, err := uc.TransactionRepo.GetTransactionByReference(ctx, code)
		if err == nil {
			return transaction, nil
		}
		if !errors.Is(err, domain.ErrTransactionNotFound) {
			return nil, fmt.Errorf("lookup reference %s: %w", code, err)
		}
	}
	return nil, nil
}

func (uc *DefaultSettlementUsecase) finish(ctx context.Context, settlementLog *domain.SettlementLog, result *domain.SettlementResult, startTime time.Time) *domain.SettlementResult {
	settlementLog.Outcome = result.Outcome
	if result.Candidates > 0 {
		settlementLog.Candidates = result.Candidates
	}
	if result.Transaction != nil {
		settlementLog.TransactionID = result.Transaction.ID
		settlementLog.ReferenceCode = result.Transaction.ReferenceCode
	}
	uc.saveLog(ctx, settlementLog, startTime)
	uc.recordOutcome(settlementLog.Source, string(result.Outcome), startTime)
	return result
}

func (uc *DefaultSettlementUsecase) fail(ctx context.Context, settlementLog *domain.SettlementLog, err error, startTime time.Time) error {
	settlementLog.Outcome = domain.OutcomeError
	settlementLog.ErrorMessage = err.Error()
	uc.saveLog(ctx, settlementLog, startTime)
	uc.recordOutcome(settlementLog.Source, string(domain.OutcomeError), startTime)
	if uc.Metrics != nil {
		uc.Metrics.RecordError("settle", errorType(err))
	}
	slog.Error("settlement failed", "gateway_txn_id", settlementLog.GatewayTxnID, "source", settlementLog.Source, "error", err)
	return err
}

// saveLog never fails the settlement itself.
func (uc *DefaultSettlementUsecase) saveLog(ctx context.Context, settlementLog *domain.SettlementLog, startTime time.Time) {
	if uc.LogRepo == nil {
		return
	}
	settlementLog.ProcessingTime = time.Since(startTime).Milliseconds()
	if err := uc.LogRepo.SaveSettlementLog(ctx, settlementLog); err != nil {
		slog.Warn("failed to save settlement log", "gateway_txn_id", settlementLog.GatewayTxnID, "error", err)
	}
}

func (uc *DefaultSettlementUsecase) recordOutcome(source domain.SettlementSource, outcome string, startTime time.Time) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordSettlement(string(source), outcome, time.Since(startTime).Seconds())
}

func validatePayment(payment domain.GatewayPayment) (int64, error) {
	if strings.TrimSpace(payment.TransactionID) == "" {
		return 0, fmt.Errorf("%w: transaction_id is required", domain.ErrInvalidPayload)
	}
	if !payment.Amount.IsPositive() || !payment.Amount.IsInteger() {
		return 0, fmt.Errorf("%w: amount must be a positive whole number", domain.ErrInvalidPayload)
	}
	return payment.Amount.IntPart(), nil
}

func newSettlementLog(payment domain.GatewayPayment, source domain.SettlementSource, amount int64) *domain.SettlementLog {
	receivedAt := payment.Timestamp
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}
	return &domain.SettlementLog{
		Source: source,
		GatewayTxnID: payment.TransactionID,
		Amount: amount,
		Content: payment.Content,
		PayerAccount: payment.PayerAccount,
		PayerName: payment.PayerName,
		BankCode: payment.BankCode,
		ReceivedAt: receivedAt,
	}
}
