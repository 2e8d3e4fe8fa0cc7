package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/metrics"
)

const (
	reconcileLockResource = "wallet:reconcile"
	maxGatewayPages = 50
)

type ReconcileConfig struct {
	AccountNumber 	string
	GracePeriod 	time.Duration
	Lookback 		time.Duration
	Timeout 		time.Duration
	LockTTL 		time.Duration
	PageLimit 		int
}

type ReconcileReport struct {
	StartedAt 			time.Time 	`json:"started_at"`
	Duration 			string 		`json:"duration"`
	Checked 			int 		`json:"checked"`
	GatewayPayments 	int 		`json:"gateway_payments"`
	Matched 			int 		`json:"matched"`
	Settled 			int 		`json:"settled"`
	AlreadySettled 		int 		`json:"already_settled"`
	Errors 				int 		`json:"errors"`
}

// DistributedLocker keeps replicas from polling at the same time.
type DistributedLocker interface {
	TryAcquire(ctx context.Context, resource string, ttl time.Duration) (release func(context.Context) error, ok bool, err error)
}

type ReconcileUsecase interface {
	PollOnce(ctx context.Context) (*ReconcileReport, error)
}

type DefaultReconcileUsecase struct {
	TransactionRepo domain.TransactionRepository
	Gateway 		domain.PaymentGateway
	Settlement 		SettlementUsecase
	Allocator 		*ReferenceAllocator
	Locker 			DistributedLocker
	Metrics 		*metrics.WalletMetrics
	Config 			ReconcileConfig

	running sync.Mutex
	now 	func() time.Time
}

func NewDefaultReconcileUsecase(
	transactionRepo domain.TransactionRepository,
	gateway domain.PaymentGateway,
	settlement SettlementUsecase,
	allocator *ReferenceAllocator,
	locker DistributedLocker,
	walletMetrics *metrics.WalletMetrics,
	cfg ReconcileConfig,
) *DefaultReconcileUsecase {
	if cfg.GracePeriod <= 0 {
		cfg.GracePeriod = 2 * time.Minute
	}
	if cfg.Lookback <= 0 {
		cfg.Lookback = 72 * time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 5 * time.Minute
	}
	return &DefaultReconcileUsecase{
		TransactionRepo: transactionRepo,
		Gateway: gateway,
		Settlement: settlement,
		Allocator: allocator,
		Locker: locker,
		Metrics: walletMetrics,
		Config: cfg,
		now: time.Now,
	}
}

// PollOnce settles pending deposits whose webhook never arrived. A call made
// while another cycle runs returns ErrReconcileInProgress immediately.
func (uc *DefaultReconcileUsecase) PollOnce(ctx context.Context) (*ReconcileReport, error) {
	if !uc.running.TryLock() {
		return nil, domain.ErrReconcileInProgress
	}
	defer uc.running.Unlock()

	if uc.Locker != nil {
		release, ok, err := uc.Locker.TryAcquire(ctx, reconcileLockResource, uc.Config.LockTTL)
		if err != nil {
			return nil, fmt.Errorf("acquire reconcile lock: %w", err)
		}
		if !ok {
			return nil, domain.ErrReconcileInProgress
		}
		defer func() {
			if err := release(context.Background()); err != nil {
				slog.Warn("failed to release reconcile lock", "error", err)
			}
		}()
	}

	ctx, cancel := context.WithTimeout(ctx, uc.Config.Timeout)
	defer cancel()

	startedAt := uc.now().UTC()
	report := &ReconcileReport{StartedAt: startedAt}

	report, err := uc.poll(ctx, report)
	report.Duration = time.Since(startedAt).String()
	uc.recordRun(report, err, startedAt)
	if err != nil {
		slog.Error("reconcile cycle failed", "error", err)
		return report, err
	}

	slog.Info("reconcile cycle finished",
		"checked", report.Checked,
		"gateway_payments", report.GatewayPayments,
		"settled", report.Settled,
		"already_settled", report.AlreadySettled,
		"errors", report.Errors,
	)
	return report, nil
}

func (uc *DefaultReconcileUsecase) poll(ctx context.Context, report *ReconcileReport) (*ReconcileReport, error) {
	now := report.StartedAt
	pending, err := uc.TransactionRepo.ListPendingBetween(ctx, now.Add(-uc.Config.Lookback), now.Add(-uc.Config.GracePeriod))
	if err != nil {
		return report, fmt.Errorf("list pending transactions: %w", err)
	}
	report.Checked = len(pending)
	if len(pending) == 0 {
		return report, nil
	}

	since := pending[0].CreatedAt
	for _, transaction := range pending[1:] {
		if transaction.CreatedAt.Before(since) {
			since = transaction.CreatedAt
		}
	}

	payments, err := uc.fetchPayments(ctx, since)
	if err != nil {
		return report, fmt.Errorf("list gateway transactions: %w", err)
	}
	report.GatewayPayments = len(payments)

	byCode := uc.indexByReference(payments)
	for _, transaction := range pending {
		payment, ok := matchPayment(byCode[transaction.ReferenceCode], transaction.Amount)
		if !ok {
			continue
		}
		report.Matched++

		result, err := uc.Settlement.SettleMatched(ctx, transaction, payment, domain.SourcePoller)
		if err != nil {
			report.Errors++
			slog.Error("reconcile settle failed", "transaction_id", transaction.ID, "reference_code", transaction.ReferenceCode, "error", err)
			continue
		}
		switch result.Outcome {
		case domain.OutcomeSettled:
			report.Settled++
		case domain.OutcomeAlreadySettled:
			report.AlreadySettled++
		}
	}
	return report, nil
}

// fetchPayments walks the gateway list back from the newest page until it
// reaches since. Pages are windowed by date; rows on a page boundary come back
// twice and are deduplicated by gateway id.
func (uc *DefaultReconcileUsecase) fetchPayments(ctx context.Context, since time.Time) ([]domain.GatewayPayment, error) {
	query := domain.GatewayQuery{
		AccountNumber: uc.Config.AccountNumber,
		Since: since,
		Limit: uc.Config.PageLimit,
	}

	var payments []domain.GatewayPayment
	seen := make(map[string]struct{})
	for pages := 1; ; pages++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := uc.Gateway.ListTransactions(ctx, query)
		if err != nil {
			return nil, err
		}
		for _, payment := range page.Payments {
			if _, dup := seen[payment.TransactionID]; dup {
				continue
			}
			seen[payment.TransactionID] = struct{}{}
			payments = append(payments, payment)
		}

		if query.Limit <= 0 || page.Rows < query.Limit || page.Oldest.IsZero() || !page.Oldest.After(since) {
			return payments, nil
		}
		if !query.Until.IsZero() && !page.Oldest.Before(query.Until) {
			// больше Limit строк с одной и той же секундой, по дате дальше не пролистать
			slog.Warn("gateway page did not advance, stopping", "until", query.Until, "rows", page.Rows)
			return payments, nil
		}
		if pages >= maxGatewayPages {
			slog.Warn("gateway page limit reached", "pages", pages, "oldest", page.Oldest, "since", since)
			return payments, nil
		}
		query.Until = page.Oldest
	}
}

// indexByReference groups gateway payments by every reference code their
// gateway code or memo may contain.
func (uc *DefaultReconcileUsecase) indexByReference(payments []domain.GatewayPayment) map[string][]domain.GatewayPayment {
	byCode := make(map[string][]domain.GatewayPayment)
	if uc.Allocator == nil {
		return byCode
	}
	for _, payment := range payments {
		seen := make(map[string]struct{})
		for _, memo := range []string{payment.ReferenceCode, payment.Content} {
			for _, code := range uc.Allocator.Candidates(memo) {
				if _, dup := seen[code]; dup {
					continue
				}
				seen[code] = struct{}{}
				byCode[code] = append(byCode[code], payment)
			}
		}
	}
	return byCode
}

// matchPayment only accepts an exact, whole amount.
func matchPayment(payments []domain.GatewayPayment, amount int64) (domain.GatewayPayment, bool) {
	for _, payment := range payments {
		if payment.Amount.IsInteger() && payment.Amount.IntPart() == amount {
			return payment, true
		}
	}
	return domain.GatewayPayment{}, false
}

func (uc *DefaultReconcileUsecase) recordRun(report *ReconcileReport, err error, startedAt time.Time) {
	if uc.Metrics == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	uc.Metrics.RecordReconcileRun(result, time.Since(startedAt).Seconds(), report.Checked)
}
