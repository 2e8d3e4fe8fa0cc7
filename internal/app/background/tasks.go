package background

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/delivery/grpcapi"
	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/LavaJover/storefront-wallet-service/internal/usecase"
	"github.com/robfig/cron/v3"
)

type BackgroundTasks struct {
	ReconcileUsecase 	usecase.ReconcileUsecase
	Health 				*grpcapi.HealthHandler
	ReconcileInterval 	time.Duration
	HealthInterval 		time.Duration
}

func NewBackgroundTasks(reconcileUC usecase.ReconcileUsecase, health *grpcapi.HealthHandler, reconcileInterval time.Duration) *BackgroundTasks {
	return &BackgroundTasks{
		ReconcileUsecase: reconcileUC,
		Health: health,
		ReconcileInterval: reconcileInterval,
		HealthInterval: 15 * time.Second,
	}
}

// StartAll блокируется до отмены ctx.
func (bt *BackgroundTasks) StartAll(ctx context.Context) error {
	scheduler := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	reconcile := bt.ReconcileUsecase != nil && bt.ReconcileInterval > 0
	if reconcile {
		spec := fmt.Sprintf("@every %s", bt.ReconcileInterval)
		if _, err := scheduler.AddFunc(spec, func() { bt.runReconcile(ctx) }); err != nil {
			return fmt.Errorf("schedule reconcile: %w", err)
		}
		slog.Info("reconcile poller scheduled", "interval", bt.ReconcileInterval.String())
	}

	if bt.Health != nil {
		go bt.Health.Watch(ctx, bt.HealthInterval)
	}

	// депозиты, оставшиеся pending после рестарта, не ждут первого тика
	if reconcile {
		bt.runReconcile(ctx)
	}

	scheduler.Start()
	<-ctx.Done()

	// ждём завершения текущего прогона
	stopCtx := scheduler.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		slog.Warn("reconcile run did not finish before shutdown")
	}
	return nil
}

func (bt *BackgroundTasks) runReconcile(ctx context.Context) {
	report, err := bt.ReconcileUsecase.PollOnce(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrReconcileInProgress) {
			slog.Debug("reconcile skipped, previous run still active")
			return
		}
		slog.Error("reconcile poll failed", "error", err.Error())
		return
	}
	if report.Settled > 0 || report.Errors > 0 {
		slog.Info("reconcile poll finished",
			"checked", report.Checked,
			"settled", report.Settled,
			"errors", report.Errors,
			"duration", report.Duration,
		)
	}
}
