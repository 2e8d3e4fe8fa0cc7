package usecase

import (
	"context"
	"log/slog"
	"time"

	publisher "github.com/LavaJover/storefront-wallet-service/internal/infrastructure/kafka"
)

const eventPublishTimeout = 45 * time.Second

type WalletEventPublisher interface {
	PublishWalletEvent(ctx context.Context, event publisher.WalletEvent) error
}

// publishAsync sends the event after the database commit without blocking the
// caller. Failures are only logged; the balance change already happened.
func publishAsync(p WalletEventPublisher, event publisher.WalletEvent) {
	if p == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), eventPublishTimeout)
		defer cancel()
		if err := p.PublishWalletEvent(ctx, event); err != nil {
			slog.Error("failed to publish wallet event", "type", event.Type, "user_id", event.UserID, "error", err)
		}
	}()
}
