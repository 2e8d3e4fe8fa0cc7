package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyPort struct {
	mu 			sync.Mutex
	failures 	int
	calls 		int
	topic 		string
	sent 		[]domain.Message
}

func (p *flakyPort) Publish(ctx context.Context, topic string, msgs ...domain.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.calls <= p.failures {
		return errors.New("broker not available")
	}
	p.topic = topic
	p.sent = append(p.sent, msgs...)
	return nil
}

func TestWalletEventPublisher_RetriesUntilDelivered(t *testing.T) {
	port := &flakyPort{failures: 1}
	p := NewWalletEventPublisher(port, "wallet-events")

	err := p.PublishWalletEvent(context.Background(), WalletEvent{
		Type: EventDepositSettled,
		UserID: "user-1",
		ReferenceCode: "NAPTIEN-ABC234",
		Amount: 100_000,
		Balance: 100_000,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, port.calls)
	assert.Equal(t, "wallet-events", port.topic)
	require.Len(t, port.sent, 1)
	assert.Equal(t, []byte("user-1"), port.sent[0].Key)

	var decoded WalletEvent
	require.NoError(t, json.Unmarshal(port.sent[0].Value, &decoded))
	assert.Equal(t, EventDepositSettled, decoded.Type)
	assert.Equal(t, int64(100_000), decoded.Amount)
	assert.False(t, decoded.OccurredAt.IsZero())
}

func TestWalletEventPublisher_GivesUp(t *testing.T) {
	port := &flakyPort{failures: 1000}
	p := NewWalletEventPublisher(port, "wallet-events")
	p.maxElapsedTime = 300 * time.Millisecond

	err := p.PublishWalletEvent(context.Background(), WalletEvent{Type: EventOrderCharged, UserID: "user-1"})
	assert.ErrorContains(t, err, "publish order.charged")
	assert.GreaterOrEqual(t, port.calls, 1)
}
