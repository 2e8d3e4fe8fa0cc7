package background

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/LavaJover/storefront-wallet-service/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReconciler struct {
	calls 	atomic.Int32
	err 	error
}

func (r *countingReconciler) PollOnce(ctx context.Context) (*usecase.ReconcileReport, error) {
	r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	return &usecase.ReconcileReport{StartedAt: time.Now().UTC()}, nil
}

func TestStartAll_ReconcilesOnStartup(t *testing.T) {
	reconciler := &countingReconciler{}
	tasks := NewBackgroundTasks(reconciler, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tasks.StartAll(ctx) }()

	assert.Eventually(t, func() bool { return reconciler.calls.Load() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("StartAll did not return after cancel")
	}
	assert.Equal(t, int32(1), reconciler.calls.Load())
}

func TestStartAll_StartupRunInProgressIsNotFatal(t *testing.T) {
	reconciler := &countingReconciler{err: domain.ErrReconcileInProgress}
	tasks := NewBackgroundTasks(reconciler, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tasks.StartAll(ctx) }()

	assert.Eventually(t, func() bool { return reconciler.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}
