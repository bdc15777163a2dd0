package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type loopWorker struct {
	*BaseWorker
	started atomic.Bool
}

func (w *loopWorker) Start(ctx context.Context) error {
	w.started.Store(true)
	select {
	case <-w.StopChan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type stuckWorker struct {
	*BaseWorker
	release chan struct{}
}

func (w *stuckWorker) Start(ctx context.Context) error {
	<-w.release
	return nil
}

func TestWorkerManager_NoWorkers(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())

	assert.Error(t, m.Start(context.Background()))
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())
	w := &loopWorker{BaseWorker: NewBaseWorker("loop", "group", nil, zap.NewNop())}
	m.Register(w)

	require.NoError(t, m.Start(context.Background()))
	assert.Eventually(t, w.started.Load, time.Second, 10*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.True(t, w.IsStopped())

	// повторная остановка безопасна
	assert.NoError(t, w.Stop())
}

func TestWorkerManager_StopTimeout(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())
	m.SetShutdownTimeout(50 * time.Millisecond)
	w := &stuckWorker{
		BaseWorker: NewBaseWorker("stuck", "group", nil, zap.NewNop()),
		release:    make(chan struct{}),
	}
	m.Register(w)
	defer close(w.release)

	require.NoError(t, m.Start(context.Background()))

	assert.Error(t, m.Stop())
}

func TestBaseWorker_Sleep(t *testing.T) {
	clock := clockwork.NewFakeClock()
	w := NewBaseWorker("sleeper", "group", clock, zap.NewNop())
	ctx := context.Background()

	assert.True(t, w.Sleep(ctx, 0))

	result := make(chan bool, 1)
	go func() { result <- w.Sleep(ctx, time.Second) }()

	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(waitCtx, 1))
	clock.Advance(time.Second)
	assert.True(t, <-result)

	go func() { result <- w.Sleep(ctx, time.Hour) }()
	require.NoError(t, clock.BlockUntilContext(waitCtx, 1))
	require.NoError(t, w.Stop())
	assert.False(t, <-result)
}
