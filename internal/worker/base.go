package worker

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// BaseWorker содержит общую логику воркеров: остановку, consumer group
// и паузы, прерываемые остановкой
type BaseWorker struct {
	name          string
	logger        *zap.Logger
	clock         clockwork.Clock
	stopChan      chan struct{}
	stopped       bool
	mu            sync.Mutex
	consumerGroup string
}

// NewBaseWorker создает новый BaseWorker; clock == nil - реальные часы
func NewBaseWorker(name, consumerGroup string, clock clockwork.Clock, logger *zap.Logger) *BaseWorker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &BaseWorker{
		name:          name,
		logger:        logger.With(zap.String("worker", name)),
		clock:         clock,
		stopChan:      make(chan struct{}),
		consumerGroup: consumerGroup,
	}
}

func (w *BaseWorker) Name() string {
	return w.name
}

// Stop закрывает канал остановки (идемпотентно)
func (w *BaseWorker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}

	w.logger.Info("Stopping worker")
	close(w.stopChan)
	w.stopped = true

	return nil
}

func (w *BaseWorker) IsStopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}

func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

func (w *BaseWorker) ConsumerGroup() string {
	return w.consumerGroup
}

func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}

func (w *BaseWorker) Clock() clockwork.Clock {
	return w.clock
}

// Sleep ждет d. Возвращает false, если воркер остановлен или ctx отменен.
func (w *BaseWorker) Sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	select {
	case <-w.stopChan:
		return false
	case <-ctx.Done():
		return false
	case <-w.clock.After(d):
		return true
	}
}
