package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/listings-marketplace/internal/domain"
	"github.com/listings-marketplace/internal/domain/repository"
	"github.com/listings-marketplace/internal/pkg/metrics"
	"github.com/listings-marketplace/internal/worker"
)

const (
	defaultBatchSize    = 10
	defaultClaimMinIdle = time.Minute
	errorBackoff        = time.Second
)

// Результаты обработки события (label метрики)
const (
	resultUpdated = "updated"
	resultFailed  = "failed"
	resultSkipped = "skipped"
)

// Regeocoder - повторное геокодирование объявления (usecase.ListingUseCase)
type Regeocoder interface {
	Regeocode(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
}

// Options - параметры воркера
type Options struct {
	ConsumerGroup string
	BatchSize     int
	// Delay - пауза между запросами к геокодеру внутри пачки
	Delay time.Duration
	// PollInterval - пауза, когда стрим пуст
	PollInterval time.Duration
	// ClaimMinIdle - возраст неподтвержденного сообщения, после которого
	// воркер забирает его себе
	ClaimMinIdle time.Duration
	Clock        clockwork.Clock
}

// RegeocodeWorker читает stream:listing:geocode и повторно геокодирует
// объявления по одному. Сообщение подтверждается после обработки независимо
// от результата: автоматических повторов нет. Когда новых сообщений нет,
// воркер забирает из PEL сообщения, оставшиеся без XACK после падения или
// остановки посреди пачки.
type RegeocodeWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	regeocoder   Regeocoder
	metrics      *metrics.Metrics
	consumerName string
	batchSize    int
	delay        time.Duration
	pollInterval time.Duration
	claimMinIdle time.Duration
}

// NewRegeocodeWorker создает новый RegeocodeWorker
func NewRegeocodeWorker(
	streamRepo repository.StreamRepository,
	regeocoder Regeocoder,
	m *metrics.Metrics,
	opts Options,
	logger *zap.Logger,
) *RegeocodeWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	claimMinIdle := opts.ClaimMinIdle
	if claimMinIdle <= 0 {
		claimMinIdle = defaultClaimMinIdle
	}

	return &RegeocodeWorker{
		BaseWorker:   worker.NewBaseWorker("listing-regeocode", opts.ConsumerGroup, opts.Clock, logger),
		streamRepo:   streamRepo,
		regeocoder:   regeocoder,
		metrics:      m,
		consumerName: consumerName,
		batchSize:    batchSize,
		delay:        opts.Delay,
		pollInterval: opts.PollInterval,
		claimMinIdle: claimMinIdle,
	}
}

// Start создает consumer group и обрабатывает пачки до остановки
func (w *RegeocodeWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting RegeocodeWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("batch_size", w.batchSize),
		zap.Duration("delay", w.delay))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamListingGeocode, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		processed, err := w.processBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			w.Sleep(ctx, errorBackoff)
			continue
		}

		if processed == 0 {
			w.Sleep(ctx, w.pollInterval)
		}
	}
}

// processBatch читает пачку новых сообщений, а если их нет - забирает
// зависшие в PEL, и обрабатывает последовательно.
// Возвращает число прочитанных сообщений.
func (w *RegeocodeWorker) processBatch(ctx context.Context) (int, error) {
	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamListingGeocode,
		w.ConsumerGroup(),
		w.consumerName,
		w.batchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		messages, err = w.streamRepo.ClaimPending(
			ctx,
			domain.StreamListingGeocode,
			w.ConsumerGroup(),
			w.consumerName,
			w.claimMinIdle,
			w.batchSize,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to claim pending messages: %w", err)
		}
	}
	if len(messages) == 0 {
		return 0, nil
	}

	w.Logger().Info("Processing batch", zap.Int("message_count", len(messages)))

	for i, msg := range messages {
		geocoded := w.processMessage(ctx, msg)

		if err := w.streamRepo.AckMessages(ctx, domain.StreamListingGeocode, w.ConsumerGroup(), []string{msg.ID}); err != nil {
			w.Logger().Warn("Failed to ack message", zap.String("message_id", msg.ID), zap.Error(err))
		}

		// пауза только после реального обращения к геокодеру
		if geocoded && i < len(messages)-1 {
			if !w.Sleep(ctx, w.delay) {
				return i + 1, nil
			}
		}
	}

	return len(messages), nil
}

// processMessage возвращает true, если был запрос к геокодеру
func (w *RegeocodeWorker) processMessage(ctx context.Context, msg domain.StreamMessage) bool {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	var event domain.ListingGeocodeEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil || event.ListingID == uuid.Nil {
		logger.Warn("Malformed geocode event, skipping", zap.String("data", msg.Data), zap.Error(err))
		w.metrics.WorkerEvents.WithLabelValues(resultSkipped).Inc()
		return false
	}

	logger = logger.With(zap.String("listing_id", event.ListingID.String()))

	listing, err := w.regeocoder.Regeocode(ctx, event.ListingID)
	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		logger.Info("Listing no longer exists, skipping")
		w.metrics.WorkerEvents.WithLabelValues(resultSkipped).Inc()
		return false
	case err != nil:
		logger.Warn("Re-geocoding failed", zap.Error(err))
		w.metrics.WorkerEvents.WithLabelValues(resultFailed).Inc()
		return true
	}

	logger.Info("Listing re-geocoded",
		zap.String("location", listing.Location),
		zap.Bool("valid_coordinates", listing.HasValidCoordinates()))
	w.metrics.WorkerEvents.WithLabelValues(resultUpdated).Inc()
	return true
}
