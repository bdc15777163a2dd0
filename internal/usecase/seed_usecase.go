package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/listings-marketplace/internal/domain"
	"github.com/listings-marketplace/internal/domain/repository"
	"github.com/listings-marketplace/internal/pkg/metrics"
)

// DefaultSeedDelay - пауза между запросами к геокодеру (лимит провайдера 1 rps)
const DefaultSeedDelay = 1200 * time.Millisecond

// SeedItemResult - результат обработки одного объявления при seed.
// Err != nil означает, что геокодирование не удалось и при сохранении
// будут использованы sentinel-координаты (0,0).
type SeedItemResult struct {
	Index    int
	Title    string
	Query    string
	Geocode  *domain.GeocodeResult
	Category domain.Category
	Err      error
}

// Geocoded - успешно ли прошло геокодирование
func (r SeedItemResult) Geocoded() bool {
	return r.Err == nil && r.Geocode != nil
}

// SeedReport - итог seed
type SeedReport struct {
	Items             []SeedItemResult
	Succeeded         int
	Failed            int
	Removed           int64
	CategoryBreakdown map[domain.Category]int
}

// Categories - категории отчета в стабильном порядке (по убыванию количества)
func (r *SeedReport) Categories() []domain.Category {
	out := make([]domain.Category, 0, len(r.CategoryBreakdown))
	for c := range r.CategoryBreakdown {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := r.CategoryBreakdown[out[i]], r.CategoryBreakdown[out[j]]
		if ci != cj {
			return ci > cj
		}
		return out[i] < out[j]
	})
	return out
}

// SeedUseCase - пакетное заполнение базы с геокодированием и классификацией.
// Обработка строго последовательная, между запросами фиксированная пауза.
type SeedUseCase struct {
	listingRepo repository.ListingRepository
	enricher    Enricher
	clock       clockwork.Clock
	delay       time.Duration
	metrics     *metrics.Metrics
	logger      *zap.Logger
	onItem      func(SeedItemResult)
}

// NewSeedUseCase - создание нового SeedUseCase
func NewSeedUseCase(
	listingRepo repository.ListingRepository,
	enricher Enricher,
	clock clockwork.Clock,
	delay time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) *SeedUseCase {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SeedUseCase{
		listingRepo: listingRepo,
		enricher:    enricher,
		clock:       clock,
		delay:       delay,
		metrics:     m,
		logger:      logger,
	}
}

// OnItem задает колбэк, вызываемый после обработки каждого объявления
func (uc *SeedUseCase) OnItem(fn func(SeedItemResult)) {
	uc.onItem = fn
}

// Seed удаляет существующие объявления, обогащает каждый черновик и
// сохраняет всю пачку одной вставкой в конце. Ошибки геокодирования не
// прерывают пачку; ошибки хранилища прерывают (накопленное теряется).
func (uc *SeedUseCase) Seed(ctx context.Context, drafts []domain.ListingDraft) (*SeedReport, error) {
	removed, err := uc.listingRepo.DeleteAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("clear listings: %w", err)
	}
	uc.logger.Info("Existing listings removed", zap.Int64("count", removed))

	report := &SeedReport{
		Items:             make([]SeedItemResult, 0, len(drafts)),
		Removed:           removed,
		CategoryBreakdown: make(map[domain.Category]int),
	}
	listings := make([]*domain.Listing, 0, len(drafts))

	for i, draft := range drafts {
		item, listing := uc.processItem(ctx, i, len(drafts), draft)

		report.Items = append(report.Items, item)
		report.CategoryBreakdown[item.Category]++
		if item.Geocoded() {
			report.Succeeded++
		} else {
			report.Failed++
		}
		listings = append(listings, listing)

		if uc.onItem != nil {
			uc.onItem(item)
		}

		if i < len(drafts)-1 {
			if err := uc.pause(ctx); err != nil {
				return nil, err
			}
		}
	}

	uc.logger.Info("Saving seeded listings", zap.Int("count", len(listings)))
	if err := uc.listingRepo.InsertMany(ctx, listings); err != nil {
		return nil, fmt.Errorf("insert seeded listings: %w", err)
	}

	uc.logger.Info("Seed completed",
		zap.Int("total", len(drafts)),
		zap.Int("geocoded", report.Succeeded),
		zap.Int("fallback", report.Failed))

	return report, nil
}

// processItem геокодирует и классифицирует один черновик
func (uc *SeedUseCase) processItem(ctx context.Context, i, total int, draft domain.ListingDraft) (SeedItemResult, *domain.Listing) {
	log := uc.logger.With(
		zap.String("item", fmt.Sprintf("%d/%d", i+1, total)),
		zap.String("title", draft.Title))

	item := SeedItemResult{
		Index: i,
		Title: draft.Title,
		Query: domain.BuildLocationQuery(draft.Location, draft.Country),
	}

	// Категория считается по исходной локации, до нормализации
	item.Category = domain.Classify(draft.Title, draft.Description, draft.Location)
	draft.Category = item.Category

	result, err := uc.enricher.Enrich(ctx, draft.Location, draft.Country)
	if err != nil {
		item.Err = err
		uc.metrics.SeedItems.WithLabelValues("fallback").Inc()
		log.Warn("Geocoding failed, using fallback [0, 0]",
			zap.String("query", item.Query),
			zap.Error(err))
	} else {
		item.Geocode = result
		uc.metrics.SeedItems.WithLabelValues("geocoded").Inc()

		// В seed берутся только город и страна, без разбора адреса
		if result.ResolvedCity != nil && *result.ResolvedCity != "" {
			draft.Location = *result.ResolvedCity
		}
		draft.Country = domain.NormalizeCountry(result, draft.Country)
		point := result.Point()
		draft.Geometry = &point

		log.Info("Geocoded",
			zap.Float64("lng", result.Longitude),
			zap.Float64("lat", result.Latitude),
			zap.String("location", draft.Location),
			zap.String("country", draft.Country))
	}

	log.Info("Category assigned", zap.String("category", string(item.Category)))

	// Geometry == nil -> ToListing подставит sentinel (0,0)
	return item, draft.ToListing()
}

func (uc *SeedUseCase) pause(ctx context.Context) error {
	if uc.delay <= 0 {
		return nil
	}
	uc.logger.Debug("Rate limiting", zap.Duration("delay", uc.delay))
	select {
	case <-ctx.Done():
		return fmt.Errorf("seed interrupted: %w", ctx.Err())
	case <-uc.clock.After(uc.delay):
		return nil
	}
}
