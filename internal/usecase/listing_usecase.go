package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/listings-marketplace/internal/domain"
	"github.com/listings-marketplace/internal/domain/repository"
	"github.com/listings-marketplace/internal/usecase/dto"
)

// Enricher - геокодирование локации (реализуется GeocodeEnricher)
type Enricher interface {
	Enrich(ctx context.Context, location, country string) (*domain.GeocodeResult, error)
}

// ListingUseCase - use case для CRUD и поиска объявлений
type ListingUseCase struct {
	listingRepo repository.ListingRepository
	streamRepo  repository.StreamRepository
	enricher    Enricher
	logger      *zap.Logger
}

// NewListingUseCase - создание нового ListingUseCase
func NewListingUseCase(
	listingRepo repository.ListingRepository,
	streamRepo repository.StreamRepository,
	enricher Enricher,
	logger *zap.Logger,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		streamRepo:  streamRepo,
		enricher:    enricher,
		logger:      logger,
	}
}

// List - поиск объявлений по подстроке и категории
func (uc *ListingUseCase) List(ctx context.Context, req dto.ListListingsRequest) (*dto.ListListingsResponse, error) {
	req.Search = strings.TrimSpace(req.Search)
	filter := domain.ListingFilter{
		Search:   req.Search,
		Category: req.Category,
	}

	listings, err := uc.listingRepo.Find(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to find listings", zap.Error(err))
		return nil, err
	}

	return dto.NewListListingsResponse(listings, req), nil
}

// Get - объявление по ID
func (uc *ListingUseCase) Get(ctx context.Context, id uuid.UUID) (*dto.ListingResponse, error) {
	listing, err := uc.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewListingResponse(listing)
	return &resp, nil
}

// ListInvalidCoordinates - объявления с sentinel-координатами (0,0)
func (uc *ListingUseCase) ListInvalidCoordinates(ctx context.Context) ([]dto.ListingResponse, error) {
	listings, err := uc.listingRepo.FindWithInvalidCoordinates(ctx)
	if err != nil {
		uc.logger.Error("Failed to find listings with invalid coordinates", zap.Error(err))
		return nil, err
	}

	out := make([]dto.ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, dto.NewListingResponse(l))
	}
	return out, nil
}

// Create - геокодирование и сохранение нового объявления.
// Любая ошибка геокодирования прерывает создание.
func (uc *ListingUseCase) Create(ctx context.Context, req dto.CreateListingRequest) (*dto.ListingResponse, error) {
	draft := req.ToDraft()

	result, err := uc.enricher.Enrich(ctx, draft.Location, draft.Country)
	if err != nil {
		uc.logger.Warn("Listing not created: geocoding failed",
			zap.String("title", draft.Title),
			zap.Error(err))
		return nil, fmt.Errorf("create listing: %w", err)
	}

	draft.ApplyGeocode(result)
	listing := draft.ToListing()

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		uc.logger.Error("Failed to create listing", zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Listing created",
		zap.String("id", listing.ID.String()),
		zap.String("location", listing.Location),
		zap.String("country", listing.Country))

	resp := dto.NewListingResponse(listing)
	return &resp, nil
}

// Update - обновление объявления. Геокодирование повторяется, только если
// локация или страна отличаются от сохраненных.
func (uc *ListingUseCase) Update(ctx context.Context, id uuid.UUID, req dto.UpdateListingRequest) (*dto.ListingResponse, error) {
	patch := req.ToPatch()
	if err := patch.Validate(); err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}

	current, err := uc.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.LocationChanged(current) {
		country := ""
		if patch.Country != nil {
			country = *patch.Country
		}

		result, err := uc.enricher.Enrich(ctx, *patch.Location, country)
		if err != nil {
			uc.logger.Warn("Listing not updated: re-geocoding failed",
				zap.String("id", id.String()),
				zap.Error(err))
			return nil, fmt.Errorf("update listing: %w", err)
		}
		patch.ApplyGeocode(result)
	}

	updated, err := uc.listingRepo.Update(ctx, id, patch)
	if err != nil {
		uc.logger.Error("Failed to update listing", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}

	resp := dto.NewListingResponse(updated)
	return &resp, nil
}

// Delete - удаление объявления
func (uc *ListingUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.listingRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("Listing deleted", zap.String("id", id.String()))
	return nil
}

// RequestGeocode ставит объявление в очередь на повторное геокодирование.
// Это ручной повтор для объявлений, которые seed сохранил с (0,0).
func (uc *ListingUseCase) RequestGeocode(ctx context.Context, id uuid.UUID) (*dto.GeocodeRequestResponse, error) {
	if _, err := uc.listingRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	event := domain.ListingGeocodeEvent{
		ListingID:   id,
		RequestedAt: time.Now().UTC(),
	}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamListingGeocode, event); err != nil {
		uc.logger.Error("Failed to enqueue geocode request", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}

	return &dto.GeocodeRequestResponse{ListingID: id, Queued: true}, nil
}

// Regeocode повторно геокодирует сохраненные локацию и страну объявления
// и записывает нормализованные значения и координаты (вызывается воркером)
func (uc *ListingUseCase) Regeocode(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	current, err := uc.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := uc.enricher.Enrich(ctx, current.Location, current.Country)
	if err != nil {
		return nil, fmt.Errorf("regeocode listing %s: %w", id, err)
	}

	location := current.Location
	patch := domain.ListingPatch{Location: &location}
	patch.ApplyGeocode(result)

	updated, err := uc.listingRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Listing re-geocoded",
		zap.String("id", id.String()),
		zap.String("location", updated.Location),
		zap.Float64("lng", updated.Geometry.Lng()),
		zap.Float64("lat", updated.Geometry.Lat()))

	return updated, nil
}
