package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/listings-marketplace/internal/domain"
)

// ListingRepository определяет методы для хранения объявлений
type ListingRepository interface {
	// Find возвращает объявления по фильтру (поиск + категория)
	Find(ctx context.Context, filter domain.ListingFilter) ([]*domain.Listing, error)

	// FindByID возвращает объявление или domain.ErrListingNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)

	// FindWithInvalidCoordinates возвращает объявления с sentinel-координатами (0,0)
	FindWithInvalidCoordinates(ctx context.Context) ([]*domain.Listing, error)

	// Create сохраняет новое объявление
	Create(ctx context.Context, listing *domain.Listing) error

	// Update сохраняет изменения объявления и возвращает обновленную версию
	Update(ctx context.Context, id uuid.UUID, patch domain.ListingPatch) (*domain.Listing, error)

	// Delete удаляет объявление, domain.ErrListingNotFound если его нет
	Delete(ctx context.Context, id uuid.UUID) error

	// InsertMany сохраняет пачку объявлений одной транзакцией
	InsertMany(ctx context.Context, listings []*domain.Listing) error

	// DeleteAll удаляет все объявления (используется в seed)
	DeleteAll(ctx context.Context) (int64, error)
}
