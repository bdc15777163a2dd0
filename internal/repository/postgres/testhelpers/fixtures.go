package testhelpers

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/listings-marketplace/internal/domain"
)

// NewListing - объявление для фикстур; created_at сдвигается на offset,
// чтобы порядок выдачи был детерминированным
func NewListing(title, location, country string, category domain.Category, point domain.Point, offset time.Duration) *domain.Listing {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(offset)
	return &domain.Listing{
		ID:          uuid.New(),
		Title:       title,
		Description: fmt.Sprintf("%s in %s", title, location),
		Image:       domain.DefaultImage(),
		Price:       1000,
		Location:    location,
		Country:     country,
		Geometry:    point,
		Category:    category,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}
