package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/listings-marketplace/internal/domain"
)

// ListingResponse - объявление для API
type ListingResponse struct {
	ID                  uuid.UUID       `json:"id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Image               domain.Image    `json:"image"`
	ThumbnailURL        string          `json:"thumbnail_url"`
	Price               float64         `json:"price"`
	Location            string          `json:"location"`
	Country             string          `json:"country"`
	Geometry            domain.Point    `json:"geometry"`
	HasValidCoordinates bool            `json:"has_valid_coordinates"`
	Category            domain.Category `json:"category"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// NewListingResponse конвертирует доменную модель в ответ
func NewListingResponse(l *domain.Listing) ListingResponse {
	return ListingResponse{
		ID:                  l.ID,
		Title:               l.Title,
		Description:         l.Description,
		Image:               l.Image,
		ThumbnailURL:        l.ThumbnailURL(),
		Price:               l.Price,
		Location:            l.Location,
		Country:             l.Country,
		Geometry:            l.Geometry,
		HasValidCoordinates: l.HasValidCoordinates(),
		Category:            l.Category,
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}
}

// ListListingsResponse - результат поиска
type ListListingsResponse struct {
	Listings         []ListingResponse `json:"listings"`
	SearchTerm       string            `json:"search_term"`
	SelectedCategory string            `json:"selected_category"`
	SearchApplied    bool              `json:"search_applied"`
	Total            int               `json:"total"`
}

// NewListListingsResponse собирает ответ на поиск
func NewListListingsResponse(listings []*domain.Listing, req ListListingsRequest) *ListListingsResponse {
	items := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		items = append(items, NewListingResponse(l))
	}

	selected := req.Category
	if selected == "" {
		selected = domain.CategoryFilterAll
	}

	return &ListListingsResponse{
		Listings:         items,
		SearchTerm:       req.Search,
		SelectedCategory: selected,
		SearchApplied:    domain.ListingFilter{Search: req.Search}.HasSearch(),
		Total:            len(items),
	}
}

// GeocodeRequestResponse - подтверждение постановки в очередь
type GeocodeRequestResponse struct {
	ListingID uuid.UUID `json:"listing_id"`
	Queued    bool      `json:"queued"`
}
