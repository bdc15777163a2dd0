package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamListingGeocode = "stream:listing:geocode"
)

// ListingGeocodeEvent - запрос на повторное геокодирование объявления.
// Публикуется оператором (API) для объявлений с sentinel-координатами.
type ListingGeocodeEvent struct {
	ListingID   uuid.UUID `json:"listing_id"`
	RequestedAt time.Time `json:"requested_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
