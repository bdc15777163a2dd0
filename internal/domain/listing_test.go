package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPoint_HasValidCoordinates(t *testing.T) {
	assert.False(t, SentinelPoint().HasValidCoordinates())
	assert.False(t, NewPoint(0, 0).HasValidCoordinates())
	assert.True(t, NewPoint(0.001, 0.001).HasValidCoordinates())
	assert.True(t, NewPoint(0, 51.5).HasValidCoordinates())
	assert.True(t, NewPoint(-0.12, 0).HasValidCoordinates())
	assert.True(t, NewPoint(2.35, 48.85).HasValidCoordinates())
}

func TestListingDraft_ApplyGeocode(t *testing.T) {
	draft := ListingDraft{Title: "Loft", Location: "paris 11e", Country: "FR"}
	draft.ApplyGeocode(&GeocodeResult{
		Longitude:        2.35,
		Latitude:         48.85,
		FormattedAddress: strPtr("Paris, Île-de-France, France"),
		ResolvedCountry:  strPtr("France"),
	})

	assert.Equal(t, "Paris", draft.Location)
	assert.Equal(t, "France", draft.Country)
	if assert.NotNil(t, draft.Geometry) {
		assert.Equal(t, "Point", draft.Geometry.Type)
		assert.Equal(t, [2]float64{2.35, 48.85}, draft.Geometry.Coordinates)
	}
}

func TestListingDraft_ToListing(t *testing.T) {
	draft := ListingDraft{Title: "Loft", Description: "d", Location: "Paris", Country: "France", Price: 120}
	listing := draft.ToListing()

	assert.NotEqual(t, uuid.Nil, listing.ID)
	assert.Equal(t, DefaultCategory, listing.Category)
	assert.Equal(t, DefaultImage(), listing.Image)
	assert.False(t, listing.HasValidCoordinates())
	assert.False(t, listing.CreatedAt.IsZero())

	draft.Category = CategoryRooms
	p := NewPoint(1, 2)
	draft.Geometry = &p
	listing = draft.ToListing()
	assert.Equal(t, CategoryRooms, listing.Category)
	assert.True(t, listing.HasValidCoordinates())
}

func TestListing_ThumbnailURL(t *testing.T) {
	l := &Listing{Image: Image{URL: "https://res.cloudinary.com/demo/image/upload/v1/listing.jpg"}}
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/w_250/v1/listing.jpg", l.ThumbnailURL())

	l.Image.URL = DefaultImageURL
	assert.Equal(t, DefaultImageURL, l.ThumbnailURL())
}

func TestListingPatch_LocationChanged(t *testing.T) {
	current := &Listing{Location: "Paris", Country: "France"}

	tests := []struct {
		name     string
		patch    ListingPatch
		expected bool
	}{
		{"no location", ListingPatch{}, false},
		{"empty location", ListingPatch{Location: strPtr("")}, false},
		{"same location and country", ListingPatch{Location: strPtr("Paris"), Country: strPtr("France")}, false},
		{"location changed", ListingPatch{Location: strPtr("Lyon"), Country: strPtr("France")}, true},
		{"country changed", ListingPatch{Location: strPtr("Paris"), Country: strPtr("USA")}, true},
		{"country omitted counts as changed", ListingPatch{Location: strPtr("Paris")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.patch.LocationChanged(current))
		})
	}
}

func TestListingPatch_Validate(t *testing.T) {
	assert.NoError(t, (&ListingPatch{}).Validate())
	assert.NoError(t, (&ListingPatch{Location: strPtr("Paris"), Country: strPtr("France")}).Validate())
	assert.ErrorIs(t, (&ListingPatch{Location: strPtr("")}).Validate(), ErrBlankField)
	assert.ErrorIs(t, (&ListingPatch{Location: strPtr("Paris"), Country: strPtr("  ")}).Validate(), ErrBlankField)
}

func TestListingPatch_ApplyGeocodeAndApply(t *testing.T) {
	listing := &Listing{Title: "Old", Location: "Paris", Country: "France", Geometry: NewPoint(2.35, 48.85)}

	patch := ListingPatch{Title: strPtr("New"), Location: strPtr("springfield"), Country: strPtr("US")}
	patch.ApplyGeocode(&GeocodeResult{Longitude: -89.65, Latitude: 39.8, ResolvedCity: strPtr("Springfield")})
	patch.Apply(listing)

	assert.Equal(t, "New", listing.Title)
	assert.Equal(t, "Springfield", listing.Location)
	assert.Equal(t, "US", listing.Country)
	assert.Equal(t, NewPoint(-89.65, 39.8), listing.Geometry)
	assert.False(t, listing.UpdatedAt.IsZero())
}

func TestListingFilter(t *testing.T) {
	assert.False(t, ListingFilter{}.HasSearch())
	assert.False(t, ListingFilter{Search: "   "}.HasSearch())
	assert.True(t, ListingFilter{Search: "beach"}.HasSearch())

	assert.False(t, ListingFilter{}.HasCategory())
	assert.False(t, ListingFilter{Category: "all"}.HasCategory())
	assert.True(t, ListingFilter{Category: "Boats"}.HasCategory())
}
