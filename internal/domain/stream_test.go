package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingGeocodeEvent_JSON(t *testing.T) {
	id := uuid.MustParse("0b4f8e3c-6a52-4d3e-9c1f-5d2b7a8e9f10")
	event := ListingGeocodeEvent{
		ListingID:   id,
		RequestedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.JSONEq(t, `{"listing_id":"0b4f8e3c-6a52-4d3e-9c1f-5d2b7a8e9f10","requested_at":"2024-05-01T12:00:00Z"}`, string(data))

	var decoded ListingGeocodeEvent
	require.NoError(t, json.Unmarshal([]byte(`{"listing_id":"0b4f8e3c-6a52-4d3e-9c1f-5d2b7a8e9f10"}`), &decoded))
	assert.Equal(t, id, decoded.ListingID)
	assert.True(t, decoded.RequestedAt.IsZero())
}
