package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/listings-marketplace/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFromDomain(t *testing.T) {
	geoErr := func(kind error) error {
		return fmt.Errorf("create listing: %w", &domain.GeocodeError{Kind: kind, Query: "Paris"})
	}

	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"not found", fmt.Errorf("get: %w", domain.ErrListingNotFound), "LISTING_NOT_FOUND", http.StatusNotFound},
		{"blank field", fmt.Errorf("update listing: location: %w", domain.ErrBlankField), "INVALID_REQUEST", http.StatusBadRequest},
		{"no results", geoErr(domain.ErrNoResults), "INVALID_LOCATION", http.StatusUnprocessableEntity},
		{"empty location", geoErr(domain.ErrEmptyLocation), "INVALID_LOCATION", http.StatusUnprocessableEntity},
		{"auth", geoErr(domain.ErrAuthConfig), "GEOCODER_MISCONFIGURED", http.StatusServiceUnavailable},
		{"quota", geoErr(domain.ErrQuotaExceeded), "GEOCODER_QUOTA_EXCEEDED", http.StatusTooManyRequests},
		{"provider", geoErr(domain.ErrProvider), "GEOCODER_ERROR", http.StatusBadGateway},
		{"unknown", stderrors.New("boom"), "INTERNAL_SERVER_ERROR", http.StatusInternalServerError},
		{"app error passthrough", ErrInvalidListingID, "INVALID_LISTING_ID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromDomain(tt.err)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.status, appErr.StatusCode)
		})
	}

	assert.Nil(t, FromDomain(nil))
}

func TestAppError_WithDetailsDoesNotMutate(t *testing.T) {
	withDetails := ErrInvalidRequest.WithDetails(map[string]interface{}{"Title": "required"})

	assert.Equal(t, "required", withDetails.Details["Title"])
	assert.Nil(t, ErrInvalidRequest.Details)
	assert.Equal(t, "INVALID_REQUEST: Invalid request parameters", withDetails.Error())
}
