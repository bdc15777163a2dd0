package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/listings-marketplace/internal/config"
	"github.com/listings-marketplace/internal/domain"
	"github.com/listings-marketplace/internal/infrastructure/opencage"
	"github.com/listings-marketplace/internal/pkg/metrics"
	"github.com/listings-marketplace/internal/usecase"
)

type statusError struct {
	status int
	msg    string
}

func (e *statusError) Error() string           { return e.msg }
func (e *statusError) HTTPStatus() int         { return e.status }
func (e *statusError) ProviderMessage() string { return e.msg }

func newEnricher(t *testing.T) (*usecase.GeocodeEnricher, *MockGeocoder, *metrics.Metrics) {
	t.Helper()
	geocoder := &MockGeocoder{}
	m := metrics.NewForTesting()
	return usecase.NewGeocodeEnricher(geocoder, m, zap.NewNop()), geocoder, m
}

func TestGeocodeEnricher_Enrich(t *testing.T) {
	ctx := context.Background()

	t.Run("query includes country when present", func(t *testing.T) {
		enricher, geocoder, m := newEnricher(t)
		geocoder.On("Geocode", ctx, "Malibu, United States").Return([]domain.GeocodeCandidate{
			{
				Longitude: floatPtr(-118.7798),
				Latitude:  floatPtr(34.0259),
				City:      strPtr("Malibu"),
				Country:   strPtr("United States"),
			},
		}, nil)

		result, err := enricher.Enrich(ctx, "Malibu", "United States")

		require.NoError(t, err)
		assert.Equal(t, -118.7798, result.Longitude)
		assert.Equal(t, 34.0259, result.Latitude)
		assert.Equal(t, "Malibu", *result.ResolvedCity)
		assert.Equal(t, "United States", *result.ResolvedCountry)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.GeocodeRequests.WithLabelValues(metrics.OutcomeSuccess)))
		geocoder.AssertExpectations(t)
	})

	t.Run("query is location only when country is empty", func(t *testing.T) {
		enricher, geocoder, _ := newEnricher(t)
		geocoder.On("Geocode", ctx, "Banff").Return([]domain.GeocodeCandidate{
			{Longitude: floatPtr(-115.57), Latitude: floatPtr(51.17)},
		}, nil)

		result, err := enricher.Enrich(ctx, "Banff", "")

		require.NoError(t, err)
		assert.Nil(t, result.ResolvedCity)
		geocoder.AssertExpectations(t)
	})

	t.Run("query keeps input text as given", func(t *testing.T) {
		enricher, geocoder, _ := newEnricher(t)
		geocoder.On("Geocode", ctx, " Banff ,  ").Return([]domain.GeocodeCandidate{
			{Longitude: floatPtr(-115.57), Latitude: floatPtr(51.17)},
		}, nil)

		_, err := enricher.Enrich(ctx, " Banff ", "  ")

		require.NoError(t, err)
		geocoder.AssertExpectations(t)
	})

	t.Run("only first candidate is used", func(t *testing.T) {
		enricher, geocoder, _ := newEnricher(t)
		geocoder.On("Geocode", ctx, "Paris").Return([]domain.GeocodeCandidate{
			{Longitude: floatPtr(2.35), Latitude: floatPtr(48.85), City: strPtr("Paris"), Country: strPtr("France")},
			{Longitude: floatPtr(-95.55), Latitude: floatPtr(33.66), City: strPtr("Paris"), Country: strPtr("United States")},
		}, nil)

		result, err := enricher.Enrich(ctx, "Paris", "")

		require.NoError(t, err)
		assert.Equal(t, 2.35, result.Longitude)
		assert.Equal(t, "France", *result.ResolvedCountry)
	})

	t.Run("empty location is rejected without provider call", func(t *testing.T) {
		enricher, geocoder, _ := newEnricher(t)

		_, err := enricher.Enrich(ctx, "   ", "Italy")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrEmptyLocation))
		geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
	})

	t.Run("empty candidate list is NoResults", func(t *testing.T) {
		enricher, geocoder, m := newEnricher(t)
		geocoder.On("Geocode", ctx, "Xyzzy Nowhere, Atlantis").Return([]domain.GeocodeCandidate{}, nil)

		result, err := enricher.Enrich(ctx, "Xyzzy Nowhere", "Atlantis")

		assert.Nil(t, result)
		assert.True(t, errors.Is(err, domain.ErrNoResults))
		var geoErr *domain.GeocodeError
		require.True(t, errors.As(err, &geoErr))
		assert.Equal(t, "Xyzzy Nowhere, Atlantis", geoErr.Query)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.GeocodeRequests.WithLabelValues(metrics.OutcomeNoResults)))
	})

	t.Run("candidate without coordinates is a provider error", func(t *testing.T) {
		enricher, geocoder, _ := newEnricher(t)
		geocoder.On("Geocode", ctx, "Somewhere").Return([]domain.GeocodeCandidate{
			{City: strPtr("Somewhere")},
		}, nil)

		_, err := enricher.Enrich(ctx, "Somewhere", "")

		assert.True(t, errors.Is(err, domain.ErrProvider))
	})
}

func TestGeocodeEnricher_ErrorClassification(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		err     error
		kind    error
		outcome string
	}{
		{
			name:    "provider message mentioning API key",
			err:     &statusError{status: 400, msg: "invalid API key supplied"},
			kind:    domain.ErrAuthConfig,
			outcome: metrics.OutcomeAuth,
		},
		{
			name:    "provider message mentioning quota",
			err:     &statusError{status: 400, msg: "daily quota exhausted"},
			kind:    domain.ErrQuotaExceeded,
			outcome: metrics.OutcomeQuota,
		},
		{
			name:    "transport error text mentioning quota",
			err:     errors.New(`Get "https://api.example/json?q=Aquota+Bay": EOF`),
			kind:    domain.ErrProvider,
			outcome: metrics.OutcomeProvider,
		},
		{
			name:    "transport error text mentioning API key",
			err:     errors.New("dial tcp: lookup API key host: no such host"),
			kind:    domain.ErrProvider,
			outcome: metrics.OutcomeProvider,
		},
		{
			name:    "unauthorized status",
			err:     &statusError{status: 401, msg: "unauthorized"},
			kind:    domain.ErrAuthConfig,
			outcome: metrics.OutcomeAuth,
		},
		{
			name:    "rate limited status",
			err:     &statusError{status: 429, msg: "too many requests"},
			kind:    domain.ErrQuotaExceeded,
			outcome: metrics.OutcomeQuota,
		},
		{
			name:    "wrapped status error",
			err:     fmt.Errorf("request failed: %w", &statusError{status: 402, msg: "payment required"}),
			kind:    domain.ErrQuotaExceeded,
			outcome: metrics.OutcomeQuota,
		},
		{
			name:    "anything else",
			err:     errors.New("connection reset by peer"),
			kind:    domain.ErrProvider,
			outcome: metrics.OutcomeProvider,
		},
		{
			name:    "server error with neutral message",
			err:     &statusError{status: 500, msg: "internal error"},
			kind:    domain.ErrProvider,
			outcome: metrics.OutcomeProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enricher, geocoder, m := newEnricher(t)
			geocoder.On("Geocode", ctx, "Goa, India").Return(nil, tt.err)

			result, err := enricher.Enrich(ctx, "Goa", "India")

			assert.Nil(t, result)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
			assert.True(t, errors.Is(err, tt.err), "cause must stay reachable")
			assert.Equal(t, 1.0, testutil.ToFloat64(m.GeocodeRequests.WithLabelValues(tt.outcome)))
		})
	}
}

func TestGeocodeEnricher_DroppedConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, _, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		conn.Close()
	}))
	defer server.Close()

	m := metrics.NewForTesting()
	client := opencage.NewClient(&config.GeocoderConfig{
		APIKey:         "SECRET_KEY_123",
		BaseURL:        server.URL,
		RequestTimeout: 5,
	}, zap.NewNop())
	enricher := usecase.NewGeocodeEnricher(client, m, zap.NewNop())

	result, err := enricher.Enrich(context.Background(), "Aquota Bay", "Italy")

	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProvider), "got %v", err)
	assert.False(t, errors.Is(err, domain.ErrQuotaExceeded))
	assert.NotContains(t, err.Error(), "SECRET_KEY_123")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GeocodeRequests.WithLabelValues(metrics.OutcomeProvider)))
}
