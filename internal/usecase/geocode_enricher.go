package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/listings-marketplace/internal/domain"
	"github.com/listings-marketplace/internal/domain/repository"
	"github.com/listings-marketplace/internal/pkg/metrics"
	"github.com/listings-marketplace/internal/pkg/utils"
)

// httpStatusError - ошибка провайдера, знающая HTTP статус ответа
type httpStatusError interface {
	HTTPStatus() int
}

// providerMessageError - ошибка с текстом, который вернул сам провайдер
type providerMessageError interface {
	ProviderMessage() string
}

// GeocodeEnricher нормализует свободный ввод локации через внешний геокодер.
// Повторов и кеша нет: каждый вызов идет к провайдеру.
type GeocodeEnricher struct {
	geocoder repository.Geocoder
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewGeocodeEnricher - создание нового GeocodeEnricher
func NewGeocodeEnricher(
	geocoder repository.Geocoder,
	m *metrics.Metrics,
	logger *zap.Logger,
) *GeocodeEnricher {
	return &GeocodeEnricher{
		geocoder: geocoder,
		metrics:  m,
		logger:   logger,
	}
}

// Enrich геокодирует "location[, country]" и возвращает первый результат.
// Ошибки - *domain.GeocodeError с видом ErrNoResults / ErrAuthConfig /
// ErrQuotaExceeded / ErrProvider (или ErrEmptyLocation для пустого ввода).
func (e *GeocodeEnricher) Enrich(ctx context.Context, location, country string) (*domain.GeocodeResult, error) {
	if strings.TrimSpace(location) == "" {
		return nil, &domain.GeocodeError{Kind: domain.ErrEmptyLocation}
	}

	query := domain.BuildLocationQuery(location, country)
	e.logger.Info("Geocoding", zap.String("query", query))

	start := time.Now()
	candidates, err := e.geocoder.Geocode(ctx, query)
	e.metrics.GeocodeAPIDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		kind := classifyProviderError(err)
		e.record(kind)
		e.logger.Warn("Geocoding failed",
			zap.String("query", query),
			zap.String("kind", kind.Error()),
			zap.Error(err))
		return nil, &domain.GeocodeError{Kind: kind, Query: query, Err: err}
	}

	if len(candidates) == 0 {
		e.record(domain.ErrNoResults)
		e.logger.Info("Geocoding returned no results", zap.String("query", query))
		return nil, &domain.GeocodeError{Kind: domain.ErrNoResults, Query: query}
	}

	result, err := toResult(candidates[0])
	if err != nil {
		e.record(domain.ErrProvider)
		return nil, &domain.GeocodeError{Kind: domain.ErrProvider, Query: query, Err: err}
	}

	e.record(nil)
	e.logger.Debug("Geocoded",
		zap.String("query", query),
		zap.Float64("lng", result.Longitude),
		zap.Float64("lat", result.Latitude))

	return result, nil
}

// toResult берет координаты и поля из первого кандидата.
// Без долготы/широты результат не считается успешным.
func toResult(c domain.GeocodeCandidate) (*domain.GeocodeResult, error) {
	if c.Longitude == nil || c.Latitude == nil {
		return nil, fmt.Errorf("candidate has no coordinates")
	}
	if !utils.ValidateCoordinates(*c.Latitude, *c.Longitude) {
		return nil, fmt.Errorf("candidate coordinates out of range: [%f, %f]", *c.Longitude, *c.Latitude)
	}
	return &domain.GeocodeResult{
		Longitude:        *c.Longitude,
		Latitude:         *c.Latitude,
		ResolvedCity:     c.City,
		ResolvedCountry:  c.Country,
		FormattedAddress: c.FormattedAddress,
	}, nil
}

// classifyProviderError определяет вид ошибки по HTTP статусу, затем по
// сообщению провайдера ("API key", "quota"). Транспортные ошибки и ошибки
// разбора ответа - всегда ErrProvider.
func classifyProviderError(err error) error {
	var statusErr httpStatusError
	if errors.As(err, &statusErr) {
		switch statusErr.HTTPStatus() {
		case http.StatusUnauthorized, http.StatusForbidden:
			return domain.ErrAuthConfig
		case http.StatusPaymentRequired, http.StatusTooManyRequests:
			return domain.ErrQuotaExceeded
		}
	}

	var msgErr providerMessageError
	if !errors.As(err, &msgErr) {
		return domain.ErrProvider
	}

	msg := msgErr.ProviderMessage()
	switch {
	case strings.Contains(msg, "API key"):
		return domain.ErrAuthConfig
	case strings.Contains(msg, "quota"):
		return domain.ErrQuotaExceeded
	default:
		return domain.ErrProvider
	}
}

func (e *GeocodeEnricher) record(kind error) {
	outcome := metrics.OutcomeSuccess
	switch kind {
	case nil:
	case domain.ErrNoResults:
		outcome = metrics.OutcomeNoResults
	case domain.ErrAuthConfig:
		outcome = metrics.OutcomeAuth
	case domain.ErrQuotaExceeded:
		outcome = metrics.OutcomeQuota
	default:
		outcome = metrics.OutcomeProvider
	}
	e.metrics.GeocodeRequests.WithLabelValues(outcome).Inc()
}
