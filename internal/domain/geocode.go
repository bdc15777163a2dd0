package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Виды ошибок геокодирования. Проверяются через errors.Is.
var (
	ErrEmptyLocation = errors.New("location must not be empty")
	ErrNoResults     = errors.New("geocoder returned no results")
	ErrAuthConfig    = errors.New("geocoder credentials are invalid")
	ErrQuotaExceeded = errors.New("geocoder quota exceeded")
	ErrProvider      = errors.New("geocoder provider error")
)

// GeocodeError - ошибка геокодирования с видом, запросом и причиной
type GeocodeError struct {
	Kind  error
	Query string
	Err   error
}

func (e *GeocodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geocode %q: %v: %v", e.Query, e.Kind, e.Err)
	}
	return fmt.Sprintf("geocode %q: %v", e.Query, e.Kind)
}

// Is позволяет сравнивать с ErrNoResults, ErrQuotaExceeded и т.д.
func (e *GeocodeError) Is(target error) bool {
	return e.Kind == target
}

func (e *GeocodeError) Unwrap() error {
	return e.Err
}

// GeocodeCandidate - один кандидат из ответа провайдера
type GeocodeCandidate struct {
	Longitude        *float64
	Latitude         *float64
	City             *string
	Country          *string
	FormattedAddress *string
}

// GeocodeResult - нормализованный результат геокодирования (первый кандидат)
type GeocodeResult struct {
	Longitude        float64 `json:"longitude"`
	Latitude         float64 `json:"latitude"`
	ResolvedCity     *string `json:"resolved_city,omitempty"`
	ResolvedCountry  *string `json:"resolved_country,omitempty"`
	FormattedAddress *string `json:"formatted_address,omitempty"`
}

// Point возвращает GeoJSON-точку [lng, lat]
func (r *GeocodeResult) Point() Point {
	return NewPoint(r.Longitude, r.Latitude)
}

// BuildLocationQuery собирает строку запроса: "location" или "location, country"
func BuildLocationQuery(location, country string) string {
	if country == "" {
		return location
	}
	return location + ", " + country
}

// NormalizeLocation выбирает локацию: город, иначе часть адреса до первой
// запятой, иначе исходное значение.
func NormalizeLocation(r *GeocodeResult, original string) string {
	if r == nil {
		return original
	}
	if r.ResolvedCity != nil && *r.ResolvedCity != "" {
		return *r.ResolvedCity
	}
	if r.FormattedAddress != nil && *r.FormattedAddress != "" {
		head, _, _ := strings.Cut(*r.FormattedAddress, ",")
		return strings.TrimSpace(head)
	}
	return original
}

// NormalizeCountry - страна из ответа провайдера, иначе исходная
func NormalizeCountry(r *GeocodeResult, original string) string {
	if r != nil && r.ResolvedCountry != nil && *r.ResolvedCountry != "" {
		return *r.ResolvedCountry
	}
	return original
}
