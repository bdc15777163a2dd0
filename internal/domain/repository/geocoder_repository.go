package repository

import (
	"context"

	"github.com/listings-marketplace/internal/domain"
)

// Geocoder - внешний провайдер прямого геокодирования
type Geocoder interface {
	// Geocode возвращает упорядоченный список кандидатов для строки запроса.
	// Пустой список - не ошибка.
	Geocode(ctx context.Context, query string) ([]domain.GeocodeCandidate, error)
}
