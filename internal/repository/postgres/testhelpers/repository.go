package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/listings-marketplace/internal/domain/repository"
	"github.com/listings-marketplace/internal/repository/postgres"
)

// NewDBForTest создает postgres.DB поверх тестового соединения
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewListingRepositoryForTest создает репозиторий объявлений на тестовой базе
func NewListingRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ListingRepository {
	return postgres.NewListingRepository(NewDBForTest(db, logger))
}
