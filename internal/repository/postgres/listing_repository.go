package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/listings-marketplace/internal/domain"
	"github.com/listings-marketplace/internal/domain/repository"
	apperrors "github.com/listings-marketplace/internal/pkg/errors"
)

// insertBatchSize - строк в одном INSERT (лимит параметров PostgreSQL 65535)
const insertBatchSize = 1000

const listingColumns = `
	id, title, description, image_url, image_filename, price,
	location, country, lng, lat, category, created_at, updated_at`

const insertListingQuery = `
	INSERT INTO listings (` + listingColumns + `)
	VALUES (
		:id, :title, :description, :image_url, :image_filename, :price,
		:location, :country, :lng, :lat, :category, :created_at, :updated_at
	)`

type listingRow struct {
	ID            uuid.UUID `db:"id"`
	Title         string    `db:"title"`
	Description   string    `db:"description"`
	ImageURL      string    `db:"image_url"`
	ImageFilename string    `db:"image_filename"`
	Price         float64   `db:"price"`
	Location      string    `db:"location"`
	Country       string    `db:"country"`
	Lng           float64   `db:"lng"`
	Lat           float64   `db:"lat"`
	Category      string    `db:"category"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func toRow(l *domain.Listing) listingRow {
	return listingRow{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		ImageURL:      l.Image.URL,
		ImageFilename: l.Image.Filename,
		Price:         l.Price,
		Location:      l.Location,
		Country:       l.Country,
		Lng:           l.Geometry.Lng(),
		Lat:           l.Geometry.Lat(),
		Category:      string(l.Category),
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func (r listingRow) toDomain() *domain.Listing {
	return &domain.Listing{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Image:       domain.Image{URL: r.ImageURL, Filename: r.ImageFilename},
		Price:       r.Price,
		Location:    r.Location,
		Country:     r.Country,
		Geometry:    domain.NewPoint(r.Lng, r.Lat),
		Category:    domain.Category(r.Category),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type listingRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewListingRepository(db *DB) repository.ListingRepository {
	return &listingRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// escapeLike экранирует спецсимволы LIKE, чтобы ввод искался буквально
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

func (r *listingRepository) Find(ctx context.Context, filter domain.ListingFilter) ([]*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings`

	var (
		conds []string
		args  []interface{}
	)
	argIdx := 1

	if filter.HasSearch() {
		conds = append(conds, fmt.Sprintf(
			`(title ILIKE $%[1]d OR description ILIKE $%[1]d OR location ILIKE $%[1]d OR country ILIKE $%[1]d)`,
			argIdx))
		args = append(args, "%"+escapeLike(strings.TrimSpace(filter.Search))+"%")
		argIdx++
	}

	if filter.HasCategory() {
		conds = append(conds, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, filter.Category)
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at, id"

	var rows []listingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("Failed to find listings",
			zap.String("search", filter.Search),
			zap.String("category", filter.Category),
			zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return toDomainList(rows), nil
}

func (r *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	var row listingRow
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrListingNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get listing by ID", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return row.toDomain(), nil
}

func (r *listingRepository) FindWithInvalidCoordinates(ctx context.Context) ([]*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE lng = 0 AND lat = 0 ORDER BY created_at, id`

	var rows []listingRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.logger.Error("Failed to find listings with sentinel coordinates", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return toDomainList(rows), nil
}

func (r *listingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	if _, err := r.db.NamedExecContext(ctx, insertListingQuery, toRow(listing)); err != nil {
		r.logger.Error("Failed to insert listing", zap.String("id", listing.ID.String()), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	return nil
}

func (r *listingRepository) Update(ctx context.Context, id uuid.UUID, patch domain.ListingPatch) (*domain.Listing, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	defer func() { _ = tx.Rollback() }()

	var row listingRow
	err = tx.GetContext(ctx, &row, `SELECT `+listingColumns+` FROM listings WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrListingNotFound
	}
	if err != nil {
		r.logger.Error("Failed to lock listing", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	listing := row.toDomain()
	patch.Apply(listing)

	query := `
		UPDATE listings SET
			title = :title,
			description = :description,
			image_url = :image_url,
			image_filename = :image_filename,
			price = :price,
			location = :location,
			country = :country,
			lng = :lng,
			lat = :lat,
			category = :category,
			updated_at = :updated_at
		WHERE id = :id`

	if _, err := tx.NamedExecContext(ctx, query, toRow(listing)); err != nil {
		r.logger.Error("Failed to update listing", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit listing update", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return listing, nil
}

func (r *listingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete listing", zap.String("id", id.String()), zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.ErrDatabaseError
	}
	if affected == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *listingRepository) InsertMany(ctx context.Context, listings []*domain.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	defer func() { _ = tx.Rollback() }()

	for start := 0; start < len(listings); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(listings) {
			end = len(listings)
		}

		rows := make([]listingRow, 0, end-start)
		for _, l := range listings[start:end] {
			rows = append(rows, toRow(l))
		}

		if _, err := tx.NamedExecContext(ctx, insertListingQuery, rows); err != nil {
			r.logger.Error("Failed to bulk insert listings",
				zap.Int("batch_start", start),
				zap.Int("batch_size", len(rows)),
				zap.Error(err))
			return apperrors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit bulk insert", zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	r.logger.Info("Listings inserted", zap.Int("count", len(listings)))
	return nil
}

func (r *listingRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM listings`)
	if err != nil {
		r.logger.Error("Failed to delete all listings", zap.Error(err))
		return 0, apperrors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.ErrDatabaseError
	}
	return affected, nil
}

func toDomainList(rows []listingRow) []*domain.Listing {
	out := make([]*domain.Listing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
