package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"stayhub-backend/internal/domains/accommodation/model"
	reviewModel "stayhub-backend/internal/domains/review/model"
	"stayhub-backend/internal/shared/crud"
	"stayhub-backend/internal/shared/types"
	"stayhub-backend/pkg/logger"
)

// Repository layers accommodation-specific queries on top of the
// generic CRUD repository
type Repository struct {
	*crud.Repository[model.Accommodation, *model.Accommodation]

	db  *pgxpool.Pool
	log zerolog.Logger
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		Repository: crud.NewRepository[model.Accommodation, *model.Accommodation](db, model.Table),
		db:         db,
		log:        logger.With("repository.accommodations"),
	}
}

// GetByIDs fetches live rows for an id set, preserving no particular order
func (r *Repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Accommodation, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + columnList(model.Table) + `
		FROM accommodations
		WHERE id = ANY($1) AND deleted_at IS NULL`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to fetch accommodations by ids")
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[model.Accommodation])
}

// ===== RATING =====

// ComputeRating averages the six review categories over live reviews.
// Zero reviews produce the all-zero breakdown.
func (r *Repository) ComputeRating(ctx context.Context, accommodationID uuid.UUID) (types.RatingBreakdown, error) {
	query := `
		SELECT
			COALESCE(AVG(cleanliness), 0),
			COALESCE(AVG(hospitality), 0),
			COALESCE(AVG(services), 0),
			COALESCE(AVG(accuracy), 0),
			COALESCE(AVG(communication), 0),
			COALESCE(AVG(location), 0),
			COUNT(*)
		FROM reviews
		WHERE accommodation_id = $1 AND deleted_at IS NULL`

	var breakdown types.RatingBreakdown
	err := r.db.QueryRow(ctx, query, accommodationID).Scan(
		&breakdown.Cleanliness,
		&breakdown.Hospitality,
		&breakdown.Services,
		&breakdown.Accuracy,
		&breakdown.Communication,
		&breakdown.Location,
		&breakdown.Count,
	)
	if err != nil {
		r.log.Error().Err(err).Str("accommodation_id", accommodationID.String()).Msg("Failed to compute rating")
		return types.RatingBreakdown{}, err
	}
	return breakdown, nil
}

// StampRating writes the denormalized rating aggregate without
// touching the audit columns
func (r *Repository) StampRating(ctx context.Context, accommodationID uuid.UUID, rating types.RatingBreakdown) error {
	query := `UPDATE accommodations SET rating = $1 WHERE id = $2`

	if _, err := r.db.Exec(ctx, query, rating, accommodationID); err != nil {
		r.log.Error().Err(err).Str("accommodation_id", accommodationID.String()).Msg("Failed to stamp rating")
		return err
	}
	return nil
}

// ===== DETAIL CHILDREN =====

func (r *Repository) ListFaqs(ctx context.Context, accommodationID uuid.UUID) ([]*model.Faq, error) {
	query := `
		SELECT ` + columnList(model.FaqTable) + `
		FROM faqs
		WHERE accommodation_id = $1 AND deleted_at IS NULL
		ORDER BY position ASC, created_at ASC`

	rows, err := r.db.Query(ctx, query, accommodationID)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to list FAQs")
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[model.Faq])
}

func (r *Repository) ListAiContents(ctx context.Context, accommodationID uuid.UUID) ([]*model.AiContent, error) {
	query := `
		SELECT ` + columnList(model.AiContentTable) + `
		FROM ai_contents
		WHERE accommodation_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, accommodationID)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to list AI contents")
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[model.AiContent])
}

// ListReviews returns the newest live reviews for one listing
func (r *Repository) ListReviews(ctx context.Context, accommodationID uuid.UUID, limit int) ([]*reviewModel.Review, error) {
	query := `
		SELECT ` + columnList(reviewModel.Table) + `
		FROM reviews
		WHERE accommodation_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, accommodationID, limit)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to list reviews")
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[reviewModel.Review])
}

// ===== AMENITY JOIN =====

func (r *Repository) ListAmenities(ctx context.Context, accommodationID uuid.UUID) ([]*model.Amenity, error) {
	query := `
		SELECT ` + prefixedColumnList("a", model.AmenityTable) + `
		FROM amenities a
		JOIN accommodation_amenities aa ON aa.amenity_id = a.id
		WHERE aa.accommodation_id = $1 AND a.deleted_at IS NULL
		ORDER BY a.category ASC, a.name ASC`

	rows, err := r.db.Query(ctx, query, accommodationID)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to list amenities")
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[model.Amenity])
}

// AttachAmenity links an amenity; re-attaching is a no-op
func (r *Repository) AttachAmenity(ctx context.Context, accommodationID, amenityID uuid.UUID) error {
	query := `
		INSERT INTO accommodation_amenities (accommodation_id, amenity_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	if _, err := r.db.Exec(ctx, query, accommodationID, amenityID); err != nil {
		r.log.Error().Err(err).Msg("Failed to attach amenity")
		return err
	}
	return nil
}

func (r *Repository) DetachAmenity(ctx context.Context, accommodationID, amenityID uuid.UUID) error {
	query := `DELETE FROM accommodation_amenities WHERE accommodation_id = $1 AND amenity_id = $2`

	if _, err := r.db.Exec(ctx, query, accommodationID, amenityID); err != nil {
		r.log.Error().Err(err).Msg("Failed to detach amenity")
		return err
	}
	return nil
}

// ===== HELPERS =====

func columnList(table crud.Table) string {
	out := ""
	for i, c := range table.Columns {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}

func prefixedColumnList(alias string, table crud.Table) string {
	out := ""
	for i, c := range table.Columns {
		if i > 0 {
			out += ", "
		}
		out += alias + "." + c
	}
	return out
}
