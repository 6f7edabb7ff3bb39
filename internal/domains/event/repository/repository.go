package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"stayhub-backend/internal/domains/event/model"
	"stayhub-backend/internal/shared/crud"
	"stayhub-backend/pkg/logger"
)

type Repository struct {
	*crud.Repository[model.Event, *model.Event]

	db  *pgxpool.Pool
	log zerolog.Logger
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		Repository: crud.NewRepository[model.Event, *model.Event](db, model.Table),
		db:         db,
		log:        logger.With("repository.events"),
	}
}

// ListUpcoming returns live events that have not ended yet, soonest first
func (r *Repository) ListUpcoming(ctx context.Context, limit int) ([]*model.Event, error) {
	query := `
		SELECT ` + strings.Join(model.Table.Columns, ", ") + `
		FROM events
		WHERE ends_at >= $1 AND deleted_at IS NULL
		ORDER BY starts_at ASC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, time.Now(), limit)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to list upcoming events")
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[model.Event])
}
