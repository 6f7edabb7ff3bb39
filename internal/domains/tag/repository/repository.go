package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"stayhub-backend/internal/domains/tag/model"
	"stayhub-backend/internal/shared/crud"
	"stayhub-backend/pkg/logger"
)

type Repository struct {
	*crud.Repository[model.Tag, *model.Tag]

	db  *pgxpool.Pool
	log zerolog.Logger
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		Repository: crud.NewRepository[model.Tag, *model.Tag](db, model.Table),
		db:         db,
		log:        logger.With("repository.tags"),
	}
}

// Attach links a tag to an entity; repeating the call is a no-op
func (r *Repository) Attach(ctx context.Context, entityType string, entityID, tagID uuid.UUID) error {
	query := `
		INSERT INTO entity_tags (entity_type, entity_id, tag_id)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`

	if _, err := r.db.Exec(ctx, query, entityType, entityID, tagID); err != nil {
		r.log.Error().Err(err).Str("entity_type", entityType).Msg("Failed to attach tag")
		return err
	}
	return nil
}

func (r *Repository) Detach(ctx context.Context, entityType string, entityID, tagID uuid.UUID) error {
	query := `DELETE FROM entity_tags WHERE entity_type = $1 AND entity_id = $2 AND tag_id = $3`

	if _, err := r.db.Exec(ctx, query, entityType, entityID, tagID); err != nil {
		r.log.Error().Err(err).Str("entity_type", entityType).Msg("Failed to detach tag")
		return err
	}
	return nil
}

// ListForEntity returns the live tags attached to one entity
func (r *Repository) ListForEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*model.Tag, error) {
	cols := make([]string, len(model.Table.Columns))
	for i, c := range model.Table.Columns {
		cols[i] = "t." + c
	}

	query := `
		SELECT ` + strings.Join(cols, ", ") + `
		FROM tags t
		JOIN entity_tags et ON et.tag_id = t.id
		WHERE et.entity_type = $1 AND et.entity_id = $2 AND t.deleted_at IS NULL
		ORDER BY t.name ASC`

	rows, err := r.db.Query(ctx, query, entityType, entityID)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to list entity tags")
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[model.Tag])
}

// GetPopular ranks tags by how many entities carry them
func (r *Repository) GetPopular(ctx context.Context, limit int) ([]*model.PopularTag, error) {
	query := `
		SELECT t.id, t.name, t.slug, COUNT(et.tag_id) AS usage_count
		FROM tags t
		JOIN entity_tags et ON et.tag_id = t.id
		WHERE t.deleted_at IS NULL
		GROUP BY t.id, t.name, t.slug
		ORDER BY usage_count DESC, t.name ASC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to rank popular tags")
		return nil, err
	}
	defer rows.Close()

	var out []*model.PopularTag
	for rows.Next() {
		var p model.PopularTag
		if err := rows.Scan(&p.Tag.ID, &p.Tag.Name, &p.Tag.Slug, &p.Count); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
