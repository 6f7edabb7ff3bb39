package crud

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"stayhub-backend/internal/shared/actor"
	"stayhub-backend/internal/shared/apperror"
	"stayhub-backend/pkg/database"
	"stayhub-backend/pkg/logger"
)

// Service implements the permission-aware lifecycle shared by every
// entity: authenticated create, public-by-default reads that hide
// deleted rows, and owner-or-admin mutations that fetch, authorize and
// write inside one transaction.
type Service[T any, PT interface {
	*T
	Entity
}] struct {
	repo     *Repository[T, PT]
	resource string
	log      zerolog.Logger
}

func NewService[T any, PT interface {
	*T
	Entity
}](repo *Repository[T, PT], resource string) *Service[T, PT] {
	return &Service[T, PT]{
		repo:     repo,
		resource: resource,
		log:      logger.With("service." + repo.Table().Name),
	}
}

func (s *Service[T, PT]) Repo() *Repository[T, PT] {
	return s.repo
}

func (s *Service[T, PT]) Resource() string {
	return s.resource
}

func (s *Service[T, PT]) notFound() error {
	return apperror.NewNotFound(s.resource)
}

// ===== READ =====

func (s *Service[T, PT]) GetByID(ctx context.Context, id uuid.UUID) (PT, error) {
	entity, err := s.repo.GetByID(ctx, id, false)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if entity == nil {
		return nil, s.notFound()
	}
	return entity, nil
}

// ResolveOwner returns the live entity's owner column, nil for
// unowned entities. Cross-domain callers use it to authorize against
// an entity without depending on its concrete type.
func (s *Service[T, PT]) ResolveOwner(ctx context.Context, id uuid.UUID) (*uuid.UUID, error) {
	entity, err := s.repo.GetByID(ctx, id, false)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if entity == nil {
		return nil, s.notFound()
	}
	return entity.OwnerID(), nil
}

// GetByIDAs honors includeDeleted only for admins
func (s *Service[T, PT]) GetByIDAs(ctx context.Context, act actor.Actor, id uuid.UUID, includeDeleted bool) (PT, error) {
	if includeDeleted && !act.IsAdmin() {
		includeDeleted = false
	}

	entity, err := s.repo.GetByID(ctx, id, includeDeleted)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if entity == nil {
		return nil, s.notFound()
	}
	return entity, nil
}

// List hides deleted rows from everyone but admins
func (s *Service[T, PT]) List(ctx context.Context, act actor.Actor, filter Filter) ([]PT, int, error) {
	if filter.IncludeDeleted && !act.IsAdmin() {
		filter.IncludeDeleted = false
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, apperror.NewInternal(err)
	}
	return items, total, nil
}

// ===== WRITE =====

// Create stamps the audit block and inserts. Validation has already
// run at the DTO layer.
func (s *Service[T, PT]) Create(ctx context.Context, act actor.Actor, entity PT) (PT, error) {
	entity.StampCreate(act.ID, time.Now())

	if err := s.repo.Create(ctx, s.repo.Pool(), entity); err != nil {
		return nil, apperror.NewInternal(err)
	}

	s.log.Info().
		Str("id", entity.GetID().String()).
		Str("actor_id", act.ID.String()).
		Msgf("%s created", s.resource)
	return entity, nil
}

// Update runs fetch-authorize-mutate in one transaction. The row is
// locked before the permission check so a concurrent owner change
// cannot slip between check and write.
func (s *Service[T, PT]) Update(ctx context.Context, act actor.Actor, id uuid.UUID, changes map[string]any) (PT, error) {
	return database.WithTransactionResult(ctx, s.repo.Pool(), func(tx pgx.Tx) (PT, error) {
		current, err := s.repo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return nil, apperror.NewInternal(err)
		}
		if current == nil || current.IsDeleted() {
			return nil, s.notFound()
		}

		if err := act.AssertOwnerOrAdmin(current.OwnerID()); err != nil {
			return nil, err
		}

		sanitized := s.sanitizeChanges(act, changes)
		sanitized["updated_at"] = time.Now()
		if act.ID != uuid.Nil {
			sanitized["updated_by_id"] = act.ID
		}

		updated, err := s.repo.Update(ctx, tx, id, sanitized)
		if err != nil {
			if errors.Is(err, ErrNoColumns) {
				return nil, apperror.NewValidation("No updatable fields in request", nil)
			}
			if errors.Is(err, ErrNotFound) {
				return nil, s.notFound()
			}
			return nil, apperror.NewInternal(err)
		}

		s.log.Info().
			Str("id", id.String()).
			Str("actor_id", act.ID.String()).
			Msgf("%s updated", s.resource)
		return updated, nil
	})
}

// Delete soft-deletes. Deleting an already-deleted row succeeds
// without touching its original deletion stamp.
func (s *Service[T, PT]) Delete(ctx context.Context, act actor.Actor, id uuid.UUID) error {
	return database.WithTransaction(ctx, s.repo.Pool(), func(tx pgx.Tx) error {
		current, err := s.repo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return apperror.NewInternal(err)
		}
		if current == nil {
			return s.notFound()
		}

		if err := act.AssertOwnerOrAdmin(current.OwnerID()); err != nil {
			return err
		}

		if current.IsDeleted() {
			return nil
		}

		if err := s.repo.SoftDelete(ctx, tx, id, act.ID); err != nil {
			return apperror.NewInternal(err)
		}

		s.log.Info().
			Str("id", id.String()).
			Str("actor_id", act.ID.String()).
			Msgf("%s deleted", s.resource)
		return nil
	})
}

// Restore clears the soft-delete pair. Restoring a live row is a no-op.
func (s *Service[T, PT]) Restore(ctx context.Context, act actor.Actor, id uuid.UUID) error {
	return database.WithTransaction(ctx, s.repo.Pool(), func(tx pgx.Tx) error {
		current, err := s.repo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return apperror.NewInternal(err)
		}
		if current == nil {
			return s.notFound()
		}

		if err := act.AssertOwnerOrAdmin(current.OwnerID()); err != nil {
			return err
		}

		if !current.IsDeleted() {
			return nil
		}

		if err := s.repo.Restore(ctx, tx, id, act.ID); err != nil {
			return apperror.NewInternal(err)
		}

		s.log.Info().
			Str("id", id.String()).
			Str("actor_id", act.ID.String()).
			Msgf("%s restored", s.resource)
		return nil
	})
}

// HardDelete permanently removes the row. Admin only.
func (s *Service[T, PT]) HardDelete(ctx context.Context, act actor.Actor, id uuid.UUID) error {
	if err := act.AssertAdmin(); err != nil {
		return err
	}

	if err := s.repo.HardDelete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return s.notFound()
		}
		return apperror.NewInternal(err)
	}

	s.log.Warn().
		Str("id", id.String()).
		Str("actor_id", act.ID.String()).
		Msgf("%s hard deleted", s.resource)
	return nil
}

// sanitizeChanges strips the audit block from caller-supplied changes
// and keeps non-admins from reassigning ownership
func (s *Service[T, PT]) sanitizeChanges(act actor.Actor, changes map[string]any) map[string]any {
	blocked := map[string]bool{}
	for _, col := range AuditColumns {
		blocked[col] = true
	}
	if owner := s.repo.Table().OwnerColumn; owner != "" && !act.IsAdmin() {
		blocked[owner] = true
	}

	out := make(map[string]any, len(changes))
	for col, v := range changes {
		if blocked[col] {
			continue
		}
		out[col] = v
	}
	return out
}
