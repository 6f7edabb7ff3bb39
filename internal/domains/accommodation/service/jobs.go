package service

import (
	"context"

	"github.com/google/uuid"

	"stayhub-backend/internal/domains/accommodation/model"
	"stayhub-backend/internal/infrastructure/search"
	"stayhub-backend/internal/shared/actor"
	"stayhub-backend/internal/shared/apperror"
	"stayhub-backend/internal/shared/crud"
	"stayhub-backend/internal/shared/types"
)

// ===== BACKGROUND JOBS =====

// ReindexSearch rebuilds the search index from the published listings.
// Returns the number of documents written.
func (s *Service) ReindexSearch(ctx context.Context) (int, error) {
	if !s.search.Enabled() {
		return 0, nil
	}

	indexed := 0
	filter := crud.Filter{Limit: crud.MaxLimit}.WithCondition("state", model.StatePublished)
	for {
		batch, _, err := s.repo.List(ctx, filter)
		if err != nil {
			return indexed, err
		}
		for _, acc := range batch {
			if err := s.search.IndexDocument(search.IndexAccommodations, SearchDoc(acc)); err != nil {
				s.log.Warn().Err(err).Str("id", acc.ID.String()).Msg("Reindex skipped document")
				continue
			}
			indexed++
		}
		if len(batch) < filter.Limit {
			return indexed, nil
		}
		filter.Offset += filter.Limit
	}
}

// RefreshAllRatings recomputes the denormalized rating aggregate for
// every published listing. Returns the number of listings refreshed.
func (s *Service) RefreshAllRatings(ctx context.Context) (int, error) {
	refreshed := 0
	filter := crud.Filter{Limit: crud.MaxLimit}.WithCondition("state", model.StatePublished)
	for {
		batch, _, err := s.repo.List(ctx, filter)
		if err != nil {
			return refreshed, err
		}
		for _, acc := range batch {
			if _, err := s.RefreshRating(ctx, acc.ID); err != nil {
				s.log.Warn().Err(err).Str("id", acc.ID.String()).Msg("Rating sweep skipped listing")
				continue
			}
			refreshed++
		}
		if len(batch) < filter.Limit {
			return refreshed, nil
		}
		filter.Offset += filter.Limit
	}
}

// Exists reports whether any row, soft-deleted included, holds the id.
// The media cleanup job keeps stored images for restorable listings.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	acc, err := s.repo.GetByID(ctx, id, true)
	if err != nil {
		return false, err
	}
	return acc != nil, nil
}

// ApplyGeneratedImage appends a generated media item to the listing.
// Called from the worker, so there is no acting user to authorize.
func (s *Service) ApplyGeneratedImage(ctx context.Context, id uuid.UUID, item types.MediaItem) error {
	acc, err := s.repo.GetByID(ctx, id, false)
	if err != nil {
		return err
	}
	if acc == nil || acc.IsDeleted() {
		return apperror.NewNotFound("Accommodation")
	}

	media := append(acc.Media, item)
	if _, err := s.repo.Update(ctx, s.repo.Pool(), id, map[string]any{"media": media}); err != nil {
		return err
	}

	s.syncSearchIndex(acc)
	return nil
}

// RequestImageGeneration validates ownership and hands the slow
// generation call off to the worker
func (s *Service) RequestImageGeneration(ctx context.Context, act actor.Actor, id uuid.UUID, prompt string) error {
	acc, err := s.Service.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := act.AssertOwnerOrAdmin(acc.OwnerID()); err != nil {
		return err
	}

	if !s.queue.Enabled() {
		return apperror.NewInternal(errTaskQueueDisabled)
	}
	if err := s.queue.EnqueueGenerateImage(id, prompt); err != nil {
		return apperror.NewInternal(err)
	}
	return nil
}
