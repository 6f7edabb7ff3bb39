package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stayhub-backend/internal/domains/review/model"
	"stayhub-backend/internal/infrastructure/cache"
	"stayhub-backend/internal/shared/actor"
	"stayhub-backend/internal/shared/apperror"
	"stayhub-backend/internal/shared/crud"
	"stayhub-backend/internal/shared/types"
	"stayhub-backend/pkg/logger"
)

// One review submission per accommodation per cooldown window
const createCooldown = time.Minute

// RatingRefresher recomputes the denormalized rating aggregate after a
// review write. Implemented by the accommodation service.
type RatingRefresher interface {
	RefreshRating(ctx context.Context, accommodationID uuid.UUID) (types.RatingBreakdown, error)
}

type Service struct {
	*crud.Service[model.Review, *model.Review]

	ratings RatingRefresher
	limiter *cache.RateLimiter
	log     zerolog.Logger
}

func NewService(repo *crud.Repository[model.Review, *model.Review], ratings RatingRefresher, limiter *cache.RateLimiter) *Service {
	return &Service{
		Service: crud.NewService(repo, "Review"),
		ratings: ratings,
		limiter: limiter,
		log:     logger.With("service.reviews"),
	}
}

// Create submits a review and re-stamps the accommodation's rating
// aggregate. Submission is rate limited per actor.
func (s *Service) Create(ctx context.Context, act actor.Actor, req model.CreateReviewRequest) (*model.Review, error) {
	allowed, err := s.limiter.CheckAndSet(ctx, act.ID, "review:"+req.AccommodationID.String(), createCooldown)
	if err != nil {
		s.log.Warn().Err(err).Msg("Rate limiter unavailable, allowing request")
	} else if !allowed {
		return nil, apperror.NewRateLimited("Please wait before submitting another review")
	}

	review := &model.Review{
		AccommodationID: req.AccommodationID,
		AuthorID:        act.ID,
		Comment:         req.Comment,
		Cleanliness:     req.Cleanliness,
		Hospitality:     req.Hospitality,
		Services:        req.Services,
		Accuracy:        req.Accuracy,
		Communication:   req.Communication,
		Location:        req.Location,
	}

	created, err := s.Service.Create(ctx, act, review)
	if err != nil {
		_ = s.limiter.Clear(ctx, act.ID, "review:"+req.AccommodationID.String())
		return nil, err
	}

	s.refreshRating(ctx, req.AccommodationID)
	return created, nil
}

func (s *Service) Update(ctx context.Context, act actor.Actor, id uuid.UUID, req model.UpdateReviewRequest) (*model.Review, error) {
	updated, err := s.Service.Update(ctx, act, id, req.Changes())
	if err != nil {
		return nil, err
	}

	s.refreshRating(ctx, updated.AccommodationID)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, act actor.Actor, id uuid.UUID) error {
	review, err := s.Service.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Service.Delete(ctx, act, id); err != nil {
		return err
	}

	s.refreshRating(ctx, review.AccommodationID)
	return nil
}

// ListByAccommodation is the public review feed for one listing
func (s *Service) ListByAccommodation(ctx context.Context, act actor.Actor, accommodationID uuid.UUID, filter crud.Filter) ([]*model.Review, int, error) {
	return s.Service.List(ctx, act, filter.WithCondition("accommodation_id", accommodationID))
}

// ListByAuthor lists one user's reviews
func (s *Service) ListByAuthor(ctx context.Context, act actor.Actor, authorID uuid.UUID, filter crud.Filter) ([]*model.Review, int, error) {
	return s.Service.List(ctx, act, filter.WithCondition("author_id", authorID))
}

// refreshRating is best effort: a failed aggregate refresh does not
// fail the review write, the next write catches it up
func (s *Service) refreshRating(ctx context.Context, accommodationID uuid.UUID) {
	if s.ratings == nil {
		return
	}
	if _, err := s.ratings.RefreshRating(ctx, accommodationID); err != nil {
		s.log.Error().Err(err).
			Str("accommodation_id", accommodationID.String()).
			Msg("Failed to refresh rating aggregate")
	}
}
