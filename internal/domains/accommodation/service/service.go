package service

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"stayhub-backend/internal/domains/accommodation/model"
	"stayhub-backend/internal/domains/accommodation/repository"
	reviewModel "stayhub-backend/internal/domains/review/model"
	"stayhub-backend/internal/infrastructure/queue"
	"stayhub-backend/internal/infrastructure/search"
	"stayhub-backend/internal/shared/actor"
	"stayhub-backend/internal/shared/apperror"
	"stayhub-backend/internal/shared/crud"
	"stayhub-backend/internal/shared/types"
	"stayhub-backend/internal/shared/utils"
	"stayhub-backend/pkg/logger"
)

// TopRatedCandidateCap bounds how many published rows the ranking
// considers per request
const TopRatedCandidateCap = 100

var errTaskQueueDisabled = errors.New("task queue is not configured")

// listingStore is the read surface the derived operations (detail
// aggregate, rating, ranking, recommendation) go through. The
// repository implements it; tests substitute their own.
type listingStore interface {
	GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*model.Accommodation, error)
	List(ctx context.Context, filter crud.Filter) ([]*model.Accommodation, int, error)
	ComputeRating(ctx context.Context, id uuid.UUID) (types.RatingBreakdown, error)
	ListAmenities(ctx context.Context, id uuid.UUID) ([]*model.Amenity, error)
	ListFaqs(ctx context.Context, id uuid.UUID) ([]*model.Faq, error)
	ListAiContents(ctx context.Context, id uuid.UUID) ([]*model.AiContent, error)
	ListReviews(ctx context.Context, id uuid.UUID, limit int) ([]*reviewModel.Review, error)
}

type Service struct {
	*crud.Service[model.Accommodation, *model.Accommodation]

	repo       *repository.Repository
	store      listingStore
	amenities  *crud.Service[model.Amenity, *model.Amenity]
	faqs       *crud.Service[model.Faq, *model.Faq]
	aiContents *crud.Service[model.AiContent, *model.AiContent]
	search     *search.Client
	queue      *queue.Client
	log        zerolog.Logger
}

func NewService(repo *repository.Repository, searchClient *search.Client, queueClient *queue.Client) *Service {
	pool := repo.Pool()
	return &Service{
		Service:    crud.NewService(repo.Repository, "Accommodation"),
		repo:       repo,
		store:      repo,
		amenities:  crud.NewService(crud.NewRepository[model.Amenity, *model.Amenity](pool, model.AmenityTable), "Amenity"),
		faqs:       crud.NewService(crud.NewRepository[model.Faq, *model.Faq](pool, model.FaqTable), "FAQ"),
		aiContents: crud.NewService(crud.NewRepository[model.AiContent, *model.AiContent](pool, model.AiContentTable), "AI content"),
		search:     searchClient,
		queue:      queueClient,
		log:        logger.With("service.accommodations"),
	}
}

// ===== LIFECYCLE =====

// Create requires a host or admin account. New listings start as drafts.
func (s *Service) Create(ctx context.Context, act actor.Actor, req model.CreateAccommodationRequest) (*model.Accommodation, error) {
	if act.Role == actor.RoleGuest {
		return nil, apperror.NewForbidden("Host account required to create listings")
	}

	acc := &model.Accommodation{
		Name:          req.Name,
		Description:   req.Description,
		Type:          req.Type,
		State:         model.StateDraft,
		HostID:        act.ID,
		DestinationID: req.DestinationID,
		Address:       req.Address,
		City:          req.City,
		Price:         req.Price,
		Media:         req.Media,
		MaxGuests:     req.MaxGuests,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
	}
	acc.SetID(uuid.New())
	// Slug gets an id fragment so two hosts can reuse a listing name
	acc.Slug = utils.GenerateSlug(req.Name) + "-" + acc.GetID().String()[:8]

	return s.Service.Create(ctx, act, acc)
}

func (s *Service) Update(ctx context.Context, act actor.Actor, id uuid.UUID, req model.UpdateAccommodationRequest) (*model.Accommodation, error) {
	changes := req.Changes()
	if name, ok := changes["name"]; ok {
		changes["slug"] = utils.GenerateSlug(name.(string)) + "-" + id.String()[:8]
	}

	updated, err := s.Service.Update(ctx, act, id, changes)
	if err != nil {
		return nil, err
	}

	s.syncSearchIndex(updated)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, act actor.Actor, id uuid.UUID) error {
	if err := s.Service.Delete(ctx, act, id); err != nil {
		return err
	}

	if s.search.Enabled() {
		_ = s.search.DeleteDocument(search.IndexAccommodations, id.String())
	}
	return nil
}

// ===== DETAIL AGGREGATE =====

// GetWithDetails loads the listing and its children in parallel:
// amenities, FAQs and the newest reviews for everyone, AI content only
// for the host or an admin.
func (s *Service) GetWithDetails(ctx context.Context, act actor.Actor, id uuid.UUID) (*model.Details, error) {
	acc, err := s.store.GetByID(ctx, id, false)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if acc == nil {
		return nil, apperror.NewNotFound("Accommodation")
	}

	details := &model.Details{Accommodation: acc}
	includeAi := act.IsAdmin() || act.Owns(acc.OwnerID())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		amenities, err := s.store.ListAmenities(gctx, id)
		if err != nil {
			return err
		}
		details.Amenities = amenities
		return nil
	})

	g.Go(func() error {
		faqs, err := s.store.ListFaqs(gctx, id)
		if err != nil {
			return err
		}
		details.Faqs = faqs
		return nil
	})

	g.Go(func() error {
		reviews, err := s.store.ListReviews(gctx, id, crud.DefaultLimit)
		if err != nil {
			return err
		}
		details.Reviews = reviews
		return nil
	})

	if includeAi {
		g.Go(func() error {
			contents, err := s.store.ListAiContents(gctx, id)
			if err != nil {
				return err
			}
			details.AiContents = contents
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, apperror.NewInternal(err)
	}
	return details, nil
}

// ===== RATING =====

// GetAverageRating recomputes the six-category averages from live
// reviews, rounded to one decimal place
func (s *Service) GetAverageRating(ctx context.Context, id uuid.UUID) (types.RatingBreakdown, error) {
	acc, err := s.store.GetByID(ctx, id, false)
	if err != nil {
		return types.RatingBreakdown{}, apperror.NewInternal(err)
	}
	if acc == nil {
		return types.RatingBreakdown{}, apperror.NewNotFound("Accommodation")
	}

	breakdown, err := s.store.ComputeRating(ctx, id)
	if err != nil {
		return types.RatingBreakdown{}, apperror.NewInternal(err)
	}
	return roundBreakdown(breakdown), nil
}

// RefreshRating recomputes and stamps the denormalized aggregate.
// Review mutations call this after every write.
func (s *Service) RefreshRating(ctx context.Context, id uuid.UUID) (types.RatingBreakdown, error) {
	breakdown, err := s.repo.ComputeRating(ctx, id)
	if err != nil {
		return types.RatingBreakdown{}, apperror.NewInternal(err)
	}
	breakdown = roundBreakdown(breakdown)

	if err := s.repo.StampRating(ctx, id, breakdown); err != nil {
		return types.RatingBreakdown{}, apperror.NewInternal(err)
	}
	return breakdown, nil
}

func roundBreakdown(b types.RatingBreakdown) types.RatingBreakdown {
	b.Cleanliness = utils.Round1(b.Cleanliness)
	b.Hospitality = utils.Round1(b.Hospitality)
	b.Services = utils.Round1(b.Services)
	b.Accuracy = utils.Round1(b.Accuracy)
	b.Communication = utils.Round1(b.Communication)
	b.Location = utils.Round1(b.Location)
	return b
}

// GetTopRated ranks published listings by the unweighted mean of the
// six category averages, computed fresh on every call
func (s *Service) GetTopRated(ctx context.Context, limit int) ([]*model.Accommodation, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > TopRatedCandidateCap {
		limit = TopRatedCandidateCap
	}

	candidates, _, err := s.store.List(ctx, crud.Filter{Limit: TopRatedCandidateCap}.WithCondition("state", model.StatePublished))
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Rating.Overall() > candidates[j].Rating.Overall()
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// ===== RECOMMENDATION =====

// RecommendSimilar returns published listings of the same type in the
// same destination. One extra row is fetched so the source can be
// dropped without shrinking the page.
func (s *Service) RecommendSimilar(ctx context.Context, id uuid.UUID, limit int) ([]*model.Accommodation, error) {
	if limit <= 0 {
		limit = 6
	}

	source, err := s.store.GetByID(ctx, id, false)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if source == nil {
		return nil, apperror.NewNotFound("Accommodation")
	}

	filter := crud.Filter{Limit: limit + 1}.
		WithCondition("type", source.Type).
		WithCondition("destination_id", source.DestinationID).
		WithCondition("state", model.StatePublished)

	candidates, _, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	similar := make([]*model.Accommodation, 0, limit)
	for _, c := range candidates {
		if c.ID == source.ID {
			continue
		}
		similar = append(similar, c)
		if len(similar) == limit {
			break
		}
	}
	return similar, nil
}

// ===== SCOPED LISTINGS =====

// GetByOwner shows drafts only to the host themself or an admin
func (s *Service) GetByOwner(ctx context.Context, act actor.Actor, hostID uuid.UUID, filter crud.Filter) ([]*model.Accommodation, int, error) {
	filter = filter.WithCondition("host_id", hostID)
	if !act.IsAdmin() && act.ID != hostID {
		filter = filter.WithCondition("state", model.StatePublished)
	}
	return s.Service.List(ctx, act, filter)
}

func (s *Service) GetByType(ctx context.Context, act actor.Actor, accType string, filter crud.Filter) ([]*model.Accommodation, int, error) {
	filter = filter.
		WithCondition("type", accType).
		WithCondition("state", model.StatePublished)
	return s.Service.List(ctx, act, filter)
}

func (s *Service) ListByDestination(ctx context.Context, act actor.Actor, destinationID uuid.UUID, filter crud.Filter) ([]*model.Accommodation, int, error) {
	filter = filter.
		WithCondition("destination_id", destinationID).
		WithCondition("state", model.StatePublished)
	return s.Service.List(ctx, act, filter)
}

// GetByState is an admin moderation view across all hosts
func (s *Service) GetByState(ctx context.Context, act actor.Actor, state string, filter crud.Filter) ([]*model.Accommodation, int, error) {
	if err := act.AssertAdmin(); err != nil {
		return nil, 0, err
	}
	return s.Service.List(ctx, act, filter.WithCondition("state", state))
}

// ===== SEARCH =====

// SearchFullText uses the search index when configured and falls back
// to ILIKE otherwise
func (s *Service) SearchFullText(ctx context.Context, act actor.Actor, query string, limit int) ([]*model.Accommodation, error) {
	if limit <= 0 || limit > crud.MaxLimit {
		limit = crud.DefaultLimit
	}

	if !s.search.Enabled() {
		items, _, err := s.Service.List(ctx, act, crud.Filter{
			Search: query,
			Limit:  limit,
		}.WithCondition("state", model.StatePublished))
		return items, err
	}

	ids, err := s.search.Search(search.IndexAccommodations, query, limit)
	if err != nil {
		s.log.Warn().Err(err).Msg("Search index query failed, falling back to SQL")
		items, _, listErr := s.Service.List(ctx, act, crud.Filter{
			Search: query,
			Limit:  limit,
		}.WithCondition("state", model.StatePublished))
		return items, listErr
	}

	rows, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	// Preserve index relevance order
	byID := make(map[uuid.UUID]*model.Accommodation, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	ordered := make([]*model.Accommodation, 0, len(ids))
	for _, id := range ids {
		if row, ok := byID[id]; ok && row.State == model.StatePublished {
			ordered = append(ordered, row)
		}
	}
	return ordered, nil
}

func (s *Service) syncSearchIndex(acc *model.Accommodation) {
	if !s.search.Enabled() {
		return
	}

	if acc.State != model.StatePublished {
		_ = s.search.DeleteDocument(search.IndexAccommodations, acc.ID.String())
		return
	}

	_ = s.search.IndexDocument(search.IndexAccommodations, SearchDoc(acc))
}

// SearchDoc flattens a listing for the search index
func SearchDoc(acc *model.Accommodation) map[string]any {
	return map[string]any{
		"id":          acc.ID.String(),
		"name":        acc.Name,
		"description": acc.Description,
		"type":        acc.Type,
		"city":        acc.City,
		"rating":      acc.Rating.Overall(),
		"created_at":  acc.CreatedAt.Unix(),
	}
}
