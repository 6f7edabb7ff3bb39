package service

import (
	"context"

	"github.com/google/uuid"

	"stayhub-backend/internal/domains/event/model"
	"stayhub-backend/internal/domains/event/repository"
	"stayhub-backend/internal/infrastructure/search"
	"stayhub-backend/internal/shared/actor"
	"stayhub-backend/internal/shared/apperror"
	"stayhub-backend/internal/shared/crud"
	"stayhub-backend/internal/shared/utils"
)

type Service struct {
	*crud.Service[model.Event, *model.Event]

	repo   *repository.Repository
	search *search.Client
}

func NewService(repo *repository.Repository, searchClient *search.Client) *Service {
	return &Service{
		Service: crud.NewService(repo.Repository, "Event"),
		repo:    repo,
		search:  searchClient,
	}
}

// Create is open to hosts and admins
func (s *Service) Create(ctx context.Context, act actor.Actor, req model.CreateEventRequest) (*model.Event, error) {
	if act.Role == actor.RoleGuest {
		return nil, apperror.NewForbidden("Host account required to create events")
	}

	event := &model.Event{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		OrganizerID:   act.ID,
		DestinationID: req.DestinationID,
		VenueName:     req.VenueName,
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
		Media:         req.Media,
	}
	event.SetID(uuid.New())
	event.Slug = utils.GenerateSlug(req.Title) + "-" + event.GetID().String()[:8]

	created, err := s.Service.Create(ctx, act, event)
	if err != nil {
		return nil, err
	}

	s.indexDocument(created)
	return created, nil
}

func (s *Service) Update(ctx context.Context, act actor.Actor, id uuid.UUID, req model.UpdateEventRequest) (*model.Event, error) {
	changes := req.Changes()
	if title, ok := changes["title"]; ok {
		changes["slug"] = utils.GenerateSlug(title.(string)) + "-" + id.String()[:8]
	}

	updated, err := s.Service.Update(ctx, act, id, changes)
	if err != nil {
		return nil, err
	}

	s.indexDocument(updated)
	return updated, nil
}

// Delete removes the event and purges its search document
func (s *Service) Delete(ctx context.Context, act actor.Actor, id uuid.UUID) error {
	if err := s.Service.Delete(ctx, act, id); err != nil {
		return err
	}

	if s.search.Enabled() {
		_ = s.search.DeleteDocument(search.IndexEvents, id.String())
	}
	return nil
}

// SearchFullText uses the search index when configured and falls back
// to ILIKE otherwise
func (s *Service) SearchFullText(ctx context.Context, query string, limit int) ([]*model.Event, error) {
	if limit <= 0 || limit > crud.MaxLimit {
		limit = crud.DefaultLimit
	}

	if !s.search.Enabled() {
		return s.searchFallback(ctx, query, limit)
	}

	ids, err := s.search.Search(search.IndexEvents, query, limit)
	if err != nil {
		return s.searchFallback(ctx, query, limit)
	}

	rows, err := s.Repo().GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	// Preserve index relevance order
	byID := make(map[uuid.UUID]*model.Event, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	ordered := make([]*model.Event, 0, len(ids))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			ordered = append(ordered, row)
		}
	}
	return ordered, nil
}

func (s *Service) searchFallback(ctx context.Context, query string, limit int) ([]*model.Event, error) {
	items, _, err := s.Repo().List(ctx, crud.Filter{Search: query, Limit: limit})
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return items, nil
}

// ListUpcoming powers the "what's on" feed
func (s *Service) ListUpcoming(ctx context.Context, limit int) ([]*model.Event, error) {
	if limit <= 0 || limit > crud.MaxLimit {
		limit = crud.DefaultLimit
	}

	events, err := s.repo.ListUpcoming(ctx, limit)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return events, nil
}

func (s *Service) GetByCategory(ctx context.Context, act actor.Actor, category string, filter crud.Filter) ([]*model.Event, int, error) {
	return s.Service.List(ctx, act, filter.WithCondition("category", category))
}

func (s *Service) ListByDestination(ctx context.Context, act actor.Actor, destinationID uuid.UUID, filter crud.Filter) ([]*model.Event, int, error) {
	return s.Service.List(ctx, act, filter.WithCondition("destination_id", destinationID))
}

// ReindexSearch rebuilds the event search index, one page at a time.
// Returns the number of documents written.
func (s *Service) ReindexSearch(ctx context.Context) (int, error) {
	if !s.search.Enabled() {
		return 0, nil
	}

	indexed := 0
	filter := crud.Filter{Limit: crud.MaxLimit}
	for {
		batch, _, err := s.Repo().List(ctx, filter)
		if err != nil {
			return indexed, err
		}
		for _, event := range batch {
			s.indexDocument(event)
			indexed++
		}
		if len(batch) < filter.Limit {
			return indexed, nil
		}
		filter.Offset += filter.Limit
	}
}

func (s *Service) indexDocument(event *model.Event) {
	if !s.search.Enabled() {
		return
	}

	_ = s.search.IndexDocument(search.IndexEvents, map[string]any{
		"id":          event.ID.String(),
		"title":       event.Title,
		"description": event.Description,
		"category":    event.Category,
		"venue_name":  event.VenueName,
		"starts_at":   event.StartsAt.Unix(),
		"created_at":  event.CreatedAt.Unix(),
	})
}
