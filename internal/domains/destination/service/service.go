package service

import (
	"context"

	"github.com/google/uuid"

	"stayhub-backend/internal/domains/destination/model"
	"stayhub-backend/internal/infrastructure/search"
	"stayhub-backend/internal/shared/actor"
	"stayhub-backend/internal/shared/apperror"
	"stayhub-backend/internal/shared/crud"
	"stayhub-backend/internal/shared/utils"
)

type Service struct {
	*crud.Service[model.Destination, *model.Destination]

	search *search.Client
}

func NewService(repo *crud.Repository[model.Destination, *model.Destination], searchClient *search.Client) *Service {
	return &Service{
		Service: crud.NewService(repo, "Destination"),
		search:  searchClient,
	}
}

// Create is admin only; the slug is derived from the name
func (s *Service) Create(ctx context.Context, act actor.Actor, req model.CreateDestinationRequest) (*model.Destination, error) {
	if err := act.AssertAdmin(); err != nil {
		return nil, err
	}

	slug := utils.GenerateSlug(req.Name)
	if existing, err := s.Repo().GetOneBy(ctx, "slug", slug); err != nil {
		return nil, apperror.NewInternal(err)
	} else if existing != nil {
		return nil, apperror.NewConflict("A destination with this name already exists")
	}

	dest := &model.Destination{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Country:     req.Country,
		Region:      req.Region,
		Media:       req.Media,
		Featured:    req.Featured,
	}

	created, err := s.Service.Create(ctx, act, dest)
	if err != nil {
		return nil, err
	}

	s.indexDocument(created)
	return created, nil
}

func (s *Service) Update(ctx context.Context, act actor.Actor, id uuid.UUID, req model.UpdateDestinationRequest) (*model.Destination, error) {
	changes := req.Changes()
	if name, ok := changes["name"]; ok {
		changes["slug"] = utils.GenerateSlug(name.(string))
	}

	updated, err := s.Service.Update(ctx, act, id, changes)
	if err != nil {
		return nil, err
	}

	s.indexDocument(updated)
	return updated, nil
}

// Delete removes the destination and purges its search document
func (s *Service) Delete(ctx context.Context, act actor.Actor, id uuid.UUID) error {
	if err := s.Service.Delete(ctx, act, id); err != nil {
		return err
	}

	if s.search.Enabled() {
		_ = s.search.DeleteDocument(search.IndexDestinations, id.String())
	}
	return nil
}

// SearchFullText uses the search index when configured and falls back
// to ILIKE otherwise
func (s *Service) SearchFullText(ctx context.Context, query string, limit int) ([]*model.Destination, error) {
	if limit <= 0 || limit > crud.MaxLimit {
		limit = crud.DefaultLimit
	}

	if !s.search.Enabled() {
		return s.searchFallback(ctx, query, limit)
	}

	ids, err := s.search.Search(search.IndexDestinations, query, limit)
	if err != nil {
		return s.searchFallback(ctx, query, limit)
	}

	rows, err := s.Repo().GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	// Preserve index relevance order
	byID := make(map[uuid.UUID]*model.Destination, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	ordered := make([]*model.Destination, 0, len(ids))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			ordered = append(ordered, row)
		}
	}
	return ordered, nil
}

func (s *Service) searchFallback(ctx context.Context, query string, limit int) ([]*model.Destination, error) {
	items, _, err := s.Repo().List(ctx, crud.Filter{Search: query, Limit: limit})
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return items, nil
}

// GetBySlug resolves the public URL form
func (s *Service) GetBySlug(ctx context.Context, slug string) (*model.Destination, error) {
	dest, err := s.Repo().GetOneBy(ctx, "slug", slug)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if dest == nil {
		return nil, apperror.NewNotFound("Destination")
	}
	return dest, nil
}

// ListFeatured returns the curated front-page set
func (s *Service) ListFeatured(ctx context.Context, limit int) ([]*model.Destination, error) {
	filter := crud.Filter{Limit: limit}.Normalize().WithCondition("featured", true)
	items, _, err := s.Repo().List(ctx, filter)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return items, nil
}

// ReindexSearch rebuilds the destination search index, one page at a
// time. Returns the number of documents written.
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
		for _, dest := range batch {
			s.indexDocument(dest)
			indexed++
		}
		if len(batch) < filter.Limit {
			return indexed, nil
		}
		filter.Offset += filter.Limit
	}
}

func (s *Service) indexDocument(dest *model.Destination) {
	if !s.search.Enabled() {
		return
	}

	doc := map[string]any{
		"id":          dest.ID.String(),
		"name":        dest.Name,
		"description": dest.Description,
		"country":     dest.Country,
		"created_at":  dest.CreatedAt.Unix(),
	}
	_ = s.search.IndexDocument(search.IndexDestinations, doc)
}
