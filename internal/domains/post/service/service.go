package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"stayhub-backend/internal/domains/post/model"
	"stayhub-backend/internal/infrastructure/search"
	"stayhub-backend/internal/shared/actor"
	"stayhub-backend/internal/shared/apperror"
	"stayhub-backend/internal/shared/crud"
	"stayhub-backend/internal/shared/utils"
)

type Service struct {
	*crud.Service[model.Post, *model.Post]

	search *search.Client
}

func NewService(repo *crud.Repository[model.Post, *model.Post], searchClient *search.Client) *Service {
	return &Service{
		Service: crud.NewService(repo, "Post"),
		search:  searchClient,
	}
}

func (s *Service) Create(ctx context.Context, act actor.Actor, req model.CreatePostRequest) (*model.Post, error) {
	post := &model.Post{
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Body:     req.Body,
		Category: req.Category,
		AuthorID: act.ID,
		Media:    req.Media,
	}
	post.SetID(uuid.New())
	post.Slug = utils.GenerateSlug(req.Title) + "-" + post.GetID().String()[:8]

	if req.Publish {
		now := time.Now()
		post.PublishedAt = &now
	}

	created, err := s.Service.Create(ctx, act, post)
	if err != nil {
		return nil, err
	}

	s.indexDocument(created)
	return created, nil
}

func (s *Service) Update(ctx context.Context, act actor.Actor, id uuid.UUID, req model.UpdatePostRequest) (*model.Post, error) {
	changes := req.Changes()
	if title, ok := changes["title"]; ok {
		changes["slug"] = utils.GenerateSlug(title.(string)) + "-" + id.String()[:8]
	}
	if req.Publish != nil {
		if *req.Publish {
			changes["published_at"] = time.Now()
		} else {
			changes["published_at"] = nil
		}
	}

	updated, err := s.Service.Update(ctx, act, id, changes)
	if err != nil {
		return nil, err
	}

	s.indexDocument(updated)
	return updated, nil
}

// Delete removes the post and purges its search document
func (s *Service) Delete(ctx context.Context, act actor.Actor, id uuid.UUID) error {
	if err := s.Service.Delete(ctx, act, id); err != nil {
		return err
	}

	if s.search.Enabled() {
		_ = s.search.DeleteDocument(search.IndexPosts, id.String())
	}
	return nil
}

// SearchFullText queries the post index when configured and falls
// back to ILIKE otherwise. Only published posts come back.
func (s *Service) SearchFullText(ctx context.Context, query string, limit int) ([]*model.Post, error) {
	if limit <= 0 || limit > crud.MaxLimit {
		limit = crud.DefaultLimit
	}

	if !s.search.Enabled() {
		return s.searchFallback(ctx, query, limit)
	}

	ids, err := s.search.Search(search.IndexPosts, query, limit)
	if err != nil {
		return s.searchFallback(ctx, query, limit)
	}

	rows, err := s.Repo().GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	// Preserve index relevance order
	byID := make(map[uuid.UUID]*model.Post, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	ordered := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		if row, ok := byID[id]; ok && row.IsPublished() {
			ordered = append(ordered, row)
		}
	}
	return ordered, nil
}

func (s *Service) searchFallback(ctx context.Context, query string, limit int) ([]*model.Post, error) {
	items, _, err := s.Repo().List(ctx, crud.Filter{Search: query, Limit: limit})
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	published := make([]*model.Post, 0, len(items))
	for _, p := range items {
		if p.IsPublished() {
			published = append(published, p)
		}
	}
	return published, nil
}

// GetBySlug resolves the public URL form
func (s *Service) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	post, err := s.Repo().GetOneBy(ctx, "slug", slug)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if post == nil {
		return nil, apperror.NewNotFound("Post")
	}
	return post, nil
}

func (s *Service) GetByCategory(ctx context.Context, act actor.Actor, category string, filter crud.Filter) ([]*model.Post, int, error) {
	return s.Service.List(ctx, act, filter.WithCondition("category", category))
}

func (s *Service) ListByAuthor(ctx context.Context, act actor.Actor, authorID uuid.UUID, filter crud.Filter) ([]*model.Post, int, error) {
	return s.Service.List(ctx, act, filter.WithCondition("author_id", authorID))
}

// ReindexSearch walks every post and rewrites its index state. Drafts
// get their document removed. Returns the number of documents written.
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
		for _, post := range batch {
			s.indexDocument(post)
			if post.IsPublished() {
				indexed++
			}
		}
		if len(batch) < filter.Limit {
			return indexed, nil
		}
		filter.Offset += filter.Limit
	}
}

func (s *Service) indexDocument(post *model.Post) {
	if !s.search.Enabled() {
		return
	}

	if !post.IsPublished() {
		_ = s.search.DeleteDocument(search.IndexPosts, post.ID.String())
		return
	}

	_ = s.search.IndexDocument(search.IndexPosts, map[string]any{
		"id":         post.ID.String(),
		"title":      post.Title,
		"excerpt":    post.Excerpt,
		"body":       post.Body,
		"category":   post.Category,
		"created_at": post.CreatedAt.Unix(),
	})
}
