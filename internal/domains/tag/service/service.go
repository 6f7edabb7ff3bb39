package service

import (
	"context"

	"github.com/google/uuid"

	"stayhub-backend/internal/domains/tag/model"
	"stayhub-backend/internal/domains/tag/repository"
	"stayhub-backend/internal/shared/actor"
	"stayhub-backend/internal/shared/apperror"
	"stayhub-backend/internal/shared/crud"
	"stayhub-backend/internal/shared/utils"
)

// OwnerResolver looks up who owns a taggable entity. Every domain
// service satisfies it through the generic CRUD base.
type OwnerResolver interface {
	ResolveOwner(ctx context.Context, id uuid.UUID) (*uuid.UUID, error)
}

type Service struct {
	*crud.Service[model.Tag, *model.Tag]

	repo      *repository.Repository
	resolvers map[string]OwnerResolver
}

func NewService(repo *repository.Repository, resolvers map[string]OwnerResolver) *Service {
	return &Service{
		Service:   crud.NewService(repo.Repository, "Tag"),
		repo:      repo,
		resolvers: resolvers,
	}
}

// Create adds a vocabulary entry. Admin only; duplicate slugs collapse
// to the existing tag.
func (s *Service) Create(ctx context.Context, act actor.Actor, req model.CreateTagRequest) (*model.Tag, error) {
	if err := act.AssertAdmin(); err != nil {
		return nil, err
	}

	slug := utils.GenerateSlug(req.Name)
	existing, err := s.Repo().GetOneBy(ctx, "slug", slug)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if existing != nil {
		return existing, nil
	}

	return s.Service.Create(ctx, act, &model.Tag{Name: req.Name, Slug: slug})
}

// authorizeEntity confirms the target entity exists and that the
// actor may mutate it: its owner or an admin. Unowned entities
// (destinations) are admin-only.
func (s *Service) authorizeEntity(ctx context.Context, act actor.Actor, entityType string, entityID uuid.UUID) error {
	if act.Role == actor.RoleGuest {
		return apperror.NewForbidden("Host account required to tag content")
	}

	resolver, ok := s.resolvers[entityType]
	if !ok {
		return apperror.NewValidation("Unknown entity type", nil)
	}

	owner, err := resolver.ResolveOwner(ctx, entityID)
	if err != nil {
		return err
	}
	return act.AssertOwnerOrAdmin(owner)
}

// Attach links a tag to an entity the actor owns
func (s *Service) Attach(ctx context.Context, act actor.Actor, entityType string, entityID, tagID uuid.UUID) error {
	if err := s.authorizeEntity(ctx, act, entityType, entityID); err != nil {
		return err
	}

	if _, err := s.Service.GetByID(ctx, tagID); err != nil {
		return err
	}

	if err := s.repo.Attach(ctx, entityType, entityID, tagID); err != nil {
		return apperror.NewInternal(err)
	}
	return nil
}

func (s *Service) Detach(ctx context.Context, act actor.Actor, entityType string, entityID, tagID uuid.UUID) error {
	if err := s.authorizeEntity(ctx, act, entityType, entityID); err != nil {
		return err
	}

	if err := s.repo.Detach(ctx, entityType, entityID, tagID); err != nil {
		return apperror.NewInternal(err)
	}
	return nil
}

func (s *Service) ListForEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*model.Tag, error) {
	if !model.IsValidEntityType(entityType) {
		return nil, apperror.NewValidation("Unknown entity type", nil)
	}

	tags, err := s.repo.ListForEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return tags, nil
}

func (s *Service) GetPopular(ctx context.Context, limit int) ([]*model.PopularTag, error) {
	if limit <= 0 || limit > crud.MaxLimit {
		limit = 20
	}

	tags, err := s.repo.GetPopular(ctx, limit)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return tags, nil
}
