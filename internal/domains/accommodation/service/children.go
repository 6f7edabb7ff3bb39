package service

import (
	"context"

	"github.com/google/uuid"

	"stayhub-backend/internal/domains/accommodation/model"
	"stayhub-backend/internal/shared/actor"
	"stayhub-backend/internal/shared/apperror"
	"stayhub-backend/internal/shared/crud"
)

// ===== AMENITY CATALOG =====

// CreateAmenity adds a catalog entry. Admin only.
func (s *Service) CreateAmenity(ctx context.Context, act actor.Actor, req model.CreateAmenityRequest) (*model.Amenity, error) {
	if err := act.AssertAdmin(); err != nil {
		return nil, err
	}

	return s.amenities.Create(ctx, act, &model.Amenity{
		Name:     req.Name,
		Icon:     req.Icon,
		Category: req.Category,
	})
}

func (s *Service) ListAmenityCatalog(ctx context.Context, act actor.Actor, filter crud.Filter) ([]*model.Amenity, int, error) {
	return s.amenities.List(ctx, act, filter)
}

func (s *Service) DeleteAmenity(ctx context.Context, act actor.Actor, id uuid.UUID) error {
	if err := act.AssertAdmin(); err != nil {
		return err
	}
	return s.amenities.Delete(ctx, act, id)
}

// AttachAmenity links a catalog amenity to a listing the actor may edit
func (s *Service) AttachAmenity(ctx context.Context, act actor.Actor, accommodationID, amenityID uuid.UUID) error {
	acc, err := s.Service.GetByID(ctx, accommodationID)
	if err != nil {
		return err
	}
	if err := act.AssertOwnerOrAdmin(acc.OwnerID()); err != nil {
		return err
	}

	if _, err := s.amenities.GetByID(ctx, amenityID); err != nil {
		return err
	}

	if err := s.repo.AttachAmenity(ctx, accommodationID, amenityID); err != nil {
		return apperror.NewInternal(err)
	}
	return nil
}

func (s *Service) DetachAmenity(ctx context.Context, act actor.Actor, accommodationID, amenityID uuid.UUID) error {
	acc, err := s.Service.GetByID(ctx, accommodationID)
	if err != nil {
		return err
	}
	if err := act.AssertOwnerOrAdmin(acc.OwnerID()); err != nil {
		return err
	}

	if err := s.repo.DetachAmenity(ctx, accommodationID, amenityID); err != nil {
		return apperror.NewInternal(err)
	}
	return nil
}

// ===== FAQS =====

// AddFaq creates a FAQ under the listing. The FAQ inherits the
// listing's host as owner.
func (s *Service) AddFaq(ctx context.Context, act actor.Actor, accommodationID uuid.UUID, req model.CreateFaqRequest) (*model.Faq, error) {
	acc, err := s.Service.GetByID(ctx, accommodationID)
	if err != nil {
		return nil, err
	}
	if err := act.AssertOwnerOrAdmin(acc.OwnerID()); err != nil {
		return nil, err
	}

	return s.faqs.Create(ctx, act, &model.Faq{
		AccommodationID: accommodationID,
		HostID:          acc.HostID,
		Question:        req.Question,
		Answer:          req.Answer,
		Position:        req.Position,
	})
}

func (s *Service) ListFaqs(ctx context.Context, accommodationID uuid.UUID) ([]*model.Faq, error) {
	faqs, _, err := s.faqs.Repo().List(ctx, crud.Filter{Limit: crud.MaxLimit}.WithCondition("accommodation_id", accommodationID))
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return faqs, nil
}

func (s *Service) UpdateFaq(ctx context.Context, act actor.Actor, faqID uuid.UUID, req model.CreateFaqRequest) (*model.Faq, error) {
	return s.faqs.Update(ctx, act, faqID, map[string]any{
		"question": req.Question,
		"answer":   req.Answer,
		"position": req.Position,
	})
}

func (s *Service) DeleteFaq(ctx context.Context, act actor.Actor, faqID uuid.UUID) error {
	return s.faqs.Delete(ctx, act, faqID)
}

// ===== AI CONTENT =====

// UpsertAiContent replaces the generated copy of one kind for a listing
func (s *Service) UpsertAiContent(ctx context.Context, act actor.Actor, accommodationID uuid.UUID, req model.CreateAiContentRequest) (*model.AiContent, error) {
	acc, err := s.Service.GetByID(ctx, accommodationID)
	if err != nil {
		return nil, err
	}
	if err := act.AssertOwnerOrAdmin(acc.OwnerID()); err != nil {
		return nil, err
	}

	existing, _, err := s.aiContents.Repo().List(ctx, crud.Filter{Limit: 1}.
		WithCondition("accommodation_id", accommodationID).
		WithCondition("kind", req.Kind))
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	if len(existing) > 0 {
		return s.aiContents.Update(ctx, act, existing[0].ID, map[string]any{
			"content": req.Content,
			"model":   req.Model,
		})
	}

	return s.aiContents.Create(ctx, act, &model.AiContent{
		AccommodationID: accommodationID,
		HostID:          acc.HostID,
		Kind:            req.Kind,
		Content:         req.Content,
		Model:           req.Model,
	})
}

// ListAiContents is restricted to the host and admins
func (s *Service) ListAiContents(ctx context.Context, act actor.Actor, accommodationID uuid.UUID) ([]*model.AiContent, error) {
	acc, err := s.Service.GetByID(ctx, accommodationID)
	if err != nil {
		return nil, err
	}
	if err := act.AssertOwnerOrAdmin(acc.OwnerID()); err != nil {
		return nil, err
	}

	contents, _, err := s.aiContents.Repo().List(ctx, crud.Filter{Limit: crud.MaxLimit}.WithCondition("accommodation_id", accommodationID))
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return contents, nil
}

func (s *Service) DeleteAiContent(ctx context.Context, act actor.Actor, id uuid.UUID) error {
	return s.aiContents.Delete(ctx, act, id)
}
