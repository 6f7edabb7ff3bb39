package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	reviewModel "stayhub-backend/internal/domains/review/model"
	"stayhub-backend/internal/shared/types"
)

// ===== REQUESTS =====

type CreateAccommodationRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Type          string          `json:"type"`
	DestinationID uuid.UUID       `json:"destination_id"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	Price         types.Price     `json:"price"`
	Media         types.MediaList `json:"media"`
	MaxGuests     int             `json:"max_guests"`
	Bedrooms      int             `json:"bedrooms"`
	Bathrooms     int             `json:"bathrooms"`
}

func (r CreateAccommodationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&r.Description, validation.Required, validation.Length(10, 20000)),
		validation.Field(&r.Type, validation.Required, validation.In(toAny(Types)...)),
		validation.Field(&r.DestinationID, validation.Required, validation.By(notNilUUID)),
		validation.Field(&r.Address, validation.Required),
		validation.Field(&r.City, validation.Required),
		validation.Field(&r.MaxGuests, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&r.Bedrooms, validation.Min(0)),
		validation.Field(&r.Bathrooms, validation.Min(0)),
	)
}

type UpdateAccommodationRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Type        *string          `json:"type"`
	State       *string          `json:"state"`
	HostID      *uuid.UUID       `json:"host_id"`
	Address     *string          `json:"address"`
	City        *string          `json:"city"`
	Price       *types.Price     `json:"price"`
	Media       *types.MediaList `json:"media"`
	MaxGuests   *int             `json:"max_guests"`
	Bedrooms    *int             `json:"bedrooms"`
	Bathrooms   *int             `json:"bathrooms"`
}

func (r UpdateAccommodationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(2, 200)),
		validation.Field(&r.Description, validation.NilOrNotEmpty, validation.Length(10, 20000)),
		validation.Field(&r.Type, validation.When(r.Type != nil, validation.In(toAny(Types)...))),
		validation.Field(&r.State, validation.When(r.State != nil, validation.In(toAny(States)...))),
		validation.Field(&r.MaxGuests, validation.When(r.MaxGuests != nil, validation.Min(1), validation.Max(100))),
	)
}

func (r UpdateAccommodationRequest) Changes() map[string]any {
	changes := map[string]any{}
	if r.Name != nil {
		changes["name"] = *r.Name
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.Type != nil {
		changes["type"] = *r.Type
	}
	if r.State != nil {
		changes["state"] = *r.State
	}
	if r.HostID != nil {
		changes["host_id"] = *r.HostID
	}
	if r.Address != nil {
		changes["address"] = *r.Address
	}
	if r.City != nil {
		changes["city"] = *r.City
	}
	if r.Price != nil {
		changes["price"] = *r.Price
	}
	if r.Media != nil {
		changes["media"] = *r.Media
	}
	if r.MaxGuests != nil {
		changes["max_guests"] = *r.MaxGuests
	}
	if r.Bedrooms != nil {
		changes["bedrooms"] = *r.Bedrooms
	}
	if r.Bathrooms != nil {
		changes["bathrooms"] = *r.Bathrooms
	}
	return changes
}

type CreateAmenityRequest struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Category string `json:"category"`
}

func (r CreateAmenityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Category, validation.Required, validation.Length(2, 50)),
	)
}

type CreateFaqRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Position int    `json:"position"`
}

func (r CreateFaqRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Question, validation.Required, validation.Length(5, 500)),
		validation.Field(&r.Answer, validation.Required, validation.Length(1, 5000)),
		validation.Field(&r.Position, validation.Min(0)),
	)
}

type GenerateImageRequest struct {
	Prompt string `json:"prompt"`
}

func (r GenerateImageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Prompt, validation.Required, validation.Length(3, 1000)),
	)
}

type CreateAiContentRequest struct {
	Kind    string `json:"kind"`
	Content string `json:"content"`
	Model   string `json:"model"`
}

func (r CreateAiContentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Kind, validation.Required, validation.In(AiKindSummary, AiKindDescription, AiKindHighlights)),
		validation.Field(&r.Content, validation.Required),
	)
}

// ===== RESPONSES =====

// Details is the aggregate returned by the detail endpoint. AiContents
// stays empty for viewers who are neither host nor admin.
type Details struct {
	*Accommodation

	Amenities  []*Amenity            `json:"amenities"`
	Faqs       []*Faq                `json:"faqs"`
	Reviews    []*reviewModel.Review `json:"reviews"`
	AiContents []*AiContent          `json:"ai_contents,omitempty"`
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func notNilUUID(value any) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return validation.NewError("validation_required", "must be a valid UUID")
	}
	return nil
}
