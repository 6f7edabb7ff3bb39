package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"stayhub-backend/internal/shared/types"
)

type CreateEventRequest struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	DestinationID uuid.UUID       `json:"destination_id"`
	VenueName     string          `json:"venue_name"`
	StartsAt      time.Time       `json:"starts_at"`
	EndsAt        time.Time       `json:"ends_at"`
	Media         types.MediaList `json:"media"`
}

func (r CreateEventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&r.Description, validation.Required, validation.Length(10, 20000)),
		validation.Field(&r.Category, validation.Required, validation.In(categoriesAny()...)),
		validation.Field(&r.DestinationID, validation.Required),
		validation.Field(&r.StartsAt, validation.Required),
		validation.Field(&r.EndsAt, validation.Required, validation.By(func(any) error {
			if !r.EndsAt.After(r.StartsAt) {
				return validation.NewError("validation_date_order", "must be after starts_at")
			}
			return nil
		})),
	)
}

type UpdateEventRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	VenueName   *string          `json:"venue_name"`
	StartsAt    *time.Time       `json:"starts_at"`
	EndsAt      *time.Time       `json:"ends_at"`
	Media       *types.MediaList `json:"media"`
}

func (r UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(2, 200)),
		validation.Field(&r.Description, validation.NilOrNotEmpty, validation.Length(10, 20000)),
		validation.Field(&r.Category, validation.When(r.Category != nil, validation.In(categoriesAny()...))),
	)
}

func (r UpdateEventRequest) Changes() map[string]any {
	changes := map[string]any{}
	if r.Title != nil {
		changes["title"] = *r.Title
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.Category != nil {
		changes["category"] = *r.Category
	}
	if r.VenueName != nil {
		changes["venue_name"] = *r.VenueName
	}
	if r.StartsAt != nil {
		changes["starts_at"] = *r.StartsAt
	}
	if r.EndsAt != nil {
		changes["ends_at"] = *r.EndsAt
	}
	if r.Media != nil {
		changes["media"] = *r.Media
	}
	return changes
}

func categoriesAny() []any {
	out := make([]any, len(Categories))
	for i, c := range Categories {
		out[i] = c
	}
	return out
}
